//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/sport-together/internal/credentials"
	"github.com/sbilibin2017/sport-together/internal/idgen"
	"github.com/sbilibin2017/sport-together/internal/jwt"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByField(ctx context.Context, field, value string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID string) (*models.UserDB, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	Apply(ctx context.Context, userID string, u models.Update) (*models.UserDB, error)
	Delete(ctx context.Context, userID string) (*models.UserDB, error)
}

// CredentialVerifier derives and checks salted password keys.
type CredentialVerifier interface {
	Hash(password string) (hash, salt []byte, err error)
	Verify(password string, salt, hash []byte) bool
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID, sessionID string, expiry time.Time) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionStore persists session records.
type SessionStore interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// IDGenerator hands out identifiers not yet present in the store.
type IDGenerator interface {
	Unique(ctx context.Context, exists idgen.ExistsFunc) (string, error)
}

// Registration is the input of Register.
type Registration struct {
	EmailAddress string
	Password     string
	FirstName    string
	LastName     string
	University   string
	Username     *string
	Sports       map[string]bool // must hold a flag for every supported sport
}

// Validate reports the first mandatory field that is missing.
func (r *Registration) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"email_address", r.EmailAddress},
		{"password", r.Password},
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"university", r.University},
	} {
		if strings.TrimSpace(f.value) == "" {
			return missing(f.name)
		}
	}
	for _, sport := range models.SupportedSports {
		if _, ok := r.Sports[sport]; !ok {
			return missing(sport)
		}
	}
	return nil
}

// Account is an authenticated user together with the session issued for it.
type Account struct {
	User         models.UserDB
	SessionToken string
	Expiry       time.Time
}

// DefaultProjection is returned when no field list is requested.
var DefaultProjection = []string{"user_id", "first_name", "games_joined", "games_owned", "orphaned_games", "session_token"}

// AuthService handles registration, authentication and sessions.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	verifier   CredentialVerifier
	tokens     TokenIssuer
	sessions   SessionStore
	userIDs    IDGenerator
	sessionTTL time.Duration

	now      func() time.Time
	newToken func() (string, error)
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	verifier CredentialVerifier,
	tokens TokenIssuer,
	sessions SessionStore,
	userIDs IDGenerator,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		reader:     reader,
		writer:     writer,
		verifier:   verifier,
		tokens:     tokens,
		sessions:   sessions,
		userIDs:    userIDs,
		sessionTTL: sessionTTL,
		now:        time.Now,
		newToken:   credentials.NewToken,
	}
}

// registerAttempts bounds how often Register draws a new user id after
// losing an id race on insert.
const registerAttempts = 3

// Register creates a new account and returns its user id. A blank username
// is stored as no username.
func (svc *AuthService) Register(ctx context.Context, reg Registration) (string, error) {
	if err := reg.Validate(); err != nil {
		return "", err
	}
	if reg.Username != nil && strings.TrimSpace(*reg.Username) == "" {
		reg.Username = nil
	}

	if err := svc.checkAvailable(ctx, "email_address", reg.EmailAddress, ErrDuplicateEmail); err != nil {
		return "", err
	}
	if reg.Username != nil {
		if err := svc.checkAvailable(ctx, "username", *reg.Username, ErrDuplicateUsername); err != nil {
			return "", err
		}
	}

	hash, salt, err := svc.verifier.Hash(reg.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", err
	}

	validationToken, err := svc.newToken()
	if err != nil {
		logger.Log.Errorw("failed to create validation token", "err", err)
		return "", err
	}

	sports := models.SportPrefs{}
	for _, sport := range models.SupportedSports {
		sports[sport] = reg.Sports[sport]
	}

	user := &models.UserDB{
		EmailAddress:    reg.EmailAddress,
		Username:        reg.Username,
		CredentialHash:  hash,
		CredentialSalt:  salt,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		University:      reg.University,
		Sports:          sports,
		GamesOwned:      models.StringList{},
		GamesJoined:     models.StringList{},
		OrphanedGames:   models.StringList{},
		ValidationToken: validationToken,
		SignupTime:      svc.now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		user.UserID, err = svc.userIDs.Unique(ctx, svc.reader.Exists)
		if err != nil {
			logger.Log.Errorw("failed to generate user id", "err", err)
			return "", err
		}

		err = svc.writer.Save(ctx, user)
		if err == nil {
			break
		}

		// lost a race with a concurrent registration
		switch models.DuplicateField(err) {
		case "email_address":
			return "", ErrDuplicateEmail
		case "username":
			return "", ErrDuplicateUsername
		case "user_id":
			if attempt < registerAttempts {
				logger.Log.Infow("user id taken on insert, retrying", "user_id", user.UserID, "attempt", attempt)
				continue
			}
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return "", err
	}

	logger.Log.Infow("user registered", "user_id", user.UserID)
	return user.UserID, nil
}

// checkAvailable fails with taken when an account already holds value.
func (svc *AuthService) checkAvailable(ctx context.Context, field, value string, taken error) error {
	existing, err := svc.reader.GetByField(ctx, field, value)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "field", field, "err", err)
		return err
	}
	if existing != nil {
		logger.Log.Infow("unique field already registered", "field", field)
		return taken
	}
	return nil
}

// Authenticate looks the account up by a unique field (email_address or
// username), checks the password and issues a new session. Unknown accounts
// and wrong passwords both yield ErrInvalidCredentials.
func (svc *AuthService) Authenticate(ctx context.Context, field, value, password string) (*Account, error) {
	if field != "email_address" && field != "username" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if value == "" {
		return nil, missing(field)
	}
	if password == "" {
		return nil, missing("password")
	}

	user, err := svc.reader.GetByField(ctx, field, value)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("login for unknown account", field, value)
		return nil, ErrInvalidCredentials
	}

	if !svc.verifier.Verify(password, user.CredentialSalt, user.CredentialHash) {
		logger.Log.Infow("invalid credentials", "user_id", user.UserID)
		return nil, ErrInvalidCredentials
	}

	token, expiry, err := svc.issueSession(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	return &Account{User: *user, SessionToken: token, Expiry: expiry}, nil
}

// issueSession persists a new session record and signs a token for it.
func (svc *AuthService) issueSession(ctx context.Context, userID string) (string, time.Time, error) {
	sessionID, err := svc.newToken()
	if err != nil {
		logger.Log.Errorw("failed to create session id", "err", err)
		return "", time.Time{}, err
	}
	expiry := svc.now().Add(svc.sessionTTL)

	if err := svc.sessions.Save(ctx, &models.Session{SessionID: sessionID, UserID: userID, Expiry: expiry}); err != nil {
		logger.Log.Errorw("failed to save session", "user_id", userID, "err", err)
		return "", time.Time{}, err
	}

	token, err := svc.tokens.Generate(ctx, userID, sessionID, expiry)
	if err != nil {
		logger.Log.Errorw("failed to sign session token", "user_id", userID, "err", err)
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// ResolveSession turns a session token into the session it refers to.
// The token signature, the stored record and its expiry must all be valid.
func (svc *AuthService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Infow("rejected session token", "err", err)
		return nil, ErrSessionExpired
	}

	s, err := svc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		logger.Log.Errorw("failed to load session", "err", err)
		return nil, err
	}
	if s == nil || s.UserID != claims.UserID || s.Expired(svc.now()) {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// GetUser returns the user record, failing with ErrUserNotFound when absent.
func (svc *AuthService) GetUser(ctx context.Context, userID string) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// profileFields are the user fields a client may overwrite on its own profile.
var profileFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"university": true,
}

// UpdateProfile overwrites profile fields of userID. Sport names set the
// matching opt-in flag.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*models.UserDB, error) {
	var u models.Update
	for _, key := range sortedKeys(fields) {
		if !profileFields[key] && !models.IsSupportedSport(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		u = u.Set(key, fields[key])
	}
	if err := u.Validate(models.UserFields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}

	user, err := svc.writer.Apply(ctx, userID, u)
	if err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Project returns a view of the account restricted to fields. Credential
// material is never projectable. A nil list selects DefaultProjection.
func (svc *AuthService) Project(account *Account, fields []string) (map[string]any, error) {
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if fields == nil {
		fields = DefaultProjection
	}

	u := account.User
	available := map[string]any{
		"user_id":           u.UserID,
		"email_address":     u.EmailAddress,
		"username":          u.Username,
		"first_name":        u.FirstName,
		"last_name":         u.LastName,
		"university":        u.University,
		"sports":            u.Sports,
		"games_owned":       u.GamesOwned,
		"games_joined":      u.GamesJoined,
		"orphaned_games":    u.OrphanedGames,
		"already_validated": u.AlreadyValidated,
		"signup_time":       u.SignupTime,
		"session_token":     account.SessionToken,
		"expiry":            account.Expiry,
	}

	view := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := available[f]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		view[f] = v
	}
	return view, nil
}
