package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/sport-together/internal/jwt"
	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/sbilibin2017/sport-together/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authMocks struct {
	reader   *services.MockUserReader
	writer   *services.MockUserWriter
	verifier *services.MockCredentialVerifier
	tokens   *services.MockTokenIssuer
	sessions *services.MockSessionStore
	ids      *services.MockIDGenerator
}

func newAuthService(t *testing.T) (*services.AuthService, authMocks) {
	ctrl := gomock.NewController(t)
	m := authMocks{
		reader:   services.NewMockUserReader(ctrl),
		writer:   services.NewMockUserWriter(ctrl),
		verifier: services.NewMockCredentialVerifier(ctrl),
		tokens:   services.NewMockTokenIssuer(ctrl),
		sessions: services.NewMockSessionStore(ctrl),
		ids:      services.NewMockIDGenerator(ctrl),
	}
	svc := services.NewAuthService(m.reader, m.writer, m.verifier, m.tokens, m.sessions, m.ids, time.Hour)
	return svc, m
}

func validRegistration() services.Registration {
	return services.Registration{
		EmailAddress: "alice@example.com",
		Password:     "this_is_long_enough",
		FirstName:    "Alice",
		LastName:     "Liddell",
		University:   "Oxford",
		Sports: map[string]bool{
			models.SportTennis:     true,
			models.SportFrisbee:    false,
			models.SportSoccer:     false,
			models.SportRunning:    true,
			models.SportBasketball: false,
		},
	}
}

func registrationWithUsername(username string) func() services.Registration {
	return func() services.Registration {
		r := validRegistration()
		r.Username = &username
		return r
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("db error")

	tests := []struct {
		name    string
		reg     func() services.Registration
		setup   func(m authMocks)
		wantID  string
		wantErr error
	}{
		{
			name: "successful registration",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil)
				m.verifier.EXPECT().Hash("this_is_long_enough").Return([]byte("hash"), []byte("salt"), nil)
				m.writer.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.UserDB) error {
					assert.Equal(t, "0123456789", u.UserID)
					assert.Equal(t, []byte("hash"), u.CredentialHash)
					assert.Equal(t, []byte("salt"), u.CredentialSalt)
					assert.Empty(t, u.GamesOwned)
					assert.Empty(t, u.GamesJoined)
					assert.Empty(t, u.OrphanedGames)
					assert.NotEmpty(t, u.ValidationToken)
					assert.False(t, u.AlreadyValidated)
					assert.True(t, u.Sports[models.SportTennis])
					assert.Len(t, u.Sports, len(models.SupportedSports))
					return nil
				})
			},
			wantID: "0123456789",
		},
		{
			name: "duplicate email",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").
					Return(&models.UserDB{UserID: "1111111111"}, nil)
			},
			wantErr: services.ErrDuplicateEmail,
		},
		{
			name: "duplicate email on insert",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil)
				m.verifier.EXPECT().Hash(gomock.Any()).Return([]byte("hash"), []byte("salt"), nil)
				m.writer.EXPECT().Save(ctx, gomock.Any()).Return(&models.DuplicateError{Field: "email_address"})
			},
			wantErr: services.ErrDuplicateEmail,
		},
		{
			name: "username taken",
			reg:  registrationWithUsername("alice"),
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.reader.EXPECT().GetByField(ctx, "username", "alice").Return(&models.UserDB{UserID: "1111111111"}, nil)
			},
			wantErr: services.ErrDuplicateUsername,
		},
		{
			name: "username taken on insert",
			reg:  registrationWithUsername("alice"),
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.reader.EXPECT().GetByField(ctx, "username", "alice").Return(nil, nil)
				m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil)
				m.verifier.EXPECT().Hash(gomock.Any()).Return([]byte("hash"), []byte("salt"), nil)
				m.writer.EXPECT().Save(ctx, gomock.Any()).Return(&models.DuplicateError{Field: "username"})
			},
			wantErr: services.ErrDuplicateUsername,
		},
		{
			name: "blank username is stored as none",
			reg:  registrationWithUsername(" "),
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil)
				m.verifier.EXPECT().Hash(gomock.Any()).Return([]byte("hash"), []byte("salt"), nil)
				m.writer.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.UserDB) error {
					assert.Nil(t, u.Username)
					return nil
				})
			},
			wantID: "0123456789",
		},
		{
			name: "user id taken on insert is drawn again",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.verifier.EXPECT().Hash(gomock.Any()).Return([]byte("hash"), []byte("salt"), nil)
				gomock.InOrder(
					m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil),
					m.writer.EXPECT().Save(ctx, gomock.Any()).Return(&models.DuplicateError{Field: "user_id"}),
					m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("9876543210", nil),
					m.writer.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.UserDB) error {
						assert.Equal(t, "9876543210", u.UserID)
						return nil
					}),
				)
			},
			wantID: "9876543210",
		},
		{
			name: "user id collisions give up",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, nil)
				m.verifier.EXPECT().Hash(gomock.Any()).Return([]byte("hash"), []byte("salt"), nil)
				m.ids.EXPECT().Unique(ctx, gomock.Any()).Return("0123456789", nil).Times(3)
				m.writer.EXPECT().Save(ctx, gomock.Any()).Return(&models.DuplicateError{Field: "user_id"}).Times(3)
			},
			wantErr: &models.DuplicateError{Field: "user_id"},
		},
		{
			name: "missing sport flag",
			reg: func() services.Registration {
				r := validRegistration()
				delete(r.Sports, models.SportSoccer)
				return r
			},
			setup:   func(m authMocks) {},
			wantErr: &services.MissingFieldError{Field: models.SportSoccer},
		},
		{
			name: "missing university",
			reg: func() services.Registration {
				r := validRegistration()
				r.University = " "
				return r
			},
			setup:   func(m authMocks) {},
			wantErr: &services.MissingFieldError{Field: "university"},
		},
		{
			name: "reader error",
			reg:  validRegistration,
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthService(t)
			tt.setup(m)

			id, err := svc.Register(ctx, tt.reg())
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthService_Register_MissingFieldIsDistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), services.Registration{})

	var missing *services.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "email_address", missing.Field)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := &models.UserDB{
		UserID:         "0123456789",
		EmailAddress:   "alice@example.com",
		FirstName:      "Alice",
		CredentialHash: []byte("hash"),
		CredentialSalt: []byte("salt"),
	}

	t.Run("success", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(user, nil)
		m.verifier.EXPECT().Verify("secret", []byte("salt"), []byte("hash")).Return(true)
		m.sessions.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s *models.Session) error {
			assert.Equal(t, "0123456789", s.UserID)
			assert.NotEmpty(t, s.SessionID)
			assert.True(t, s.Expiry.After(time.Now()))
			return nil
		})
		m.tokens.EXPECT().Generate(ctx, "0123456789", gomock.Any(), gomock.Any()).Return("signed", nil)

		account, err := svc.Authenticate(ctx, "email_address", "alice@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "signed", account.SessionToken)
		assert.Equal(t, "Alice", account.User.FirstName)
	})

	t.Run("login by username", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.reader.EXPECT().GetByField(ctx, "username", "alice").Return(user, nil)
		m.verifier.EXPECT().Verify("secret", gomock.Any(), gomock.Any()).Return(true)
		m.sessions.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		m.tokens.EXPECT().Generate(ctx, "0123456789", gomock.Any(), gomock.Any()).Return("signed", nil)

		_, err := svc.Authenticate(ctx, "username", "alice", "secret")
		assert.NoError(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.reader.EXPECT().GetByField(ctx, "email_address", "nobody@example.com").Return(nil, nil)

		_, err := svc.Authenticate(ctx, "email_address", "nobody@example.com", "secret")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(user, nil)
		m.verifier.EXPECT().Verify("wrong", gomock.Any(), gomock.Any()).Return(false)

		_, err := svc.Authenticate(ctx, "email_address", "alice@example.com", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.EqualError(t, err, "incorrect email or password")
	})

	t.Run("unsupported key", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Authenticate(ctx, "user_id", "0123456789", "secret")
		assert.ErrorIs(t, err, services.ErrUnknownField)
	})

	t.Run("missing password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Authenticate(ctx, "email_address", "alice@example.com", "")
		assert.EqualError(t, err, "missing field: password")
	})

	t.Run("session store error", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.reader.EXPECT().GetByField(ctx, "email_address", "alice@example.com").Return(user, nil)
		m.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		m.sessions.EXPECT().Save(ctx, gomock.Any()).Return(errors.New("redis down"))

		_, err := svc.Authenticate(ctx, "email_address", "alice@example.com", "secret")
		assert.EqualError(t, err, "redis down")
	})
}

func TestAuthService_ResolveSession(t *testing.T) {
	ctx := context.Background()
	claims := &jwt.Claims{UserID: "0123456789", SessionID: "sid"}

	t.Run("valid", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.EXPECT().GetClaims(ctx, "token").Return(claims, nil)
		m.sessions.EXPECT().Get(ctx, "sid").
			Return(&models.Session{SessionID: "sid", UserID: "0123456789", Expiry: time.Now().Add(time.Minute)}, nil)

		s, err := svc.ResolveSession(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "0123456789", s.UserID)
	})

	t.Run("expired record", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.EXPECT().GetClaims(ctx, "token").Return(claims, nil)
		m.sessions.EXPECT().Get(ctx, "sid").
			Return(&models.Session{SessionID: "sid", UserID: "0123456789", Expiry: time.Now().Add(-time.Second)}, nil)

		_, err := svc.ResolveSession(ctx, "token")
		assert.ErrorIs(t, err, services.ErrSessionExpired)
	})

	t.Run("revoked", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.EXPECT().GetClaims(ctx, "token").Return(claims, nil)
		m.sessions.EXPECT().Get(ctx, "sid").Return(nil, nil)

		_, err := svc.ResolveSession(ctx, "token")
		assert.ErrorIs(t, err, services.ErrSessionExpired)
	})

	t.Run("session of another user", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.EXPECT().GetClaims(ctx, "token").Return(claims, nil)
		m.sessions.EXPECT().Get(ctx, "sid").
			Return(&models.Session{SessionID: "sid", UserID: "9999999999", Expiry: time.Now().Add(time.Minute)}, nil)

		_, err := svc.ResolveSession(ctx, "token")
		assert.ErrorIs(t, err, services.ErrSessionExpired)
	})

	t.Run("bad token", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.EXPECT().GetClaims(ctx, "garbage").Return(nil, errors.New("token is malformed"))

		_, err := svc.ResolveSession(ctx, "garbage")
		assert.ErrorIs(t, err, services.ErrSessionExpired)
	})
}

func TestAuthService_Project(t *testing.T) {
	svc, _ := newAuthService(t)
	account := &services.Account{
		User: models.UserDB{
			UserID:         "0123456789",
			EmailAddress:   "alice@example.com",
			FirstName:      "Alice",
			CredentialHash: []byte("hash"),
			GamesOwned:     models.StringList{"G1"},
		},
		SessionToken: "signed",
	}

	t.Run("default fields", func(t *testing.T) {
		view, err := svc.Project(account, nil)
		require.NoError(t, err)
		assert.Len(t, view, len(services.DefaultProjection))
		assert.Equal(t, "signed", view["session_token"])
		assert.Equal(t, models.StringList{"G1"}, view["games_owned"])
		assert.NotContains(t, view, "email_address")
	})

	t.Run("requested fields", func(t *testing.T) {
		view, err := svc.Project(account, []string{"email_address"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"email_address": "alice@example.com"}, view)
	})

	t.Run("credential material is not projectable", func(t *testing.T) {
		for _, f := range []string{"credential_hash", "credential_salt", "validation_token"} {
			_, err := svc.Project(account, []string{f})
			assert.ErrorIs(t, err, services.ErrUnknownField, f)
		}
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites whitelisted fields", func(t *testing.T) {
		svc, m := newAuthService(t)
		want := models.Update{}.Set("last_name", "Hargreaves").Set(models.SportSoccer, true)
		m.writer.EXPECT().Apply(ctx, "0123456789", want).Return(&models.UserDB{UserID: "0123456789"}, nil)

		user, err := svc.UpdateProfile(ctx, "0123456789", map[string]any{
			"last_name":        "Hargreaves",
			models.SportSoccer: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "0123456789", user.UserID)
	})

	t.Run("list fields are not client writable", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.UpdateProfile(ctx, "0123456789", map[string]any{"games_owned": []string{}})
		assert.ErrorIs(t, err, services.ErrUnknownField)
	})

	t.Run("wrong value type", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.UpdateProfile(ctx, "0123456789", map[string]any{"first_name": 3})
		assert.ErrorIs(t, err, services.ErrInvalidUpdate)
	})

	t.Run("user gone", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.writer.EXPECT().Apply(ctx, "0123456789", gomock.Any()).Return(nil, nil)

		_, err := svc.UpdateProfile(ctx, "0123456789", map[string]any{"university": "MIT"})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}
