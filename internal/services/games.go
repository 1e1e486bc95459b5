//go:generate mockgen -source=games.go -destination=games_mock.go -package=services

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// GameReader defines read-only operations for games.
type GameReader interface {
	GetByID(ctx context.Context, gameID string) (*models.GameDB, error)
	GetByIDForUpdate(ctx context.Context, gameID string) (*models.GameDB, error)
	GetByIDs(ctx context.Context, gameIDs []string) ([]models.GameDB, error)
	Exists(ctx context.Context, gameID string) (bool, error)
	Scan(ctx context.Context, filter models.GameFilter) ([]models.GameDB, error)
}

// GameWriter defines write operations for games.
type GameWriter interface {
	Save(ctx context.Context, game *models.GameDB) error
	Apply(ctx context.Context, gameID string, u models.Update) (*models.GameDB, error)
}

// Transactor runs fn inside a database transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OwnershipRecorder records a new game in its owner's games_owned.
type OwnershipRecorder interface {
	RecordOwnership(ctx context.Context, userID, gameID string) error
}

// NewGame is the input of CreateGame.
type NewGame struct {
	Type     string
	Location string
	Time     string
	Date     string
}

// Validate reports the first missing mandatory field, then checks the sport.
func (g *NewGame) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"type", g.Type},
		{"location", g.Location},
		{"time", g.Time},
		{"date", g.Date},
	} {
		if strings.TrimSpace(f.value) == "" {
			return missing(f.name)
		}
	}
	if !models.IsSupportedSport(g.Type) {
		return fmt.Errorf("%w: %s", ErrUnsupportedSport, g.Type)
	}
	return nil
}

// ownerWritableGameFields are the game fields an owner may change through the API.
var ownerWritableGameFields = map[string]bool{
	"type":                       true,
	"location":                   true,
	"time":                       true,
	"date":                       true,
	"game_attendees":             true,
	"game_attendees_first_names": true,
}

// GameService manages games.
type GameService struct {
	reader    GameReader
	writer    GameWriter
	users     UserReader
	ownership OwnershipRecorder
	tx        Transactor
	gameIDs   IDGenerator
	kafka     KafkaWriter
}

// NewGameService creates a new GameService instance. kafka may be nil.
func NewGameService(
	reader GameReader,
	writer GameWriter,
	users UserReader,
	ownership OwnershipRecorder,
	tx Transactor,
	gameIDs IDGenerator,
	kafka KafkaWriter,
) *GameService {
	return &GameService{
		reader:    reader,
		writer:    writer,
		users:     users,
		ownership: ownership,
		tx:        tx,
		gameIDs:   gameIDs,
		kafka:     kafka,
	}
}

// CreateGame persists a new game owned by ownerID and records it in the
// owner's games_owned within the same transaction.
func (svc *GameService) CreateGame(ctx context.Context, ownerID string, in NewGame) (*models.GameDB, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	owner, err := svc.users.GetByID(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to get game owner", "user_id", ownerID, "err", err)
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	gameID, err := svc.gameIDs.Unique(ctx, svc.reader.Exists)
	if err != nil {
		logger.Log.Errorw("failed to generate game id", "err", err)
		return nil, err
	}

	game := &models.GameDB{
		GameID:                  gameID,
		Type:                    in.Type,
		Location:                in.Location,
		Time:                    in.Time,
		Date:                    in.Date,
		GameOwnerID:             &owner.UserID,
		GameOwnerFirstName:      owner.FirstName,
		GameAttendees:           models.StringList{},
		GameAttendeesFirstNames: models.StringList{},
	}

	err = svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := svc.writer.Save(ctx, game); err != nil {
			return err
		}
		return svc.ownership.RecordOwnership(ctx, owner.UserID, gameID)
	})
	if err != nil {
		logger.Log.Errorw("failed to create game", "game_id", gameID, "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.kafka, newEvent(models.EventGameCreated, owner.UserID, gameID))
	return game, nil
}

// GetGames returns the games that exist among gameIDs. Unknown ids are skipped.
func (svc *GameService) GetGames(ctx context.Context, gameIDs []string) ([]models.GameDB, error) {
	games, err := svc.reader.GetByIDs(ctx, gameIDs)
	if err != nil {
		logger.Log.Errorw("failed to get games", "err", err)
		return nil, err
	}
	return games, nil
}

// ReadGames returns the games named by gameIDs. Without ids it reads the
// session user's games_owned when owned is set, games_joined otherwise.
func (svc *GameService) ReadGames(ctx context.Context, userID string, gameIDs []string, owned bool) ([]models.GameDB, error) {
	if gameIDs == nil {
		user, err := svc.users.GetByID(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		gameIDs = user.GamesJoined
		if owned {
			gameIDs = user.GamesOwned
		}
	}
	return svc.GetGames(ctx, gameIDs)
}

// SearchGames returns every game matching filter.
func (svc *GameService) SearchGames(ctx context.Context, filter models.GameFilter) ([]models.GameDB, error) {
	if filter.Type != "" && !models.IsSupportedSport(filter.Type) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSport, filter.Type)
	}
	games, err := svc.reader.Scan(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to search games", "err", err)
		return nil, err
	}
	return games, nil
}

// UpdateGame overwrites every field present in fields. A list value replaces
// the whole stored list.
func (svc *GameService) UpdateGame(ctx context.Context, gameID string, fields map[string]any) (*models.GameDB, error) {
	var u models.Update
	for _, key := range sortedKeys(fields) {
		kind, ok := models.GameFields[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		v, err := normalizeValue(kind, fields[key])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUpdate, key, err)
		}
		u = u.Set(key, v)
	}
	return svc.ApplyGameUpdate(ctx, gameID, u)
}

// UpdateGameAppend appends each value onto the list stored at its key.
func (svc *GameService) UpdateGameAppend(ctx context.Context, gameID string, fields map[string]string) (*models.GameDB, error) {
	var u models.Update
	for _, key := range sortedKeys(fields) {
		u = u.Push(key, fields[key])
	}
	return svc.ApplyGameUpdate(ctx, gameID, u)
}

// ApplyGameUpdate executes an update command against one game.
func (svc *GameService) ApplyGameUpdate(ctx context.Context, gameID string, u models.Update) (*models.GameDB, error) {
	if err := u.Validate(models.GameFields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	for _, f := range u {
		if f.Field == "type" && f.Mode == models.Replace && !models.IsSupportedSport(f.Value.(string)) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSport, f.Value)
		}
	}

	game, err := svc.writer.Apply(ctx, gameID, u)
	if err != nil {
		logger.Log.Errorw("failed to update game", "game_id", gameID, "err", err)
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// UpdateOwnedGame applies fields to a game on behalf of its owner. With
// appendMode every value must be a string and is appended to a list field.
func (svc *GameService) UpdateOwnedGame(ctx context.Context, userID, gameID string, fields map[string]any, appendMode bool) (*models.GameDB, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpdate, models.ErrEmptyUpdate)
	}
	for key := range fields {
		if !ownerWritableGameFields[key] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	if _, err := svc.Authorize(ctx, userID, gameID); err != nil {
		return nil, err
	}

	if !appendMode {
		return svc.UpdateGame(ctx, gameID, fields)
	}

	values := make(map[string]string, len(fields))
	for key, v := range fields {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: append expects a string", ErrInvalidUpdate, key)
		}
		values[key] = s
	}
	return svc.UpdateGameAppend(ctx, gameID, values)
}

// Authorize returns the game if userID currently owns it.
func (svc *GameService) Authorize(ctx context.Context, userID, gameID string) (*models.GameDB, error) {
	game, err := svc.reader.GetByID(ctx, gameID)
	if err != nil {
		logger.Log.Errorw("failed to get game", "game_id", gameID, "err", err)
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if !game.IsOwnedBy(userID) {
		return nil, ErrNotGameOwner
	}
	return game, nil
}
