package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/sport-together/internal/models"
)

const gameColumns = `game_id, "type", location, "time", "date", game_owner_id, game_owner_first_name,
	game_attendees, game_attendees_first_names`

// GameReadRepository handles game read operations
type GameReadRepository struct {
	db *sqlx.DB
}

func NewGameReadRepository(db *sqlx.DB) *GameReadRepository {
	return &GameReadRepository{db: db}
}

// GetByID returns the game, or nil when absent.
func (r *GameReadRepository) GetByID(ctx context.Context, gameID string) (*models.GameDB, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`
	return r.getOne(ctx, query, gameID)
}

// GetByIDForUpdate is GetByID with a row lock; it only makes sense inside a transaction.
func (r *GameReadRepository) GetByIDForUpdate(ctx context.Context, gameID string) (*models.GameDB, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1 FOR UPDATE`
	return r.getOne(ctx, query, gameID)
}

func (r *GameReadRepository) getOne(ctx context.Context, query, gameID string) (*models.GameDB, error) {
	var game models.GameDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &game, query, gameID)
	logQuery(query, []any{gameID}, game.GameID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetByIDs returns the games that exist among gameIDs, in the order requested.
// Unknown ids are skipped.
func (r *GameReadRepository) GetByIDs(ctx context.Context, gameIDs []string) ([]models.GameDB, error) {
	games := make([]models.GameDB, 0, len(gameIDs))
	for _, id := range gameIDs {
		game, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if game != nil {
			games = append(games, *game)
		}
	}
	return games, nil
}

// Exists reports whether gameID is already taken.
func (r *GameReadRepository) Exists(ctx context.Context, gameID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM games WHERE game_id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, gameID)
	logQuery(query, []any{gameID}, exists, err)

	return exists, err
}

// Scan returns every game matching filter, ordered by id. The location is
// matched as a literal case-insensitive substring.
func (r *GameReadRepository) Scan(ctx context.Context, filter models.GameFilter) ([]models.GameDB, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE ($1 = '' OR strpos(lower(location), lower($1)) > 0)
		  AND ($2 = '' OR "type" = $2)
		ORDER BY game_id
	`
	args := []any{filter.Location, filter.Type}

	games := []models.GameDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &games, query, args...)
	logQuery(query, args, len(games), err)

	if err != nil {
		return nil, err
	}
	return games, nil
}

// GameWriteRepository handles game write operations
type GameWriteRepository struct {
	db *sqlx.DB
}

func NewGameWriteRepository(db *sqlx.DB) *GameWriteRepository {
	return &GameWriteRepository{db: db}
}

// Save inserts a new game.
func (r *GameWriteRepository) Save(ctx context.Context, game *models.GameDB) error {
	const query = `
		INSERT INTO games (game_id, "type", location, "time", "date", game_owner_id,
			game_owner_first_name, game_attendees, game_attendees_first_names)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb)
	`
	args := []any{
		game.GameID, game.Type, game.Location, game.Time, game.Date, game.GameOwnerID,
		game.GameOwnerFirstName, game.GameAttendees, game.GameAttendeesFirstNames,
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return mapInsertError(err)
}

// Apply runs an update command against one game and returns the stored result,
// or nil when the game does not exist.
func (r *GameWriteRepository) Apply(ctx context.Context, gameID string, u models.Update) (*models.GameDB, error) {
	set, args, err := setClause(u, models.GameFields, 2)
	if err != nil {
		return nil, err
	}
	query := `UPDATE games SET ` + set + ` WHERE game_id = $1 RETURNING ` + gameColumns
	args = append([]any{gameID}, args...)

	var game models.GameDB
	err = sqlx.GetContext(ctx, executor(ctx, r.db), &game, query, args...)
	logQuery(query, args, game.GameID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}
