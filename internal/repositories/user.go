package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/sport-together/internal/models"
)

const userColumns = `user_id, email_address, username, credential_hash, credential_salt,
	first_name, last_name, university, sports, games_owned, games_joined, orphaned_games,
	validation_token, already_validated, signup_time`

// userLookupFields are the unique columns a user can be fetched by.
var userLookupFields = map[string]bool{
	"user_id":       true,
	"email_address": true,
	"username":      true,
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByField returns the user whose unique field equals value, or nil when absent.
func (r *UserReadRepository) GetByField(ctx context.Context, field, value string) (*models.UserDB, error) {
	if !userLookupFields[field] {
		return nil, fmt.Errorf("users cannot be looked up by %q", field)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + field + ` = $1 LIMIT 1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, value)
	logQuery(query, []any{value}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with userID, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID string) (*models.UserDB, error) {
	return r.GetByField(ctx, "user_id", userID)
}

// Exists reports whether userID is already taken.
func (r *UserReadRepository) Exists(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, userID)
	logQuery(query, []any{userID}, exists, err)

	return exists, err
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A taken email address, username or id yields models.ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (user_id, email_address, username, credential_hash, credential_salt,
			first_name, last_name, university, sports, games_owned, games_joined, orphaned_games,
			validation_token, already_validated, signup_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11::jsonb, $12::jsonb, $13, $14, $15)
	`
	args := []any{
		user.UserID, user.EmailAddress, user.Username, user.CredentialHash, user.CredentialSalt,
		user.FirstName, user.LastName, user.University, user.Sports,
		user.GamesOwned, user.GamesJoined, user.OrphanedGames,
		user.ValidationToken, user.AlreadyValidated, user.SignupTime,
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{user.UserID, user.EmailAddress}, rowsAffected, err)

	return mapInsertError(err)
}

// Apply runs an update command against one user and returns the stored result,
// or nil when the user does not exist.
func (r *UserWriteRepository) Apply(ctx context.Context, userID string, u models.Update) (*models.UserDB, error) {
	set, args, err := setClause(u, models.UserFields, 2)
	if err != nil {
		return nil, err
	}
	query := `UPDATE users SET ` + set + ` WHERE user_id = $1 RETURNING ` + userColumns
	args = append([]any{userID}, args...)

	var user models.UserDB
	err = sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, args...)
	logQuery(query, args, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and returns the deleted record, or nil when absent.
func (r *UserWriteRepository) Delete(ctx context.Context, userID string) (*models.UserDB, error) {
	query := `DELETE FROM users WHERE user_id = $1 RETURNING ` + userColumns

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, userID)
	logQuery(query, []any{userID}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
