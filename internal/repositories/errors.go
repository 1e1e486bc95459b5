package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/sport-together/internal/models"
)

const uniqueViolation = "23505"

// constraintFields maps the constraint names Postgres assigns in Schema to
// the column they guard.
var constraintFields = map[string]string{
	"users_pkey":              "user_id",
	"users_email_address_key": "email_address",
	"users_username_key":      "username",
	"games_pkey":              "game_id",
	"membership_intents_pkey": "intent_id",
}

// mapInsertError converts a unique violation into a *models.DuplicateError
// naming the colliding column.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ConstraintName
	}
	return &models.DuplicateError{Field: field}
}
