package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/sport-together/internal/models"
)

const intentColumns = `intent_id, op, user_id, game_id, first_name, game_done, user_done,
	orphan_recipients, created_at`

// IntentRepository stores the membership intent log.
type IntentRepository struct {
	db *sqlx.DB
}

func NewIntentRepository(db *sqlx.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// Create records a new intent.
func (r *IntentRepository) Create(ctx context.Context, intent *models.MembershipIntent) error {
	const query = `
		INSERT INTO membership_intents (intent_id, op, user_id, game_id, first_name,
			game_done, user_done, orphan_recipients, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)
	`
	args := []any{
		intent.IntentID, intent.Op, intent.UserID, intent.GameID, intent.FirstName,
		intent.GameDone, intent.UserDone, intent.OrphanRecipients, intent.CreatedAt,
	}

	_, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	logQuery(query, args, intent.IntentID, err)

	return mapInsertError(err)
}

// ClaimGameSide flips game_done on a pending intent. It reports false when
// the row is gone or its game side was already claimed, in which case the
// caller must not apply the game side. The row stays locked until the
// surrounding transaction ends.
func (r *IntentRepository) ClaimGameSide(ctx context.Context, intentID uuid.UUID) (bool, error) {
	const query = `UPDATE membership_intents SET game_done = TRUE WHERE intent_id = $1 AND game_done = FALSE`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, intentID)
	if err != nil {
		logQuery(query, []any{intentID}, nil, err)
		return false, err
	}
	n, err := res.RowsAffected()
	logQuery(query, []any{intentID}, n, err)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetOrphanRecipients records who must be told about an orphaned game.
func (r *IntentRepository) SetOrphanRecipients(ctx context.Context, intentID uuid.UUID, recipients models.StringList) error {
	const query = `UPDATE membership_intents SET orphan_recipients = $2::jsonb WHERE intent_id = $1`
	args := []any{intentID, recipients}

	_, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	logQuery(query, args, nil, err)

	return err
}

// ClaimUserSide flips user_done once the game side is done and returns the
// stored orphan recipients. It reports false when there is nothing left to
// claim.
func (r *IntentRepository) ClaimUserSide(ctx context.Context, intentID uuid.UUID) (models.StringList, bool, error) {
	const query = `
		UPDATE membership_intents SET user_done = TRUE
		WHERE intent_id = $1 AND game_done = TRUE AND user_done = FALSE
		RETURNING orphan_recipients
	`

	var recipients models.StringList
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &recipients, query, intentID)
	logQuery(query, []any{intentID}, recipients, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return recipients, true, nil
}

// Delete clears a completed intent.
func (r *IntentRepository) Delete(ctx context.Context, intentID uuid.UUID) error {
	const query = `DELETE FROM membership_intents WHERE intent_id = $1`

	_, err := executor(ctx, r.db).ExecContext(ctx, query, intentID)
	logQuery(query, []any{intentID}, nil, err)

	return err
}

// ListStale returns up to limit intents created before the given time, oldest first.
func (r *IntentRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]models.MembershipIntent, error) {
	query := `
		SELECT ` + intentColumns + `
		FROM membership_intents
		WHERE created_at < $1
		ORDER BY created_at
		LIMIT $2
	`
	args := []any{before, limit}

	intents := []models.MembershipIntent{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &intents, query, args...)
	logQuery(query, args, len(intents), err)

	if err != nil {
		return nil, err
	}
	return intents, nil
}
