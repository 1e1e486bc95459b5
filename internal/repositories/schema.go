package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema creates the tables backing users, games and the membership intent log.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id           TEXT PRIMARY KEY,
	email_address     TEXT NOT NULL UNIQUE,
	username          TEXT UNIQUE,
	credential_hash   BYTEA NOT NULL,
	credential_salt   BYTEA NOT NULL,
	first_name        TEXT NOT NULL,
	last_name         TEXT NOT NULL,
	university        TEXT NOT NULL,
	sports            JSONB NOT NULL DEFAULT '{}'::jsonb,
	games_owned       JSONB NOT NULL DEFAULT '[]'::jsonb,
	games_joined      JSONB NOT NULL DEFAULT '[]'::jsonb,
	orphaned_games    JSONB NOT NULL DEFAULT '[]'::jsonb,
	validation_token  TEXT NOT NULL,
	already_validated BOOLEAN NOT NULL DEFAULT FALSE,
	signup_time       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS games (
	game_id                    TEXT PRIMARY KEY,
	"type"                     TEXT NOT NULL,
	location                   TEXT NOT NULL,
	"time"                     TEXT NOT NULL,
	"date"                     TEXT NOT NULL,
	game_owner_id              TEXT,
	game_owner_first_name      TEXT NOT NULL DEFAULT '',
	game_attendees             JSONB NOT NULL DEFAULT '[]'::jsonb,
	game_attendees_first_names JSONB NOT NULL DEFAULT '[]'::jsonb
);

CREATE INDEX IF NOT EXISTS games_location_idx ON games (lower(location));

CREATE TABLE IF NOT EXISTS membership_intents (
	intent_id         UUID PRIMARY KEY,
	op                TEXT NOT NULL,
	user_id           TEXT NOT NULL,
	game_id           TEXT NOT NULL,
	first_name        TEXT NOT NULL DEFAULT '',
	game_done         BOOLEAN NOT NULL DEFAULT FALSE,
	user_done         BOOLEAN NOT NULL DEFAULT FALSE,
	orphan_recipients JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS membership_intents_created_at_idx ON membership_intents (created_at);
`

// Migrate applies Schema. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	logQuery("CREATE TABLE IF NOT EXISTS users, games, membership_intents", nil, nil, err)
	return err
}
