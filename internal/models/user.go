package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Supported sports. The same vocabulary is used for game types and for the
// per-sport opt-in flags on a user profile.
const (
	SportTennis     = "tennis"
	SportFrisbee    = "frisbee"
	SportSoccer     = "soccer"
	SportRunning    = "running"
	SportBasketball = "basketball"
)

// SupportedSports lists the sport vocabulary in a stable order.
var SupportedSports = []string{SportTennis, SportFrisbee, SportSoccer, SportRunning, SportBasketball}

// IsSupportedSport reports whether sport belongs to the vocabulary.
func IsSupportedSport(sport string) bool {
	for _, s := range SupportedSports {
		if s == sport {
			return true
		}
	}
	return false
}

// SportPrefs holds the opt-in flag for each supported sport, stored as JSONB.
type SportPrefs map[string]bool

// Value encodes the flags as a JSON object.
func (p SportPrefs) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]bool(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON object coming from the database.
func (p *SportPrefs) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = SportPrefs{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into SportPrefs", src)
	}
	out := map[string]bool{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*p = out
	return nil
}

// UserDB represents a user record in the database.
// Credential material never leaves the service layer: both fields are hidden from JSON.
type UserDB struct {
	UserID           string     `json:"user_id" db:"user_id"`               // Generated, immutable
	EmailAddress     string     `json:"email_address" db:"email_address"`   // Unique
	Username         *string    `json:"username" db:"username"`             // Optional login key
	CredentialHash   []byte     `json:"-" db:"credential_hash"`             // Derived key
	CredentialSalt   []byte     `json:"-" db:"credential_salt"`             // Per-account random salt
	FirstName        string     `json:"first_name" db:"first_name"`         //
	LastName         string     `json:"last_name" db:"last_name"`           //
	University       string     `json:"university" db:"university"`         //
	Sports           SportPrefs `json:"sports" db:"sports"`                 // Per-sport opt-in flags
	GamesOwned       StringList `json:"games_owned" db:"games_owned"`       // Set of game ids
	GamesJoined      StringList `json:"games_joined" db:"games_joined"`     // Set of game ids
	OrphanedGames    StringList `json:"orphaned_games" db:"orphaned_games"` // Set of game ids whose owner left
	ValidationToken  string     `json:"-" db:"validation_token"`            // Stored at signup, not verified yet
	AlreadyValidated bool       `json:"already_validated" db:"already_validated"`
	SignupTime       time.Time  `json:"signup_time" db:"signup_time"`
}
