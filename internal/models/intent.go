package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership operations recorded in the intent log.
const (
	IntentJoin     = "join"
	IntentWithdraw = "withdraw"
)

// MembershipIntent records a cross-record mutation before it is performed.
// GameDone and UserDone flip to true in the same transaction as the write they
// describe, so a leftover row tells exactly which side still needs applying.
type MembershipIntent struct {
	IntentID         uuid.UUID  `json:"intent_id" db:"intent_id"`
	Op               string     `json:"op" db:"op"`
	UserID           string     `json:"user_id" db:"user_id"`
	GameID           string     `json:"game_id" db:"game_id"`
	FirstName        string     `json:"first_name" db:"first_name"`
	GameDone         bool       `json:"game_done" db:"game_done"`
	UserDone         bool       `json:"user_done" db:"user_done"`
	OrphanRecipients StringList `json:"orphan_recipients" db:"orphan_recipients"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
