package models

// Membership event types published to Kafka.
const (
	EventGameCreated    = "game_created"
	EventGameJoined     = "game_joined"
	EventGameWithdrawn  = "game_withdrawn"
	EventGameOrphaned   = "game_orphaned"
	EventAccountDeleted = "account_deleted"
)

// MembershipEvent describes a change in the relationship between a user and a game.
type MembershipEvent struct {
	EventID   string   `json:"event_id"`           // Unique identifier of the event
	Type      string   `json:"type"`               // One of the Event* constants
	UserID    string   `json:"user_id"`            // Acting user
	GameID    string   `json:"game_id,omitempty"`  // Affected game, empty for account events
	Notified  []string `json:"notified,omitempty"` // Attendees flagged when a game is orphaned
	Timestamp int64    `json:"timestamp"`          // Unix seconds
}
