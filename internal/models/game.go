package models

// GameDB represents a game record in the database.
type GameDB struct {
	GameID                  string     `json:"game_id" db:"game_id"`                                       // Generated, immutable
	Type                    string     `json:"type" db:"type"`                                             // One of SupportedSports
	Location                string     `json:"location" db:"location"`                                     //
	Time                    string     `json:"time" db:"time"`                                             //
	Date                    string     `json:"date" db:"date"`                                             //
	GameOwnerID             *string    `json:"game_owner_id" db:"game_owner_id"`                           // nil when ownerless
	GameOwnerFirstName      string     `json:"game_owner_first_name" db:"game_owner_first_name"`           // Snapshot taken at creation
	GameAttendees           StringList `json:"game_attendees" db:"game_attendees"`                         // May contain duplicates
	GameAttendeesFirstNames StringList `json:"game_attendees_first_names" db:"game_attendees_first_names"` // Parallel to GameAttendees
}

// IsOwnedBy reports whether userID currently owns the game.
func (g *GameDB) IsOwnedBy(userID string) bool {
	return g.GameOwnerID != nil && *g.GameOwnerID == userID
}

// GameFilter narrows a game scan. Empty fields match everything.
type GameFilter struct {
	Location string `json:"location"` // Case-insensitive substring
	Type     string `json:"type"`     // Exact sport
}
