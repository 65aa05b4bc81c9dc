package models

import "time"

// Registration assigns a person to a team for the camp. It is created at
// registration time, mutated on team switch (the switch counter decrements),
// and never deleted by team logic.
type Registration struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Team              Team      `json:"team"`
	Gender            Gender    `json:"gender"`
	SwitchesRemaining int       `json:"switches_remaining"`
	IsParticipating   bool      `json:"is_participating"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SportEntry records a user's opt-in to one tournament sport.
type SportEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Sport     Sport     `json:"sport"`
	CreatedAt time.Time `json:"created_at"`
}
