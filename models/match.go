package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is one contest between two teams inside a sport's round-robin
// bracket. IsFinal marks the synthesized championship match created once all
// six round-robin fixtures complete.
type Match struct {
	ID          int         `json:"id"`
	Sport       Sport       `json:"sport"`
	TeamA       Team        `json:"team_a"`
	TeamB       Team        `json:"team_b"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
	ScoreA      *int        `json:"score_a,omitempty"`
	ScoreB      *int        `json:"score_b,omitempty"`
	Status      MatchStatus `json:"status"`
	IsFinal     bool        `json:"is_final"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Completed reports whether the match counts toward standings: completed
// status with both scores recorded.
func (m *Match) Completed() bool {
	return m.Status == MatchStatusCompleted && m.ScoreA != nil && m.ScoreB != nil
}

// StandingRow is one team's line in a derived standings table. Computed
// fresh from the current set of non-final completed matches, never stored.
type StandingRow struct {
	Team           Team `json:"team"`
	Played         int  `json:"played"`
	Wins           int  `json:"wins"`
	Draws          int  `json:"draws"`
	Losses         int  `json:"losses"`
	GoalsFor       int  `json:"goals_for"`
	GoalsAgainst   int  `json:"goals_against"`
	GoalDifference int  `json:"goal_difference"`
	Points         int  `json:"points"`
}
