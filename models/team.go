package models

// Team is one of the four fixed camp teams. The set is closed: teams have no
// creation or deletion lifecycle.
type Team string

const (
	TeamRed    Team = "red"
	TeamBlue   Team = "blue"
	TeamGreen  Team = "green"
	TeamYellow Team = "yellow"
)

// AllTeams returns the teams in enumeration order. The order matters:
// best-available-team selection breaks ties by it.
func AllTeams() []Team {
	return []Team{TeamRed, TeamBlue, TeamGreen, TeamYellow}
}

func (t Team) Valid() bool {
	switch t {
	case TeamRed, TeamBlue, TeamGreen, TeamYellow:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// TeamBalance is a derived roster snapshot for one team. It is recomputed
// from registration rows, never persisted.
type TeamBalance struct {
	Team   Team `json:"team"`
	Total  int  `json:"total"`
	Male   int  `json:"male"`
	Female int  `json:"female"`
}

func (b TeamBalance) GenderCount(g Gender) int {
	if g == GenderMale {
		return b.Male
	}
	return b.Female
}
