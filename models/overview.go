package models

// OverviewStats is the staff dashboard snapshot.
type OverviewStats struct {
	CampersTotal     int           `json:"campers_total"`
	TeamBalances     []TeamBalance `json:"team_balances"`
	MatchesScheduled int           `json:"matches_scheduled"`
	MatchesCompleted int           `json:"matches_completed"`
	PhotosPending    int           `json:"photos_pending"`
}
