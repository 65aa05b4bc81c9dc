package standings

import (
	"sort"

	"github.com/campstack/camp-system/models"
)

// Points awarded per round-robin result.
const (
	pointsWin  = 3
	pointsDraw = 1
)

// RoundRobinPairings returns the C(4,2) = 6 unordered team pairings in
// enumeration order. Every sport's bracket is generated from this list.
func RoundRobinPairings() [][2]models.Team {
	teams := models.AllTeams()
	pairings := make([][2]models.Team, 0, 6)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, [2]models.Team{teams[i], teams[j]})
		}
	}
	return pairings
}

// ClampScore normalizes raw score input: nil means "not yet played" and is
// kept, negative values are clamped to zero.
func ClampScore(score *int) *int {
	if score == nil {
		return nil
	}
	v := *score
	if v < 0 {
		v = 0
	}
	return &v
}

type pair struct {
	a, b models.Team
}

func orderedPair(a, b models.Team) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// ComputeTable derives the standings table from a sport's match list. Final
// matches, cancelled matches, and matches without both scores are ignored.
// The table always contains one row per team, sorted by: points, then the
// head-to-head result between the two compared teams, then goal difference,
// then goals for. Beyond that the order is stable.
func ComputeTable(matches []*models.Match) []models.StandingRow {
	rows := make(map[models.Team]*models.StandingRow, 4)
	for _, team := range models.AllTeams() {
		rows[team] = &models.StandingRow{Team: team}
	}

	// Winner of the single direct match per unordered pair, for the
	// head-to-head tie-break. Draws leave no entry.
	headToHead := make(map[pair]models.Team)

	for _, m := range matches {
		if m == nil || m.IsFinal || !m.Completed() {
			continue
		}
		rowA, okA := rows[m.TeamA]
		rowB, okB := rows[m.TeamB]
		if !okA || !okB {
			continue
		}

		scoreA, scoreB := *m.ScoreA, *m.ScoreB

		rowA.Played++
		rowB.Played++
		rowA.GoalsFor += scoreA
		rowA.GoalsAgainst += scoreB
		rowB.GoalsFor += scoreB
		rowB.GoalsAgainst += scoreA

		switch {
		case scoreA > scoreB:
			rowA.Wins++
			rowA.Points += pointsWin
			rowB.Losses++
			headToHead[orderedPair(m.TeamA, m.TeamB)] = m.TeamA
		case scoreB > scoreA:
			rowB.Wins++
			rowB.Points += pointsWin
			rowA.Losses++
			headToHead[orderedPair(m.TeamA, m.TeamB)] = m.TeamB
		default:
			rowA.Draws++
			rowB.Draws++
			rowA.Points += pointsDraw
			rowB.Points += pointsDraw
		}
	}

	table := make([]models.StandingRow, 0, 4)
	for _, team := range models.AllTeams() {
		row := rows[team]
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		ri, rj := table[i], table[j]
		if ri.Points != rj.Points {
			return ri.Points > rj.Points
		}
		if winner, ok := headToHead[orderedPair(ri.Team, rj.Team)]; ok {
			return winner == ri.Team
		}
		if ri.GoalDifference != rj.GoalDifference {
			return ri.GoalDifference > rj.GoalDifference
		}
		if ri.GoalsFor != rj.GoalsFor {
			return ri.GoalsFor > rj.GoalsFor
		}
		return false
	})

	return table
}

// TopTwo returns the final pairing once the table is decided. ok is false
// for tables with fewer than two rows, which cannot happen with the fixed
// four-team roster but keeps callers honest.
func TopTwo(table []models.StandingRow) (first, second models.Team, ok bool) {
	if len(table) < 2 {
		return "", "", false
	}
	return table[0].Team, table[1].Team, true
}

// RoundRobinComplete reports whether every non-final match in the list has
// reached completed status with both scores, and the full set of six
// fixtures exists. This is the precondition for minting the final.
func RoundRobinComplete(matches []*models.Match) bool {
	count := 0
	for _, m := range matches {
		if m == nil || m.IsFinal {
			continue
		}
		if !m.Completed() {
			return false
		}
		count++
	}
	return count == len(RoundRobinPairings())
}
