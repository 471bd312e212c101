package stats

import (
	"sort"

	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/models"
)

// countersResponse is the primary-channel payload for the matchup domain.
// Key names mirror the upstream site and are validated, not trusted: rows
// missing a champion id or below the sample gate are dropped.
type countersResponse struct {
	Counters []counterRow `json:"counters"`
}

type counterRow struct {
	Cid         int     `json:"cid"`
	VsWr        float64 `json:"vsWr"`
	N           int     `json:"n"`
	DefaultLane string  `json:"defaultLane"`
}

// extractMatchups maps raw counter rows to matchup records. Rows with an
// unknown champion id fail closed rather than producing a half-filled record.
func extractMatchups(resp *countersResponse, dir interfaces.ChampionDirectory, minSample int) []models.Matchup {
	if resp == nil || len(resp.Counters) == 0 {
		return nil
	}

	matchups := make([]models.Matchup, 0, len(resp.Counters))
	for _, row := range resp.Counters {
		if row.N < minSample {
			continue
		}
		if row.VsWr < 0 || row.VsWr > 100 {
			continue
		}
		alias, ok := dir.AliasByKey(row.Cid)
		if !ok {
			continue
		}
		name, _ := dir.NameByKey(row.Cid)

		matchups = append(matchups, models.Matchup{
			OpponentAlias: alias,
			OpponentName:  name,
			WinRate:       row.VsWr,
			Games:         row.N,
			DefaultLane:   row.DefaultLane,
		})
	}
	return matchups
}

// sortCounters orders matchups by ascending subject win rate, so the
// opponents the subject struggles against most come first.
func sortCounters(matchups []models.Matchup) []models.Matchup {
	out := make([]models.Matchup, len(matchups))
	copy(out, matchups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WinRate < out[j].WinRate
	})
	return out
}

// counterpicksFrom flips a matchup table to the opponents' point of view:
// the opponent's win rate into the subject is 100 minus the subject's win
// rate, rounded to two decimals, strongest counter first.
func counterpicksFrom(matchups []models.Matchup) []models.Counterpick {
	picks := make([]models.Counterpick, 0, len(matchups))
	for _, m := range matchups {
		picks = append(picks, models.Counterpick{
			Alias:   m.OpponentAlias,
			Name:    m.OpponentName,
			WinRate: round2(100 - m.WinRate),
			Games:   m.Games,
		})
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].WinRate > picks[j].WinRate
	})
	return picks
}
