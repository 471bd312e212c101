package stats

import (
	"math"
	"sort"

	"go-champ-stats/internal/models"
)

// synergyBound clamps the roster-fit adjustment so statistics always
// dominate the heuristic.
const synergyBound = 5.0

// traitsFn looks up static champion traits by alias
type traitsFn func(alias string) (models.ChampionTraits, bool)

// pickSuggestions aggregates one matchup table per enemy into a ranked list
// of answers to the whole enemy group. A candidate only qualifies when it has
// a data point against every queried enemy; its base score is the mean of its
// inverted win rates, nudged by a bounded synergy adjustment from the ally
// roster.
func pickSuggestions(tables map[string][]models.Matchup, allies []models.ChampionTraits, traits traitsFn) []models.PickSuggestion {
	if len(tables) == 0 {
		return nil
	}

	type tally struct {
		name     string
		sum      float64
		seen     int
		minGames int
	}
	tallies := make(map[string]*tally)

	for _, table := range tables {
		for _, m := range table {
			t, ok := tallies[m.OpponentAlias]
			if !ok {
				t = &tally{name: m.OpponentName, minGames: m.Games}
				tallies[m.OpponentAlias] = t
			}
			t.sum += 100 - m.WinRate
			t.seen++
			if m.Games < t.minGames {
				t.minGames = m.Games
			}
		}
	}

	suggestions := make([]models.PickSuggestion, 0, len(tallies))
	for alias, t := range tallies {
		if t.seen < len(tables) {
			continue
		}
		synergy := 0.0
		if len(allies) > 0 && traits != nil {
			synergy = synergyAdjustment(alias, allies, traits)
		}
		suggestions = append(suggestions, models.PickSuggestion{
			Alias:   alias,
			Name:    t.name,
			Score:   round2(t.sum/float64(t.seen) + synergy),
			Synergy: synergy,
			Games:   t.minGames,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Alias < suggestions[j].Alias
	})
	return suggestions
}

// synergyAdjustment scores how well a candidate rounds out the ally roster:
// damage-type balance, frontline presence and role redundancy. An unknown
// candidate contributes zero. Result is clamped to ±synergyBound.
func synergyAdjustment(candidateAlias string, allies []models.ChampionTraits, traits traitsFn) float64 {
	candidate, found := traits(candidateAlias)
	if !found {
		return 0
	}

	var physical, magic, frontliners int
	roles := make(map[string]int)
	for _, a := range allies {
		switch a.Damage {
		case "physical":
			physical++
		case "magic":
			magic++
		}
		if a.Frontline {
			frontliners++
		}
		for _, r := range a.Roles {
			roles[r]++
		}
	}

	score := 0.0

	// Reward filling the under-represented damage type.
	switch {
	case physical-magic >= 2 && candidate.Damage == "magic":
		score += 2
	case magic-physical >= 2 && candidate.Damage == "physical":
		score += 2
	case candidate.Damage == "mixed":
		score += 1
	}

	// Reward the first frontliner, discourage stacking a third.
	if candidate.Frontline {
		switch {
		case frontliners == 0:
			score += 2
		case frontliners >= 2:
			score -= 1
		}
	} else if frontliners == 0 {
		score -= 1
	}

	// Penalize piling onto roles the roster already covers twice.
	for _, r := range candidate.Roles {
		if roles[r] >= 2 {
			score -= 1
		}
	}

	return clamp(score, -synergyBound, synergyBound)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
