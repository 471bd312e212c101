package interfaces

import (
	"go-champ-stats/internal/models"
)

// ChampionDirectory translates between the upstream site's alias strings and
// the numeric champion keys used by the rest of the application. Backed by
// static reference data loaded elsewhere.
type ChampionDirectory interface {
	// AliasByKey returns the upstream alias for a numeric champion key.
	AliasByKey(key int) (string, bool)

	// NameByKey returns the display name for a numeric champion key.
	NameByKey(key int) (string, bool)

	// Traits returns static traits for an alias, used by the synergy heuristic.
	Traits(alias string) (models.ChampionTraits, bool)

	// Aliases lists every known alias.
	Aliases() []string

	// CurrentPatch returns the live content version as "major.minor".
	CurrentPatch() string
}
