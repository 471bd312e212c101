package interfaces

import (
	"context"

	"go-champ-stats/internal/models"
)

// StatsProvider is the query surface the HTTP layer serves. Implementations
// never return errors; missing data reads as empty results.
type StatsProvider interface {
	Counters(ctx context.Context, alias, lane string) []models.Matchup
	BestCounterpicks(ctx context.Context, alias, lane string) []models.Counterpick
	BestOverallPick(ctx context.Context, enemyAliases []string, lane string, allyKeys []int) []models.PickSuggestion
	Build(ctx context.Context, alias, lane string) *models.Build
	RecommendedRunes(ctx context.Context, alias, lane string) []models.RunePage
	SkillPlan(ctx context.Context, alias, lane string) *models.SkillPlan
	Reset()
}
