// Package stats is the query surface of the application: per-champion
// matchup, build, rune and skill statistics pulled from the analytics site,
// cached, and served best-effort. No operation here returns an error to the
// caller; the worst outcome is an empty result.
package stats

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"go-champ-stats/internal/cache/store"
	"go-champ-stats/internal/config"
	"go-champ-stats/internal/fallback"
	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/metrics"
	"go-champ-stats/internal/models"
	"go-champ-stats/internal/upstream"
)

// Cache-key domains, one per independently cached slice
const (
	domainCounters = "counters"
	domainBuild    = "build"
	domainRunes    = "runes"
)

// Upstream "ep" query values per domain
const (
	epCounters = "counter"
	epBuild    = "build"
	epRunes    = "rune"
)

// trailingPatch is the broad "last 30 days" aggregate the site serves when
// the exact-patch slice is still thin.
const trailingPatch = "30"

// runesBundle is what the rune domain caches: pages and the skill plan come
// from the same upstream payload, so they share one entry and one fetch.
type runesBundle struct {
	Pages []models.RunePage `json:"pages"`
	Plan  *models.SkillPlan `json:"plan,omitempty"`
}

// Ensure Service implements interfaces.StatsProvider
var _ interfaces.StatsProvider = (*Service)(nil)

// Service answers stat queries from cache first, then from the upstream
// fallback chain. Construct one per process and share it.
type Service struct {
	client    *upstream.Client
	cache     interfaces.Cache
	keys      interfaces.KeyBuilder
	directory interfaces.ChampionDirectory
	cfg       *config.Config
	policy    fallback.Policy
	logger    *zap.Logger
}

// NewService wires the stats service from its collaborators
func NewService(
	client *upstream.Client,
	cache interfaces.Cache,
	keys interfaces.KeyBuilder,
	directory interfaces.ChampionDirectory,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		client:    client,
		cache:     cache,
		keys:      keys,
		directory: directory,
		cfg:       cfg,
		policy: fallback.Policy{
			MaxRetries: cfg.Retry.MaxRetries,
			Backoff:    cfg.Backoff(),
		},
		logger: logger,
	}
}

// Counters returns the subject's matchup table for a lane, hardest
// opponents first (ascending subject win rate).
func (s *Service) Counters(ctx context.Context, alias, lane string) []models.Matchup {
	return sortCounters(s.matchups(ctx, alias, lane))
}

// BestCounterpicks returns the opponents ranked by how hard they counter
// the subject (descending inverted win rate).
func (s *Service) BestCounterpicks(ctx context.Context, alias, lane string) []models.Counterpick {
	return counterpicksFrom(s.matchups(ctx, alias, lane))
}

// BestOverallPick ranks candidate answers to a group of enemies. A candidate
// needs a matchup data point against every enemy; ally champion keys, when
// given, feed the bounded synergy adjustment.
func (s *Service) BestOverallPick(ctx context.Context, enemyAliases []string, lane string, allyKeys []int) []models.PickSuggestion {
	tables := make(map[string][]models.Matchup, len(enemyAliases))
	for _, enemy := range enemyAliases {
		if table := s.matchups(ctx, enemy, lane); len(table) > 0 {
			tables[enemy] = table
		}
	}
	if len(tables) < len(enemyAliases) {
		// Missing tables would silently loosen the "data point against
		// every enemy" requirement.
		return nil
	}

	allies := make([]models.ChampionTraits, 0, len(allyKeys))
	for _, key := range allyKeys {
		if alias, ok := s.directory.AliasByKey(key); ok {
			if traits, ok := s.directory.Traits(alias); ok {
				allies = append(allies, traits)
			}
		}
	}

	return pickSuggestions(tables, allies, s.directory.Traits)
}

// Build returns the recommended starting items and full build for a
// champion/lane slice, or nil when no reliable data exists.
func (s *Service) Build(ctx context.Context, alias, lane string) *models.Build {
	builds := fetchSlice(ctx, s, domainBuild, alias, lane, s.buildAttempts(alias, lane))
	if len(builds) == 0 {
		return nil
	}
	return &builds[0]
}

// RecommendedRunes returns up to two rune pages, most played first
func (s *Service) RecommendedRunes(ctx context.Context, alias, lane string) []models.RunePage {
	bundle := s.runes(ctx, alias, lane)
	if bundle == nil {
		return nil
	}
	return bundle.Pages
}

// SkillPlan returns the recommended ability order, or nil
func (s *Service) SkillPlan(ctx context.Context, alias, lane string) *models.SkillPlan {
	bundle := s.runes(ctx, alias, lane)
	if bundle == nil {
		return nil
	}
	return bundle.Plan
}

// Reset drops every cached slice. Called when a new match starts.
func (s *Service) Reset() {
	s.logger.Info("Clearing stats cache")
	s.cache.Clear()
}

func (s *Service) matchups(ctx context.Context, alias, lane string) []models.Matchup {
	return fetchSlice(ctx, s, domainCounters, alias, lane, s.matchupAttempts(alias, lane))
}

func (s *Service) runes(ctx context.Context, alias, lane string) *runesBundle {
	bundles := fetchSlice(ctx, s, domainRunes, alias, lane, s.runeAttempts(alias, lane))
	if len(bundles) == 0 {
		return nil
	}
	return &bundles[0]
}

// fetchSlice is the shared cache-then-fallback path for one domain slice:
// fresh hit and negative hit short-circuit, a miss runs the attempt chain,
// success writes through, exhaustion serves a stale entry if one survives
// and records a negative entry otherwise.
func fetchSlice[T any](ctx context.Context, s *Service, domain, alias, lane string, attempts []fallback.Attempt[T]) []T {
	key, err := s.keys.Build(domain, alias, lane, "")
	if err != nil {
		s.logger.Error("Failed to build cache key",
			zap.String("domain", domain), zap.String("alias", alias), zap.Error(err))
		return nil
	}

	metrics.RecordCacheRequest(domain)
	switch val, state := store.Get[[]T](s.cache, key, s.logger); state {
	case store.Hit:
		metrics.RecordCacheHit(domain, "store")
		return val
	case store.NegativeHit:
		metrics.RecordNegativeHit(domain)
		return nil
	}
	metrics.RecordCacheMiss(domain)

	records, err := fallback.Run(ctx, s.policy, s.logger, attempts)
	if err == nil {
		store.Set(s.cache, key, records, s.cfg.PositiveTTL(), s.logger)
		return records
	}

	if stale, ok := store.GetStale[[]T](s.cache, key, s.logger); ok {
		s.logger.Warn("Serving stale stats after failed refresh",
			zap.String("domain", domain), zap.String("alias", alias), zap.String("lane", lane))
		metrics.RecordStaleServed(domain)
		return stale
	}

	if errors.Is(err, fallback.ErrNoData) {
		store.SetNegative(s.cache, key, s.cfg.NegativeTTL())
		metrics.RecordFallbackExhausted(domain)
		s.logger.Warn("No stats available",
			zap.String("domain", domain), zap.String("alias", alias), zap.String("lane", lane))
	}
	return nil
}

// variant is one point on the retry axes: which content version and lane a
// fetch asks for, over which channel.
type variant struct {
	patch string
	lane  string
	page  bool
}

// variants orders the fallback axes: exact patch before the trailing-30-day
// aggregate, the requested lane before the champion's default lane, and the
// structured channel before the page channel.
func (s *Service) variants(alias, lane string) []variant {
	lanes := []string{lane}
	if traits, ok := s.directory.Traits(alias); ok {
		if traits.DefaultLane != "" && traits.DefaultLane != lane {
			lanes = append(lanes, traits.DefaultLane)
		}
	}

	patches := []string{trailingPatch}
	if current := s.directory.CurrentPatch(); current != "" {
		patches = []string{current, trailingPatch}
	}

	out := make([]variant, 0, len(lanes)*(len(patches)+1))
	for _, ln := range lanes {
		for _, p := range patches {
			out = append(out, variant{patch: p, lane: ln})
		}
	}
	for _, ln := range lanes {
		out = append(out, variant{lane: ln, page: true})
	}
	return out
}

func (s *Service) queryParams(ep, alias, patch, lane string) url.Values {
	return url.Values{
		"ep":     {ep},
		"patch":  {patch},
		"c":      {alias},
		"lane":   {lane},
		"tier":   {s.cfg.Upstream.Tier},
		"queue":  {s.cfg.Upstream.Queue},
		"region": {s.cfg.Upstream.Region},
	}
}

func pagePath(alias, section string) string {
	return fmt.Sprintf("/lol/%s/%s/", alias, section)
}

func (s *Service) matchupAttempts(alias, lane string) []fallback.Attempt[models.Matchup] {
	minSample := s.cfg.Cache.MinSampleSize
	attempts := make([]fallback.Attempt[models.Matchup], 0)
	for _, v := range s.variants(alias, lane) {
		v := v
		if v.page {
			attempts = append(attempts, fallback.Attempt[models.Matchup]{
				Label: fmt.Sprintf("counters page lane=%s", v.lane),
				Do: func(ctx context.Context) ([]models.Matchup, error) {
					body, err := s.client.FetchPage(ctx, pagePath(alias, "counters"), url.Values{"lane": {v.lane}})
					if err != nil {
						return nil, err
					}
					resp, err := decodePageState[countersResponse](body, countersSignature)
					if err != nil {
						return nil, err
					}
					return extractMatchups(resp, s.directory, minSample), nil
				},
			})
			continue
		}
		attempts = append(attempts, fallback.Attempt[models.Matchup]{
			Label: fmt.Sprintf("counters primary patch=%s lane=%s", v.patch, v.lane),
			Do: func(ctx context.Context) ([]models.Matchup, error) {
				var resp countersResponse
				if err := s.client.Query(ctx, s.queryParams(epCounters, alias, v.patch, v.lane), &resp); err != nil {
					return nil, err
				}
				return extractMatchups(&resp, s.directory, minSample), nil
			},
		})
	}
	return attempts
}

func (s *Service) buildAttempts(alias, lane string) []fallback.Attempt[models.Build] {
	minSample := s.cfg.Cache.MinSampleSize
	attempts := make([]fallback.Attempt[models.Build], 0)
	for _, v := range s.variants(alias, lane) {
		v := v
		if v.page {
			attempts = append(attempts, fallback.Attempt[models.Build]{
				Label: fmt.Sprintf("build page lane=%s", v.lane),
				Do: func(ctx context.Context) ([]models.Build, error) {
					body, err := s.client.FetchPage(ctx, pagePath(alias, "build"), url.Values{"lane": {v.lane}})
					if err != nil {
						return nil, err
					}
					resp, err := decodePageState[buildResponse](body, buildSignature)
					if err != nil {
						return nil, err
					}
					return buildRecords(resp, minSample), nil
				},
			})
			continue
		}
		attempts = append(attempts, fallback.Attempt[models.Build]{
			Label: fmt.Sprintf("build primary patch=%s lane=%s", v.patch, v.lane),
			Do: func(ctx context.Context) ([]models.Build, error) {
				var resp buildResponse
				if err := s.client.Query(ctx, s.queryParams(epBuild, alias, v.patch, v.lane), &resp); err != nil {
					return nil, err
				}
				return buildRecords(&resp, minSample), nil
			},
		})
	}
	return attempts
}

func (s *Service) runeAttempts(alias, lane string) []fallback.Attempt[runesBundle] {
	minSample := s.cfg.Cache.MinSampleSize
	attempts := make([]fallback.Attempt[runesBundle], 0)
	for _, v := range s.variants(alias, lane) {
		v := v
		if v.page {
			attempts = append(attempts, fallback.Attempt[runesBundle]{
				Label: fmt.Sprintf("runes page lane=%s", v.lane),
				Do: func(ctx context.Context) ([]runesBundle, error) {
					body, err := s.client.FetchPage(ctx, pagePath(alias, "build"), url.Values{"lane": {v.lane}})
					if err != nil {
						return nil, err
					}
					resp, err := decodePageState[runesResponse](body, runesSignature)
					if err != nil {
						return nil, err
					}
					return bundleRecords(resp, minSample), nil
				},
			})
			continue
		}
		attempts = append(attempts, fallback.Attempt[runesBundle]{
			Label: fmt.Sprintf("runes primary patch=%s lane=%s", v.patch, v.lane),
			Do: func(ctx context.Context) ([]runesBundle, error) {
				var resp runesResponse
				if err := s.client.Query(ctx, s.queryParams(epRunes, alias, v.patch, v.lane), &resp); err != nil {
					return nil, err
				}
				return bundleRecords(&resp, minSample), nil
			},
		})
	}
	return attempts
}

// buildRecords adapts the single-record build extraction to the slice shape
// the fallback runner expects.
func buildRecords(resp *buildResponse, minSample int) []models.Build {
	build := extractBuild(resp, minSample)
	if build == nil {
		return nil
	}
	return []models.Build{*build}
}

// bundleRecords wraps the rune/skill extraction; an empty bundle counts as
// a failed attempt.
func bundleRecords(resp *runesResponse, minSample int) []runesBundle {
	pages := extractRunePages(resp, minSample)
	plan := extractSkillPlan(resp, minSample)
	if len(pages) == 0 && plan == nil {
		return nil
	}
	return []runesBundle{{Pages: pages, Plan: plan}}
}
