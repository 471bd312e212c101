package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-champ-stats/internal/models"
)

// stubStats records the last call and returns canned data
type stubStats struct {
	counters    []models.Matchup
	picks       []models.Counterpick
	suggestions []models.PickSuggestion
	build       *models.Build
	pages       []models.RunePage
	plan        *models.SkillPlan

	lastAlias   string
	lastLane    string
	lastEnemies []string
	lastAllies  []int
	resets      int
}

func (s *stubStats) Counters(_ context.Context, alias, lane string) []models.Matchup {
	s.lastAlias, s.lastLane = alias, lane
	return s.counters
}

func (s *stubStats) BestCounterpicks(_ context.Context, alias, lane string) []models.Counterpick {
	s.lastAlias, s.lastLane = alias, lane
	return s.picks
}

func (s *stubStats) BestOverallPick(_ context.Context, enemies []string, lane string, allies []int) []models.PickSuggestion {
	s.lastEnemies, s.lastLane, s.lastAllies = enemies, lane, allies
	return s.suggestions
}

func (s *stubStats) Build(_ context.Context, alias, lane string) *models.Build {
	s.lastAlias, s.lastLane = alias, lane
	return s.build
}

func (s *stubStats) RecommendedRunes(_ context.Context, alias, lane string) []models.RunePage {
	s.lastAlias, s.lastLane = alias, lane
	return s.pages
}

func (s *stubStats) SkillPlan(_ context.Context, alias, lane string) *models.SkillPlan {
	s.lastAlias, s.lastLane = alias, lane
	return s.plan
}

func (s *stubStats) Reset() {
	s.resets++
}

func newTestServer(t *testing.T, stats *stubStats) *httptest.Server {
	t.Helper()
	server := NewServer(stats, zaptest.NewLogger(t))
	ts := httptest.NewServer(server.createRouter())
	t.Cleanup(ts.Close)
	return ts
}

func decodeResponse(t *testing.T, resp *http.Response) StatsResponse {
	t.Helper()
	defer resp.Body.Close()
	var out StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandleCounters(t *testing.T) {
	stats := &stubStats{counters: []models.Matchup{
		{OpponentAlias: "tryndamere", OpponentName: "Tryndamere", WinRate: 47.3, Games: 1200},
	}}
	ts := newTestServer(t, stats)

	resp, err := http.Get(ts.URL + "/api/counters/aatrox?lane=top")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
	assert.Equal(t, "aatrox", stats.lastAlias)
	assert.Equal(t, "top", stats.lastLane)
}

func TestHandleCounters_MissingLane(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/api/counters/aatrox")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "lane")
}

func TestHandleCounters_EmptyResultStillSucceeds(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/api/counters/aatrox?lane=top")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
}

func TestHandleBestPick(t *testing.T) {
	stats := &stubStats{suggestions: []models.PickSuggestion{
		{Alias: "malphite", Score: 57.5},
	}}
	ts := newTestServer(t, stats)

	resp, err := http.Get(ts.URL + "/api/bestpick?enemies=garen,tryndamere&lane=top&allies=266,54")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, []string{"garen", "tryndamere"}, stats.lastEnemies)
	assert.Equal(t, []int{266, 54}, stats.lastAllies)
	assert.Equal(t, "top", stats.lastLane)
}

func TestHandleBestPick_InvalidAllyKey(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/api/bestpick?enemies=garen&lane=top&allies=notanumber")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleBestPick_MissingEnemies(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/api/bestpick?lane=top")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCacheReset(t *testing.T) {
	stats := &stubStats{}
	ts := newTestServer(t, stats)

	resp, err := http.Post(ts.URL+"/api/cache/reset", "application/json", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.resets)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
}

func TestHandleCacheReset_GetRejected(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/api/cache/reset")
	require.NoError(t, err)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, &stubStats{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleBuild(t *testing.T) {
	stats := &stubStats{build: &models.Build{
		StartingItems: []int{1055, 2003},
		FullBuild:     []int{3047, 3071, 3053, 3065, 3156, 3026},
	}}
	ts := newTestServer(t, stats)

	resp, err := http.Get(ts.URL + "/api/build/aatrox?lane=top")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
}
