package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-champ-stats/internal/cache/l1"
	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/interfaces/mock"
	"go-champ-stats/internal/models"
)

func newCache(t *testing.T) interfaces.Cache {
	t.Helper()
	c, err := l1.NewBigCache(8, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestStore_SetAndGet(t *testing.T) {
	c := newCache(t)
	logger := zap.NewNop()
	ttl := models.TTL{Fresh: time.Minute, Stale: time.Minute}

	matchups := []models.Matchup{
		{OpponentAlias: "darius", OpponentName: "Darius", WinRate: 47.3, Games: 1200},
	}

	Set(c, "matchups:aatrox:top", matchups, ttl, logger)

	got, state := Get[[]models.Matchup](c, "matchups:aatrox:top", logger)

	assert.Equal(t, Hit, state)
	assert.Equal(t, matchups, got)
}

func TestStore_Get_Miss(t *testing.T) {
	c := newCache(t)

	got, state := Get[[]models.Matchup](c, "missing", zap.NewNop())

	assert.Equal(t, Miss, state)
	assert.Nil(t, got)
}

func TestStore_Get_NegativeHit(t *testing.T) {
	c := newCache(t)
	logger := zap.NewNop()

	SetNegative(c, "matchups:aatrox:top", models.TTL{Fresh: time.Minute})

	got, state := Get[[]models.Matchup](c, "matchups:aatrox:top", logger)

	assert.Equal(t, NegativeHit, state)
	assert.Nil(t, got)
}

func TestStore_Get_DecodeFailureIsMiss(t *testing.T) {
	c := newCache(t)
	logger := zap.NewNop()

	// A value of the wrong shape reads as a miss, never as corrupt data
	Set(c, "key", "just a string", models.TTL{Fresh: time.Minute}, logger)

	got, state := Get[[]models.Matchup](c, "key", logger)

	assert.Equal(t, Miss, state)
	assert.Nil(t, got)
}

func TestStore_GetStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockCache(ctrl)
	logger := zap.NewNop()

	build := models.Build{StartingItems: []int{1055, 2003}, FullBuild: []int{3153, 3047, 3071, 3053, 3065, 3026}}
	data, err := json.Marshal(build)
	require.NoError(t, err)

	// A stale entry: miss for Get, available via GetStale
	now := time.Now().Unix()
	entry := &models.CacheEntry{
		Data:      data,
		CreatedAt: now - 200,
		StaleAt:   now - 50,
		ExpiresAt: now + 100,
	}

	c.EXPECT().Get("builds:aatrox:top").Return(nil, false)
	_, state := Get[models.Build](c, "builds:aatrox:top", logger)
	assert.Equal(t, Miss, state)

	c.EXPECT().GetStale("builds:aatrox:top").Return(entry, true)
	got, ok := GetStale[models.Build](c, "builds:aatrox:top", logger)
	assert.True(t, ok)
	assert.Equal(t, build, got)
}

func TestStore_GetStale_NegativeNeverServed(t *testing.T) {
	c := newCache(t)
	logger := zap.NewNop()

	SetNegative(c, "runes:ahri:middle", models.TTL{Fresh: time.Minute})

	_, ok := GetStale[models.RunePage](c, "runes:ahri:middle", logger)
	assert.False(t, ok)
}
