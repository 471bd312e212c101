package ddragon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const championFixture = `{
	"data": {
		"Aatrox": {
			"id": "Aatrox", "key": "266", "name": "Aatrox",
			"tags": ["Fighter", "Tank"],
			"info": {"attack": 8, "defense": 4, "magic": 3}
		},
		"Annie": {
			"id": "Annie", "key": "1", "name": "Annie",
			"tags": ["Mage"],
			"info": {"attack": 2, "defense": 3, "magic": 10}
		},
		"Jinx": {
			"id": "Jinx", "key": "222", "name": "Jinx",
			"tags": ["Marksman"],
			"info": {"attack": 9, "defense": 2, "magic": 4}
		},
		"Malphite": {
			"id": "Malphite", "key": "54", "name": "Malphite",
			"tags": ["Tank", "Mage"],
			"info": {"attack": 5, "defense": 9, "magic": 7}
		}
	}
}`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["15.17.1", "15.16.1"]`))
	})
	mux.HandleFunc("/cdn/15.17.1/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(championFixture))
	})
	return httptest.NewServer(mux)
}

func TestLoad(t *testing.T) {
	server := newFixtureServer(t)
	defer server.Close()

	dir, err := Load(context.Background(), server.URL, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "15.17", dir.CurrentPatch())
	assert.Equal(t, "15.17.1", dir.FullVersion())

	alias, ok := dir.AliasByKey(266)
	require.True(t, ok)
	assert.Equal(t, "aatrox", alias)

	name, ok := dir.NameByKey(222)
	require.True(t, ok)
	assert.Equal(t, "Jinx", name)

	_, ok = dir.AliasByKey(99999)
	assert.False(t, ok)

	assert.Equal(t, []string{"aatrox", "annie", "jinx", "malphite"}, dir.Aliases())
}

func TestLoad_Traits(t *testing.T) {
	server := newFixtureServer(t)
	defer server.Close()

	dir, err := Load(context.Background(), server.URL, zap.NewNop())
	require.NoError(t, err)

	aatrox, ok := dir.Traits("aatrox")
	require.True(t, ok)
	assert.Equal(t, "physical", aatrox.Damage)
	assert.True(t, aatrox.Frontline) // Tank tag
	assert.Equal(t, []string{"fighter", "tank"}, aatrox.Roles)
	assert.Equal(t, "top", aatrox.DefaultLane)

	annie, ok := dir.Traits("Annie") // case-insensitive lookup
	require.True(t, ok)
	assert.Equal(t, "magic", annie.Damage)
	assert.False(t, annie.Frontline)
	assert.Equal(t, "middle", annie.DefaultLane)

	jinx, ok := dir.Traits("jinx")
	require.True(t, ok)
	assert.Equal(t, "bottom", jinx.DefaultLane)

	malphite, ok := dir.Traits("malphite")
	require.True(t, ok)
	assert.Equal(t, "mixed", malphite.Damage)
	assert.True(t, malphite.Frontline)
}

func TestLoad_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL, zap.NewNop())

	assert.Error(t, err)
}

func TestLoad_EmptyVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := Load(context.Background(), server.URL, zap.NewNop())

	assert.Error(t, err)
}
