package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-champ-stats/internal/config"
	"go-champ-stats/internal/limiter"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	cfg := &config.UpstreamConfig{
		BaseURL:        serverURL,
		QueryEndpoint:  "/mega/",
		TimeoutSeconds: 2,
		UserAgent:      "test-agent",
	}
	bucket := limiter.New(10, time.Millisecond, zap.NewNop())
	return NewClient(cfg, bucket, zap.NewNop())
}

func TestClient_Query(t *testing.T) {
	var gotPath, gotUA, gotEP string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotEP = r.URL.Query().Get("ep")
		w.Write([]byte(`{"win": 51.5, "n": 1200}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out struct {
		Win float64 `json:"win"`
		N   int     `json:"n"`
	}
	params := map[string][]string{"ep": {"counter"}, "lane": {"top"}}
	err := client.Query(context.Background(), params, &out)

	require.NoError(t, err)
	assert.Equal(t, "/mega/", gotPath)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "counter", gotEP)
	assert.Equal(t, 51.5, out.Win)
	assert.Equal(t, 1200, out.N)
}

func TestClient_Query_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out map[string]any
	err := client.Query(context.Background(), nil, &out)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Query_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>actually a block page</html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out map[string]any
	err := client.Query(context.Background(), nil, &out)

	assert.Error(t, err)
}

func TestClient_FetchPage(t *testing.T) {
	page := `<html><script type="qwik/json">{"objs":[1]}</script></html>`
	var gotPath, gotLane string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLane = r.URL.Query().Get("lane")
		w.Write([]byte(page))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	body, err := client.FetchPage(context.Background(), "/lol/aatrox/build/", map[string][]string{"lane": {"top"}})

	require.NoError(t, err)
	assert.Equal(t, "/lol/aatrox/build/", gotPath)
	assert.Equal(t, "top", gotLane)
	assert.Equal(t, page, string(body))
}

func TestClient_RequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchPage(ctx, "/slow/", nil)
	assert.Error(t, err)
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := &config.UpstreamConfig{
		BaseURL:        server.URL,
		QueryEndpoint:  "/mega/",
		TimeoutSeconds: 2,
		UserAgent:      "test-agent",
	}
	refill := 20 * time.Millisecond
	bucket := limiter.New(1, refill, zap.NewNop())
	client := NewClient(cfg, bucket, zap.NewNop())

	var out map[string]any
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, client.Query(context.Background(), nil, &out))
	}

	// Two of the three requests had to wait for refills
	assert.GreaterOrEqual(t, time.Since(start), 2*refill-refill/2)
}
