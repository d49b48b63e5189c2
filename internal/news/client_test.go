package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", 5*time.Second, nil)
	client.baseURL = server.URL
	return client
}

func TestClientFetch(t *testing.T) {
	t.Run("parses articles and request shape", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/everything", r.URL.Path)
			assert.Equal(t, `"forest fire" OR wildfire OR bushfire`, q.Get("q"))
			assert.Equal(t, "publishedAt", q.Get("sortBy"))
			assert.Equal(t, "en", q.Get("language"))
			assert.Equal(t, "30", q.Get("pageSize"))
			assert.Equal(t, "test-key", q.Get("apiKey"))
			assert.Contains(t, q.Get("excludeDomains"), "imdb.com")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": "ok",
				"articles": [
					{"source":{"name":"Example Wire"},"title":" Wildfire spreads ","description":"A fire","url":"https://example.com/a","urlToImage":"https://example.com/a.jpg","publishedAt":"2026-08-01T10:00:00Z"},
					{"source":{"name":"Other"},"title":"Bushfire contained","description":"","url":"https://example.com/b"}
				]
			}`))
		})

		articles, err := client.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "Wildfire spreads", articles[0].Title)
		assert.Equal(t, "Example Wire", articles[0].Source)
		assert.Equal(t, "https://example.com/a", articles[0].URL)
		assert.Equal(t, "Bushfire contained", articles[1].Title)
	})

	t.Run("non-ok status degrades to empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
		})

		articles, err := client.Fetch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("missing articles field degrades to empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})

		articles, err := client.Fetch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("http error propagates", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		})

		_, err := client.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("malformed body propagates", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{broken`))
		})

		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	})
}
