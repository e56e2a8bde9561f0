package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sieke13/bookshelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDune = `{
  "items": [
    {
      "id": "vol-1",
      "volumeInfo": {
        "title": "Dune",
        "authors": ["Frank Herbert"],
        "description": "Desert planet.",
        "imageLinks": {"thumbnail": "http://img/dune.jpg"},
        "infoLink": "http://info/dune",
        "canonicalVolumeLink": "http://canon/dune"
      }
    },
    {
      "id": "vol-2",
      "volumeInfo": {
        "title": "Anonymous Pamphlet",
        "canonicalVolumeLink": "http://canon/pamphlet"
      }
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestSearch_NormalizesResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "Dune", r.URL.Query().Get("q"))
		w.Write([]byte(fixtureDune))
	})

	books, err := c.Search(context.Background(), "Dune")
	require.NoError(t, err)
	require.Len(t, books, 2)

	full := books[0]
	assert.Equal(t, "vol-1", full.BookID)
	assert.Equal(t, "Dune", full.Title)
	assert.Equal(t, []string{"Frank Herbert"}, full.Authors)
	assert.Equal(t, "Desert planet.", full.Description)
	assert.Equal(t, "http://img/dune.jpg", full.Image)
	assert.Equal(t, "http://info/dune", full.Link)

	sparse := books[1]
	assert.Equal(t, []string{common.NoAuthorPlaceholder}, sparse.Authors)
	assert.Equal(t, "", sparse.Description)
	assert.Equal(t, "", sparse.Image)
	// infoLink absent: canonical link is the fallback.
	assert.Equal(t, "http://canon/pamphlet", sparse.Link)
}

func TestSearch_APIKeyForwarded(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("k-123"), WithHTTPClient(srv.Client()))
	_, err := c.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "k-123", gotKey)
}

func TestSearch_UpstreamErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Search(context.Background(), "Dune")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorUpstreamUnavailable))
}

func TestSearch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "Dune")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorUpstreamUnavailable))
}

func TestSearch_EmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	books, err := c.Search(context.Background(), "nothing matches")
	require.NoError(t, err)
	assert.Empty(t, books)
}
