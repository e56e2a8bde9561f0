package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sieke13/bookshelf/internal/catalog"
	"github.com/sieke13/bookshelf/internal/client/api"
	"github.com/sieke13/bookshelf/internal/client/cache"
	"github.com/sieke13/bookshelf/internal/client/config"
	"github.com/sieke13/bookshelf/internal/client/session"
	"github.com/sieke13/bookshelf/internal/logging"
	"github.com/sieke13/bookshelf/internal/server/auth"
	srvconfig "github.com/sieke13/bookshelf/internal/server/config"
	"github.com/sieke13/bookshelf/internal/server/graph"
	"github.com/sieke13/bookshelf/internal/server/rest"
	"github.com/sieke13/bookshelf/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesFixture = `{
  "items": [
    {
      "id": "vol-1",
      "volumeInfo": {
        "title": "Dune",
        "authors": ["Frank Herbert"],
        "description": "Spice",
        "imageLinks": {"thumbnail": "http://img/dune.jpg"},
        "infoLink": "http://example.com/dune"
      }
    },
    {
      "id": "vol-2",
      "volumeInfo": {
        "title": "Mystery Volume"
      }
    }
  ]
}`

func newBookshelfServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &srvconfig.Config{SecretKey: "cli-test-secret", TokenValidityDuration: time.Hour}
	svc := users.NewService(users.NewInMemoryRepository(), cfg)

	schema, err := graph.NewSchema(svc)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	e := echo.New()
	e.Use(auth.Middleware([]byte(cfg.SecretKey), logger))
	e.POST("/graphql", graph.NewHandler(schema, logger).Serve)
	rest.NewHandler(svc).RegisterRoutes(e.Group("/api"))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, volumesFixture)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestApp builds an App wired to in-process servers, with stdin replaced
// by the given script and output captured into the returned slice.
func newTestApp(t *testing.T, stdin string) (*App, *[]string) {
	t.Helper()

	server := newBookshelfServer(t)
	catalogSrv := newCatalogServer(t)
	stateDir := t.TempDir()

	cfg := &config.Config{
		ServerBaseURL:  server.URL,
		CatalogBaseURL: catalogSrv.URL,
		StateDir:       stateDir,
	}

	sess := session.NewStore(stateDir)
	app := &App{
		config:  cfg,
		api:     api.NewClient(cfg.ServerBaseURL, sess.Token),
		session: sess,
		cache:   cache.New(stateDir),
		catalog: catalog.NewClient(catalog.WithBaseURL(cfg.CatalogBaseURL)),
		reader:  bufio.NewReader(strings.NewReader(stdin)),
	}

	lines := &[]string{}
	origPrint := printlnFn
	printlnFn = func(a ...any) {
		*lines = append(*lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
	}
	t.Cleanup(func() { printlnFn = origPrint })

	origRead := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret123"), nil }
	t.Cleanup(func() { readPassword = origRead })

	return app, lines
}

func output(lines *[]string) string {
	return strings.Join(*lines, "\n")
}

func registerTestUser(t *testing.T, app *App) {
	t.Helper()
	require.NoError(t, app.Register(context.Background()))
	require.True(t, app.isLoggedIn())
}

func TestRegisterLoginLogout(t *testing.T) {
	app, lines := newTestApp(t, "reader\nreader@example.com\nreader@example.com\n")
	ctx := context.Background()

	registerTestUser(t, app)
	assert.Contains(t, output(lines), "Registered and logged in as reader")

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())

	// Login with the email line remaining in the script.
	require.NoError(t, app.Login(ctx))
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, output(lines), "Login successful")
}

func TestSearchSaveListRemove(t *testing.T) {
	app, lines := newTestApp(t, "reader\nreader@example.com\n")
	ctx := context.Background()

	registerTestUser(t, app)

	require.NoError(t, app.Search(ctx, "dune"))
	out := output(lines)
	assert.Contains(t, out, "1. Dune by Frank Herbert [vol-1]")
	assert.Contains(t, out, "Mystery Volume by No author to display [vol-2]")

	require.NoError(t, app.Save(ctx, "1"))
	assert.True(t, app.cache.IsSaved("vol-1"))

	// A repeated search marks the saved result.
	*lines = (*lines)[:0]
	require.NoError(t, app.Search(ctx, "dune"))
	assert.Contains(t, output(lines), "*  1. Dune")

	*lines = (*lines)[:0]
	require.NoError(t, app.List(ctx))
	assert.Contains(t, output(lines), "Dune by Frank Herbert [vol-1]")

	require.NoError(t, app.Remove(ctx, "vol-1"))
	assert.False(t, app.cache.IsSaved("vol-1"))
}

func TestSaveRequiresLogin(t *testing.T) {
	app, lines := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, app.Search(ctx, "dune"))
	require.NoError(t, app.Save(ctx, "1"))

	assert.Contains(t, output(lines), "You need to log in first")
	assert.False(t, app.cache.IsSaved("vol-1"))
}

func TestSaveRejectsBadIndex(t *testing.T) {
	app, lines := newTestApp(t, "reader\nreader@example.com\n")
	ctx := context.Background()

	registerTestUser(t, app)
	require.NoError(t, app.Search(ctx, "dune"))

	require.NoError(t, app.Save(ctx, "99"))
	require.NoError(t, app.Save(ctx, "zero"))

	assert.Contains(t, output(lines), "Usage: save <n>")
	assert.False(t, app.cache.IsSaved("vol-1"))
}

func TestWhoami(t *testing.T) {
	app, lines := newTestApp(t, "reader\nreader@example.com\n")
	ctx := context.Background()

	require.NoError(t, app.Whoami(ctx))
	assert.Contains(t, output(lines), "Not logged in")

	registerTestUser(t, app)

	*lines = (*lines)[:0]
	require.NoError(t, app.Whoami(ctx))
	assert.Contains(t, output(lines), "reader <reader@example.com>")
}
