// Package cli implements the interactive Bookshelf client: a small REPL for
// searching the Google Books catalog and managing the saved-books list on the
// server.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/sieke13/bookshelf/internal/catalog"
	"github.com/sieke13/bookshelf/internal/client/api"
	"github.com/sieke13/bookshelf/internal/client/cache"
	"github.com/sieke13/bookshelf/internal/client/config"
	"github.com/sieke13/bookshelf/internal/client/session"
	"github.com/sieke13/bookshelf/internal/models"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Store
	cache   *cache.Cache
	catalog *catalog.Client
	reader  *bufio.Reader

	username string
	// lastResults holds the books from the most recent search; the save
	// command refers to them by 1-based index.
	lastResults []models.Book
}

func NewApp(c *config.Config) *App {
	sess := session.NewStore(c.StateDir)

	opts := []catalog.Option{catalog.WithBaseURL(c.CatalogBaseURL)}
	if c.GoogleBooksAPIKey != "" {
		opts = append(opts, catalog.WithAPIKey(c.GoogleBooksAPIKey))
	}

	return &App{
		config:  c,
		api:     api.NewClient(c.ServerBaseURL, sess.Token),
		session: sess,
		cache:   cache.New(c.StateDir),
		catalog: catalog.NewClient(opts...),
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.username != "" {
		return "(" + a.username + ")"
	}
	return "(logged in)"
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to Bookshelf (type 'help' for commands)")

	// Restore the username from the cached profile so the prompt is
	// personalized without a server round trip.
	if p, err := a.cache.Load(); err == nil && p != nil {
		a.username = p.Username
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
