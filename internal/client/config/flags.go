package config

import (
	"flag"
	"os"

	"github.com/sieke13/bookshelf/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the Bookshelf server
//	-g string   base URL of the Google Books API
//	-k string   Google Books API key
//	-d string   state directory for token and cache files
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-k", "-d"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the server")
	fs.StringVar(&cfg.CatalogBaseURL, "g", cfg.CatalogBaseURL, "base URL of the books catalog")
	fs.StringVar(&cfg.GoogleBooksAPIKey, "k", cfg.GoogleBooksAPIKey, "catalog API key")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "state directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
