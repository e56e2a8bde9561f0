package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it (godotenv does not overwrite existing values).
//
// Recognized variables:
//
//	BOOKSHELF_SERVER_URL    base URL of the Bookshelf server
//	BOOKSHELF_CATALOG_URL   base URL of the Google Books API
//	GOOGLE_BOOKS_API_KEY    catalog API key
//	BOOKSHELF_STATE_DIR     directory for token and cache files
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BOOKSHELF_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("BOOKSHELF_CATALOG_URL"); v != "" {
		cfg.CatalogBaseURL = v
	}
	if v := os.Getenv("GOOGLE_BOOKS_API_KEY"); v != "" {
		cfg.GoogleBooksAPIKey = v
	}
	if v := os.Getenv("BOOKSHELF_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
}
