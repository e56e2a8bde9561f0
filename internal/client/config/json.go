package config

import (
	"encoding/json"
	"os"

	"github.com/sieke13/bookshelf/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-empty values are copied into the runtime Config.
type JsonConfig struct {
	ServerBaseURL     string `json:"server_base_url"`
	CatalogBaseURL    string `json:"catalog_base_url"`
	GoogleBooksAPIKey string `json:"google_books_api_key"`
	StateDir          string `json:"state_dir"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path is resolved from the -c/-config flags via flagx.JsonConfigFlags; when
// no path is given the function returns without touching cfg. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.CatalogBaseURL != "" {
		cfg.CatalogBaseURL = jc.CatalogBaseURL
	}
	if jc.GoogleBooksAPIKey != "" {
		cfg.GoogleBooksAPIKey = jc.GoogleBooksAPIKey
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
}
