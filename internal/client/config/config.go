package config

// Config holds runtime settings for the Bookshelf CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the Bookshelf server (GraphQL and REST).
//   - CatalogBaseURL: base URL of the Google Books volumes API.
//   - GoogleBooksAPIKey: optional API key appended to catalog queries.
//   - StateDir: directory for the token file and the saved-books cache.
type Config struct {
	ServerBaseURL     string
	CatalogBaseURL    string
	GoogleBooksAPIKey string
	StateDir          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3001"
	c.CatalogBaseURL = "https://www.googleapis.com/books/v1"
	c.StateDir = ".bookshelf"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
