// Package config handles configuration for the server component, including
// defaults, environment overlay, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Bookshelf server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - MongoURI / MongoDatabase: document database connection settings.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Loaded once at
//     startup; do not use the development default in production.
//   - TokenValidityDuration: session token lifetime.
//   - HeartbeatSchedule: cron spec for the periodic health/stats job.
type Config struct {
	Addr                  string
	MongoURI              string
	MongoDatabase         string
	SecretKey             string
	TokenValidityDuration time.Duration
	HeartbeatSchedule     string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":3001"
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "bookshelf"
	c.SecretKey = "mysecretkey"
	c.TokenValidityDuration = 2 * time.Hour
	c.HeartbeatSchedule = "@every 5m"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
