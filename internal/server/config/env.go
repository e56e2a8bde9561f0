package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it (godotenv does not overwrite existing values).
//
// Recognized variables:
//
//	BOOKSHELF_ADDR          bind address, e.g. ":3001"
//	MONGODB_URI             connection string
//	MONGODB_DATABASE        database name
//	JWT_SECRET_KEY          token signing secret
//	JWT_TOKEN_VALIDITY      token lifetime, Go duration syntax ("2h")
//	HEARTBEAT_SCHEDULE      cron spec for the heartbeat job
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BOOKSHELF_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("JWT_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("HEARTBEAT_SCHEDULE"); v != "" {
		cfg.HeartbeatSchedule = v
	}
}
