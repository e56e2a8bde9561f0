package config

import (
	"flag"
	"os"
	"time"

	"github.com/sieke13/bookshelf/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-m string   MongoDB connection URI
//	-n string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-h string   heartbeat cron spec (e.g., "@every 5m")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-n", "-s", "-t", "-h"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "mongodb connection URI")
	fs.StringVar(&cfg.MongoDatabase, "n", cfg.MongoDatabase, "mongodb database name")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.StringVar(&cfg.HeartbeatSchedule, "h", cfg.HeartbeatSchedule, "heartbeat cron spec")

	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
