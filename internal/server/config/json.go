package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sieke13/bookshelf/internal/flagx"
	"github.com/sieke13/bookshelf/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the token lifetime either as a string
// like "2h" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	Addr                  string         `json:"addr"`
	MongoURI              string         `json:"mongodb_uri"`
	MongoDatabase         string         `json:"mongodb_database"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	HeartbeatSchedule     string         `json:"heartbeat_schedule"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When no file is given, nothing is loaded. Read or
// unmarshal errors panic; configuration problems should stop startup.
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

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.MongoURI != "" {
		cfg.MongoURI = jc.MongoURI
	}
	if jc.MongoDatabase != "" {
		cfg.MongoDatabase = jc.MongoDatabase
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = time.Duration(jc.TokenValidityDuration.Duration)
	}
	if jc.HeartbeatSchedule != "" {
		cfg.HeartbeatSchedule = jc.HeartbeatSchedule
	}
}
