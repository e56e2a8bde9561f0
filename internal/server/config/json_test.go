package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_AppliesValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"addr": ":4000",
		"mongodb_uri": "mongodb://json:27017",
		"secret_key": "from-json",
		"token_validity_duration": "90m"
	}`)

	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":4000", c.Addr)
	assert.Equal(t, "mongodb://json:27017", c.MongoURI)
	assert.Equal(t, "from-json", c.SecretKey)
	assert.Equal(t, 90*time.Minute, c.TokenValidityDuration)
	// Fields absent from the file stay at their defaults.
	assert.Equal(t, "bookshelf", c.MongoDatabase)
}

func TestParseJson_NoFileFlag_NoChange(t *testing.T) {
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	before := c
	parseJson(&c)

	assert.Equal(t, before, c)
}

func TestParseJson_InvalidJSON_Panics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(&c) })
}

func TestJsonConfig_DurationForms(t *testing.T) {
	var jc JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{"token_validity_duration": 7200000000000}`), &jc))
	assert.Equal(t, 2*time.Hour, time.Duration(jc.TokenValidityDuration.Duration))
}
