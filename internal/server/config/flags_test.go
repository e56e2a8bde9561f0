package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "overrides",
			args: []string{"cmd", "-a", ":5000", "-m", "mongodb://flag:27017", "-t", "30"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":5000", c.Addr)
				assert.Equal(t, "mongodb://flag:27017", c.MongoURI)
				assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
			},
		},
		{
			name:        "bad validity",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
		{
			name: "unknown flags filtered out",
			args: []string{"cmd", "-zz", "whatever", "-a", ":5001"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":5001", c.Addr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			var c Config
			c.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&c) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&c) })
			tt.check(t, &c)
		})
	}
}
