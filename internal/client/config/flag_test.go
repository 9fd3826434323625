package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://api.local:8080/", "-d", "/tmp/p.db", "-t", "15", "-i", "10", "-l", "debug"},
			expected: &Config{
				APIBaseURL:          "http://api.local:8080",
				DatabasePath:        "/tmp/p.db",
				RequestTimeout:      15 * time.Second,
				OnlineCheckInterval: 10 * time.Second,
				LogLevel:            "debug",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"cmd", "-c", "cfg.json", "-x", "-t", "0"},
			expected: &Config{
				APIBaseURL:          "http://localhost:4000",
				DatabasePath:        "profile.db",
				OnlineCheckInterval: 3 * time.Second,
				LogLevel:            "info",
			},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
		{name: "bad check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
