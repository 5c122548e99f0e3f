package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "x.db", "-t", "5", "-p", "/login", "-l", "debug"},
			expected: &Config{
				APIBaseURL:     "http://127.0.0.1:9090",
				StoragePath:    "x.db",
				RequestTimeout: 5 * time.Second,
				StartPath:      "/login",
				LogLevel:       "debug",
			},
		},
		{
			name: "config flag is ignored",
			args: []string{"-c", "conf.json", "-t", "7"},
			expected: &Config{
				RequestTimeout: 7 * time.Second,
			},
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, wantErr: true},
		{
			name:     "absent timeout keeps previous value",
			args:     []string{"-l", "warn"},
			expected: &Config{RequestTimeout: 1500 * time.Millisecond, LogLevel: "warn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RequestTimeout: 1500 * time.Millisecond}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
