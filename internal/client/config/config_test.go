package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, "questionnaire.db", c.StoragePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "/", c.StartPath)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_NoArgsKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "http://json.example:9000",
		"request_timeout": "30s",
		"log_level":       "debug",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag.example"})

	require.NoError(t, err)
	assert.Equal(t, "http://flag.example", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_SubSecondJSONTimeout(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		args []string
		want time.Duration
	}{
		{name: "milliseconds", raw: "500ms", want: 500 * time.Millisecond},
		{name: "fractional seconds", raw: "2500ms", want: 2500 * time.Millisecond},
		{name: "flag still wins", raw: "500ms", args: []string{"-t", "3"}, want: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempJSON(t, map[string]any{"request_timeout": tt.raw})

			cfg, err := LoadConfig(append([]string{"-c", path}, tt.args...))

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.RequestTimeout)
		})
	}
}

func TestLoadConfig_BadJSONFails(t *testing.T) {
	_, err := LoadConfig([]string{"-c", "does-not-exist.json"})
	require.Error(t, err)
}
