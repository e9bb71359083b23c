package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{Paths: []string{"mods"}})
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.RootName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "no paths", cfg: Config{}, wantErr: "at least one declaration path"},
		{name: "bad level", cfg: Config{Paths: []string{"m"}, LogLevel: "loud"}, wantErr: "invalid log level"},
		{name: "bad format", cfg: Config{Paths: []string{"m"}, LogFormat: "xml"}, wantErr: "invalid log format"},
		{name: "bad port", cfg: Config{Paths: []string{"m"}, HealthcheckPort: 70000}, wantErr: "invalid healthcheck port"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("warn", "json", &buf)
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("debug", "console", &buf)
		logger.Debug("details")
		assert.Contains(t, buf.String(), "DEBUG")
		assert.Contains(t, buf.String(), "details")
	})
}
