package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Run("Default Level Info", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true}, &bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true, Level: "DEBUG"}, &bytes.Buffer{})
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("JSON Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Enabled: true, Level: "info", Format: "json"}, &buf)
		logger.Info().Int("questions", 60).Msg("fetch concluído")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "fetch concluído", entry["message"])
		assert.Equal(t, float64(60), entry["questions"])
		assert.Equal(t, "onet-interest-profiler", entry["service"])
		assert.Contains(t, entry, "time")
	})

	t.Run("Console Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Enabled: true, Format: "console"}, &buf)
		logger.Info().Msg("olá")
		assert.Contains(t, buf.String(), "olá")
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Enabled: false}, &buf)
		logger.Info().Msg("teste")
		assert.Empty(t, buf.String())
	})
}
