package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	l := Logger{Level: "warn", Format: "json"}
	l.SetupWriter(&buf)

	log.Info().Msg("hidden")
	log.Warn().Str("path", "a.xlsx").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "a.xlsx", entry["path"])
	assert.Equal(t, "shown", entry["message"])
}

func TestSetupConsoleFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	l := Logger{Level: "nonsense", NoColor: true}
	l.SetupWriter(&buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Debug().Msg("hidden")
	log.Info().Msg("converted")
	assert.Contains(t, buf.String(), "converted")
	assert.NotContains(t, buf.String(), "hidden")
}
