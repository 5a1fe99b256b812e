package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeToWriter(t *testing.T) {
	var buf bytes.Buffer
	log, file, err := New().ToWriter(&buf).Level(zerolog.DebugLevel).Make()
	require.NoError(t, err)
	assert.Nil(t, file)

	log.Debug().Str("key", "value").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "value", line["key"])
	assert.NotEmpty(t, line["time"])
}

func TestMakeLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New().ToWriter(&buf).Level(zerolog.WarnLevel).Make()
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestMakeToPathAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdk.log")

	log, file, err := New().ToPath(path).Make()
	require.NoError(t, err)
	require.NotNil(t, file)
	log.Info().Msg("first")
	require.NoError(t, file.Close())

	log, file, err = New().ToPath(path).Make()
	require.NoError(t, err)
	log.Info().Msg("second")
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestMakeBadPath(t *testing.T) {
	_, _, err := New().ToPath(filepath.Join(t.TempDir(), "missing", "sdk.log")).Make()
	assert.Error(t, err)
}
