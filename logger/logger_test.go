package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	data, err := New().FromWriter(&buf).WithLevel("debug").Make()
	require.NoError(t, err)

	data.Logger.Debug().Str("sql", "SELECT 1").Msg("resolved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "SELECT 1", line["sql"])
	assert.Equal(t, "resolved", line["message"])
	assert.Contains(t, line, "time")
	assert.NoError(t, data.Close())
}

func TestMakeDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	data, err := New().FromWriter(&buf).Make()
	require.NoError(t, err)

	data.Logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	data.Logger.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestMakeRejectsUnknownLevel(t *testing.T) {
	_, err := New().WithLevel("loud").Make()
	assert.Error(t, err)
}

func TestMakeFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sql.log")
	data, err := New().FromPath(path).Make()
	require.NoError(t, err)

	data.Logger.Info().Msg("to file")
	require.NoError(t, data.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	data, err := New().FromWriter(&buf).Console().Make()
	require.NoError(t, err)

	data.Logger.Info().Str("dialect", "postgres").Msg("bound")
	assert.Contains(t, buf.String(), "bound")
	assert.Contains(t, buf.String(), "dialect=postgres")
}
