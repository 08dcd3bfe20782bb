package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", "json")
	require.NoError(t, err)

	logger.Info("cleaned", "rows", 8)
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "cleaned", entry["msg"])
	assert.EqualValues(t, 8, entry["rows"])
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "DEBUG", "text")
	require.NoError(t, err)

	logger.Debug("dropped rows", "reason", "incomplete")
	assert.Contains(t, buf.String(), "dropped rows")
	assert.Contains(t, buf.String(), "incomplete")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
