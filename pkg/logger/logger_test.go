package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Service: "cart", Env: "test", Level: "info", Output: &buf})

	log.Debug("hidden")
	log.Info("visible", "lines", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "cart", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.EqualValues(t, 2, entry["lines"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Service: "cart", Format: "text", Output: &buf})

	log.Warn("careful")

	assert.True(t, strings.Contains(buf.String(), "msg=careful"))
	assert.True(t, strings.Contains(buf.String(), "service=cart"))
}
