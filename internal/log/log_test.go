package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Options{Level: "info"})

	logger.Debug("hidden")
	logger.Info("Asset materialized", "path", "/tmp/x.mp4")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Asset materialized", record["msg"])
	assert.Equal(t, "publish-service", record["service"])
	assert.Equal(t, "/tmp/x.mp4", record["path"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Options{Level: "debug", Format: "text"})

	logger.Debug("cleanup skipped")
	assert.Contains(t, buf.String(), "msg=\"cleanup skipped\"")
}
