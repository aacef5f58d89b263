package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	logger.Info("server listening", "port", 8080)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "server listening", records[0]["msg"])
	assert.Equal(t, float64(8080), records[0]["port"])
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "text", "goUserDirectory", "1.0.0")

	logger.Info("server listening", "port", 8080)

	out := buf.String()
	assert.Contains(t, out, "msg=\"server listening\"")
	assert.Contains(t, out, "port=8080")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "warn", "json", "goUserDirectory", "1.0.0")

	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("kept")
	logger.Error("kept")

	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestLogger_WithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	logger.WithRequestID("abc123").Info("listing users")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "abc123", records[0][FieldRequestID])
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	logger.WithError(errors.New("connection refused")).Error("query failed")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "connection refused", records[0][FieldError])
}

func TestLogger_WithErrorNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	assert.Same(t, logger, logger.WithError(nil))
}

func TestLogger_Request(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	logger.Request("req-1", "GET", "/users", 200, 12)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "req-1", records[0][FieldRequestID])
	assert.Equal(t, "GET", records[0][FieldHTTPMethod])
	assert.Equal(t, "/users", records[0][FieldHTTPPath])
	assert.Equal(t, float64(200), records[0][FieldHTTPStatus])
	assert.Equal(t, float64(12), records[0][FieldLatencyMs])
}

func TestLogger_StartupIncludesServiceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")

	logger.Startup("starting")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "goUserDirectory", records[0][FieldService])
	assert.Equal(t, "1.0.0", records[0][FieldVersion])
}

func TestLogger_CacheUsesDebugLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := newStructuredLogger(&buf, "info", "json", "goUserDirectory", "1.0.0")
	logger.Cache("hit", FieldCacheKey, "users:offset=0:limit=10")
	assert.Empty(t, strings.TrimSpace(buf.String()))

	buf.Reset()
	logger = newStructuredLogger(&buf, "debug", "json", "goUserDirectory", "1.0.0")
	logger.Cache("hit", FieldCacheKey, "users:offset=0:limit=10")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "cache: hit", records[0]["msg"])
	assert.Equal(t, "users:offset=0:limit=10", records[0][FieldCacheKey])
}
