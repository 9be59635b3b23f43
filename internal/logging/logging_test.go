package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFromStatus(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC)

	l.Log(map[string]any{"event": "step", "status": "success"})
	l.Log(map[string]any{"event": "step", "status": "error"})
	l.Log(map[string]any{"event": "step", "status": "error", "level": "warn"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "warn", lines[2]["level"])
	for _, line := range lines {
		_, err := time.Parse(time.RFC3339Nano, line["ts"].(string))
		assert.NoError(t, err)
	}
}

func TestLogger_InfoAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)

	fields := map[string]any{"stored_name": "a_1.pdf"}
	l.Info("ocr_cache_hit", fields)
	l.Error("ocr_failed", errors.New("boom"), fields)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "ocr_cache_hit", lines[0]["msg"])
	assert.Equal(t, "a_1.pdf", lines[0]["stored_name"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
	// caller map is not mutated
	assert.Len(t, fields, 1)
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("x", nil) })
	assert.NotPanics(t, func() { Discard().Error("x", nil, nil) })
}

func TestLogger_TimestampInLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	var buf bytes.Buffer
	New(&buf, loc).Log(map[string]any{"event": "boot", "ts": "caller value"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	ts, ok := lines[0]["ts"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(ts, "+07:00"), ts)
	assert.NotContains(t, lines[0], "time")
	assert.NotContains(t, lines[0], "msg")
	assert.Equal(t, "boot", lines[0]["event"])
}

func TestLogger_ValuesKeepTheirTypes(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, nil).Log(map[string]any{"status": 201, "latency": 1.5, "ok": true})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(201), lines[0]["status"])
	assert.Equal(t, 1.5, lines[0]["latency"])
	assert.Equal(t, true, lines[0]["ok"])
	assert.Equal(t, "info", lines[0]["level"])
}
