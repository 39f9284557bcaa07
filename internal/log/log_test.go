package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveline/local-app/internal/model"
)

func decodeLines(t *testing.T, raw string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestWriterLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelInfo)
	ctx := context.Background()

	logger.Command(ctx, "plan start", nil)
	logger.Info(ctx, "loaded", Fields{"count": 3, "error": errors.New("boom")})
	logger.Debug(ctx, "hidden", nil)
	logger.Error(ctx, "failed", Fields{"status": 500})
	require.NoError(t, logger.Close())

	recs := decodeLines(t, buf.String())
	require.Len(t, recs, 3)
	assert.Equal(t, "plan start", recs[0]["msg"])
	assert.Equal(t, "loaded", recs[1]["msg"])
	assert.Equal(t, "boom", recs[1]["error"])
	assert.EqualValues(t, 3, recs[1]["count"])
	assert.Equal(t, "ERROR", recs[2]["level"])
}

func TestFileLoggerSplitsSinks(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.Config{LogFolder: dir, CommandLog: "c.log", ErrorLog: "e.log", InfoLog: "i.log"}

	logger, err := NewLogger(cfg, LevelDebug)
	require.NoError(t, err)

	ctx := context.Background()
	logger.Command(ctx, "auth login ana", nil)
	logger.Error(ctx, "request failed", nil)
	logger.Debug(ctx, "request sent", nil)
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}
	assert.Contains(t, read("c.log"), "auth login ana")
	assert.Contains(t, read("e.log"), "request failed")
	assert.Contains(t, read("i.log"), "request sent")
	assert.NotContains(t, read("i.log"), "request failed")
}

func TestLoggingAfterCloseDoesNotBlock(t *testing.T) {
	logger := NewNop()
	require.NoError(t, logger.Close())
	for i := 0; i < 500; i++ {
		logger.Command(context.Background(), "late", nil)
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
