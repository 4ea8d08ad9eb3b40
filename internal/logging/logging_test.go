package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFansOutToFileAndRing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spritepad.log")
	logger, ring, closeFn, err := New(path, slog.LevelInfo, 8)
	require.NoError(t, err)

	logger.Info("document opened", "path", "/sheets/hero.sheet")
	logger.Debug("suppressed below level")
	require.NoError(t, closeFn())

	entries := ring.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, slog.LevelInfo, entries[0].Level)
	require.Contains(t, entries[0].Message, "document opened")
	require.Contains(t, entries[0].Message, "/sheets/hero.sheet")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	require.Equal(t, "document opened", line["msg"])
}

func TestRingDropsOldestPastCapacity(t *testing.T) {
	ring := NewRing(2)
	h := &ringHandler{ring: ring, level: slog.LevelInfo}
	logger := slog.New(h)

	logger.Info("one")
	logger.Info("two")
	logger.Info("three")

	entries := ring.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "two", entries[0].Message)
	require.Equal(t, "three", entries[1].Message)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("anything"))
}
