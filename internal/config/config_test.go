package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPRITEPAD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Library.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 10, cfg.UI.RecentLimit)
	require.Equal(t, 30, cfg.UI.PlaybackFPS)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[library]
path = "/tmp/spritepad-test/library.db"

[log]
level = "debug"

[ui]
recent_limit = 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("SPRITEPAD_CONFIG", path)
	t.Setenv("SPRITEPAD_UI_PLAYBACK_FPS", "60")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/spritepad-test/library.db", cfg.Library.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 3, cfg.UI.RecentLimit)
	require.Equal(t, 60, cfg.UI.PlaybackFPS)
}
