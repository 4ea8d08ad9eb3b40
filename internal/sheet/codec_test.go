package sheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddFrame("walk_0.png")
	s.AddFrame("walk_1.png")
	frame, _ := s.Frame("walk_0.png")
	frame.Hitboxes = append(frame.Hitboxes, Hitbox{Name: "body", X: 2, Y: 3, Width: 10, Height: 20})

	name := s.AddAnimation()
	require.NoError(t, s.RenameAnimation(name, "Walk"))
	anim, _ := s.Animation("Walk")
	anim.Loop = true
	anim.AppendFrame("walk_0.png", 120*time.Millisecond)
	anim.AppendFrame("walk_1.png", 80*time.Millisecond)

	path := filepath.Join(t.TempDir(), "hero.sheet")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, s, loaded)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New()
	s.AddFrame("walk_0.png")
	require.NoError(t, s.Save(filepath.Join(dir, "hero.sheet")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "hero.sheet", entries[0].Name())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.sheet"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.sheet")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
