package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddFrameIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.AddFrame("walk_0.png"))
	require.False(t, s.AddFrame("walk_0.png"))
	require.Len(t, s.Frames, 1)
	require.True(t, s.HasFrame("walk_0.png"))
	require.False(t, s.HasFrame("walk_1.png"))
}

func TestAddAnimationGeneratesUniqueNames(t *testing.T) {
	t.Parallel()

	s := New()
	require.Equal(t, "New Animation", s.AddAnimation())
	require.Equal(t, "New Animation 2", s.AddAnimation())
	require.Equal(t, "New Animation 3", s.AddAnimation())
}

func TestRenameAnimation(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddAnimation()
	require.NoError(t, s.RenameAnimation("New Animation", "Walk"))
	require.True(t, s.HasAnimation("Walk"))
	require.False(t, s.HasAnimation("New Animation"))

	s.AddAnimation()
	require.ErrorIs(t, s.RenameAnimation("New Animation", "Walk"), ErrAnimationExists)
	require.ErrorIs(t, s.RenameAnimation("ghost", "Sprint"), ErrAnimationNotFound)
	require.NoError(t, s.RenameAnimation("Walk", "Walk"))
}

func TestTimelineEditing(t *testing.T) {
	t.Parallel()

	a := &Animation{Name: "Walk"}
	a.AppendFrame("f0.png", 100*time.Millisecond)
	a.AppendFrame("f1.png", 100*time.Millisecond)
	require.Equal(t, 2, a.NumFrames())

	require.True(t, a.InsertFrameBefore("f2.png", 50*time.Millisecond, 1))
	require.Equal(t, []string{"f0.png", "f2.png", "f1.png"}, frameRefs(a))
	require.False(t, a.InsertFrameBefore("f3.png", 50*time.Millisecond, 4))

	// move first entry to the end (drop marker past the last entry)
	require.True(t, a.ReorderFrame(0, 3))
	require.Equal(t, []string{"f2.png", "f1.png", "f0.png"}, frameRefs(a))
	// move last entry to the front
	require.True(t, a.ReorderFrame(2, 0))
	require.Equal(t, []string{"f0.png", "f2.png", "f1.png"}, frameRefs(a))
	require.False(t, a.ReorderFrame(3, 0))

	require.True(t, a.SetFrameDuration(1, 0))
	require.Equal(t, 1, a.Timeline[1].DurationMS)
	require.False(t, a.SetFrameDuration(5, time.Second))
}

func TestAnimationDurationAndFrameAtTime(t *testing.T) {
	t.Parallel()

	a := &Animation{Name: "Walk"}
	require.Equal(t, time.Duration(0), a.Duration())
	_, ok := a.FrameAtTime(0)
	require.False(t, ok)

	a.AppendFrame("f0.png", 100*time.Millisecond)
	a.AppendFrame("f1.png", 200*time.Millisecond)
	require.Equal(t, 300*time.Millisecond, a.Duration())

	cases := []struct {
		at   time.Duration
		want int
	}{
		{0, 0},
		{99 * time.Millisecond, 0},
		{100 * time.Millisecond, 1},
		{299 * time.Millisecond, 1},
		{time.Second, 1}, // past the end resolves to the last entry
	}
	for _, tc := range cases {
		idx, ok := a.FrameAtTime(tc.at)
		require.True(t, ok)
		require.Equal(t, tc.want, idx, "at %v", tc.at)
	}

	a.Loop = true
	idx, ok := a.FrameAtTime(350 * time.Millisecond) // wraps to 50ms
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func frameRefs(a *Animation) []string {
	out := make([]string, 0, len(a.Timeline))
	for _, f := range a.Timeline {
		out = append(out, f.Frame)
	}
	return out
}
