// Package sheet holds the persisted content model of a sprite sheet:
// frames, animations and hitboxes. Editor UI state (selection, pan,
// zoom, rename buffers) never lives here and is never written to disk.
package sheet

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAnimationNotFound is returned when an animation name does not
	// exist in the sheet.
	ErrAnimationNotFound = errors.New("animation not found in sheet")
	// ErrAnimationExists is returned when a rename or create would
	// collide with an existing animation name.
	ErrAnimationExists = errors.New("animation name already in use")
)

// DefaultFrameDuration is the duration assigned to a timeline entry
// when a frame is dropped onto an animation.
const DefaultFrameDuration = 100 * time.Millisecond

// Hitbox is a named rectangle attached to a frame.
type Hitbox struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Frame is a single image reference, identified by its source path.
type Frame struct {
	Source   string   `json:"source"`
	Hitboxes []Hitbox `json:"hitboxes,omitempty"`
}

// AnimationFrame is one timeline entry: a frame reference plus how long
// it stays on screen, in milliseconds.
type AnimationFrame struct {
	Frame      string `json:"frame"`
	DurationMS int    `json:"duration"`
}

// Duration returns the entry duration as a time.Duration.
func (f AnimationFrame) Duration() time.Duration {
	return time.Duration(f.DurationMS) * time.Millisecond
}

// Animation is a named ordered sequence of animation frames.
type Animation struct {
	Name     string           `json:"name"`
	Timeline []AnimationFrame `json:"timeline"`
	Loop     bool             `json:"loop"`
}

// NumFrames returns the timeline length.
func (a *Animation) NumFrames() int { return len(a.Timeline) }

// Duration returns the total timeline duration.
func (a *Animation) Duration() time.Duration {
	var total time.Duration
	for _, f := range a.Timeline {
		total += f.Duration()
	}
	return total
}

// FrameAtTime returns the index of the timeline entry covering t.
// Looping animations wrap; otherwise times past the end resolve to the
// last entry. Returns false only for an empty timeline.
func (a *Animation) FrameAtTime(t time.Duration) (int, bool) {
	if len(a.Timeline) == 0 {
		return 0, false
	}
	total := a.Duration()
	if t < 0 {
		t = 0
	}
	if a.Loop && total > 0 {
		t = t % total
	}
	var cursor time.Duration
	for i, f := range a.Timeline {
		cursor += f.Duration()
		if t < cursor {
			return i, true
		}
	}
	return len(a.Timeline) - 1, true
}

// AppendFrame adds a timeline entry at the end.
func (a *Animation) AppendFrame(frame string, d time.Duration) {
	a.Timeline = append(a.Timeline, AnimationFrame{
		Frame:      frame,
		DurationMS: int(d / time.Millisecond),
	})
}

// InsertFrameBefore inserts a timeline entry before index. Index may
// equal NumFrames, which appends. Returns false when index is out of
// range.
func (a *Animation) InsertFrameBefore(frame string, d time.Duration, index int) bool {
	if index < 0 || index > len(a.Timeline) {
		return false
	}
	entry := AnimationFrame{Frame: frame, DurationMS: int(d / time.Millisecond)}
	a.Timeline = append(a.Timeline, AnimationFrame{})
	copy(a.Timeline[index+1:], a.Timeline[index:])
	a.Timeline[index] = entry
	return true
}

// ReorderFrame moves the entry at from so it sits before the position
// to (counted in the pre-move timeline, matching a drop marker between
// entries). Returns false when either index is out of range.
func (a *Animation) ReorderFrame(from, to int) bool {
	if from < 0 || from >= len(a.Timeline) || to < 0 || to > len(a.Timeline) {
		return false
	}
	entry := a.Timeline[from]
	a.Timeline = append(a.Timeline[:from], a.Timeline[from+1:]...)
	if to > from {
		to--
	}
	a.Timeline = append(a.Timeline, AnimationFrame{})
	copy(a.Timeline[to+1:], a.Timeline[to:])
	a.Timeline[to] = entry
	return true
}

// SetFrameDuration overwrites the duration of one timeline entry,
// clamped to a minimum of one millisecond. Returns false when index is
// out of range.
func (a *Animation) SetFrameDuration(index int, d time.Duration) bool {
	if index < 0 || index >= len(a.Timeline) {
		return false
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	a.Timeline[index].DurationMS = int(d / time.Millisecond)
	return true
}

// Sheet is the root of the content model.
type Sheet struct {
	Frames     []Frame     `json:"frames"`
	Animations []Animation `json:"animations"`
}

// New returns an empty sheet.
func New() *Sheet {
	return &Sheet{}
}

// HasFrame reports whether a frame with the given source path exists.
func (s *Sheet) HasFrame(source string) bool {
	_, ok := s.Frame(source)
	return ok
}

// Frame returns the frame with the given source path.
func (s *Sheet) Frame(source string) (*Frame, bool) {
	for i := range s.Frames {
		if s.Frames[i].Source == source {
			return &s.Frames[i], true
		}
	}
	return nil, false
}

// AddFrame registers a frame by source path. Adding a path that is
// already present is a no-op; returns true when a frame was added.
func (s *Sheet) AddFrame(source string) bool {
	if s.HasFrame(source) {
		return false
	}
	s.Frames = append(s.Frames, Frame{Source: source})
	return true
}

// HasAnimation reports whether an animation with the given name exists.
func (s *Sheet) HasAnimation(name string) bool {
	_, ok := s.Animation(name)
	return ok
}

// Animation returns the animation with the given name.
func (s *Sheet) Animation(name string) (*Animation, bool) {
	for i := range s.Animations {
		if s.Animations[i].Name == name {
			return &s.Animations[i], true
		}
	}
	return nil, false
}

// AddAnimation creates an empty animation with a generated unique name
// and returns that name.
func (s *Sheet) AddAnimation() string {
	name := "New Animation"
	for n := 2; s.HasAnimation(name); n++ {
		name = fmt.Sprintf("New Animation %d", n)
	}
	s.Animations = append(s.Animations, Animation{Name: name})
	return name
}

// RenameAnimation changes an animation's name. Names are unique within
// one sheet; renaming onto an existing name fails.
func (s *Sheet) RenameAnimation(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if s.HasAnimation(newName) {
		return ErrAnimationExists
	}
	anim, ok := s.Animation(oldName)
	if !ok {
		return ErrAnimationNotFound
	}
	anim.Name = newName
	return nil
}
