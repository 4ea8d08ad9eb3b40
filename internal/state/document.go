package state

import (
	"time"

	"github.com/maren/spritepad/internal/sheet"
)

// ContentTab selects which list the content panel shows.
type ContentTab int

const (
	ContentTabFrames ContentTab = iota
	ContentTabAnimations
)

func (t ContentTab) String() string {
	switch t {
	case ContentTabFrames:
		return "Frames"
	case ContentTabAnimations:
		return "Animations"
	}
	return "Unknown"
}

// ContentSelection is the entity selected in the content panel.
type ContentSelection interface {
	isSelection()
}

type (
	// FrameSelection selects a frame by source path.
	FrameSelection struct{ Path string }
	// AnimationSelection selects an animation by name.
	AnimationSelection struct{ Name string }
	// AnimationFrameSelection selects one timeline entry.
	AnimationFrameSelection struct {
		Animation string
		Index     int
	}
)

func (FrameSelection) isSelection()          {}
func (AnimationSelection) isSelection()      {}
func (AnimationFrameSelection) isSelection() {}

// WorkbenchItem is the entity open for direct-manipulation editing.
type WorkbenchItem interface {
	isWorkbenchItem()
}

type (
	// FrameItem opens a frame on the workbench.
	FrameItem struct{ Path string }
	// AnimationItem opens an animation on the workbench.
	AnimationItem struct{ Name string }
)

func (FrameItem) isWorkbenchItem()     {}
func (AnimationItem) isWorkbenchItem() {}

// InteractionMode is the document's multi-pass gesture state. A nil
// mode means idle. Beginning any gesture replaces the mode wholesale,
// so a rename can never coexist with a drag; invalid combinations are
// unrepresentable.
type InteractionMode interface {
	isMode()
}

type (
	// RenamingAnimation is an in-progress rename: Target is the
	// immutable original name, Buffer the live edit text.
	RenamingAnimation struct {
		Target string
		Buffer string
	}
	// DraggingContentFrame is a frame from the content panel being
	// dragged toward the timeline.
	DraggingContentFrame struct{ Frame string }
	// DraggingTimelineFrame is a timeline entry being drag-reordered.
	DraggingTimelineFrame struct{ Index int }
	// ScalingFrameDuration is a timeline entry's duration handle being
	// dragged.
	ScalingFrameDuration struct {
		Index    int
		Original time.Duration
	}
	// Scrubbing is the playback head being dragged along the timeline.
	Scrubbing struct{}
)

func (RenamingAnimation) isMode()     {}
func (DraggingContentFrame) isMode()  {}
func (DraggingTimelineFrame) isMode() {}
func (ScalingFrameDuration) isMode()  {}
func (Scrubbing) isMode()             {}

// Document is one open editing session bound to a source path. The
// path is the document's identity within State; the sheet is owned
// exclusively by the document.
type Document struct {
	source string
	sheet  *sheet.Sheet

	contentSelection ContentSelection
	contentTab       ContentTab
	mode             InteractionMode

	workbenchItem WorkbenchItem
	offsetX       float64
	offsetY       float64
	workbenchZoom int
	timelineZoom  int

	timelineClock time.Duration
	playing       bool
}

func newDocument(path string) *Document {
	return &Document{
		source:        path,
		sheet:         sheet.New(),
		contentTab:    ContentTabFrames,
		workbenchZoom: 1,
		timelineZoom:  1,
	}
}

func openDocument(path string) (*Document, error) {
	s, err := sheet.Load(path)
	if err != nil {
		return nil, wrapCause(CodeSheetReadFailed, err)
	}
	d := newDocument(path)
	d.sheet = s
	return d, nil
}

func (d *Document) save() error {
	if err := d.sheet.Save(d.source); err != nil {
		return wrapCause(CodeSheetSaveFailed, err)
	}
	return nil
}

// Source returns the document's path identity.
func (d *Document) Source() string { return d.source }

// Sheet returns the document's sheet for read-only use by the UI.
// Mutation goes through State.ProcessCommand only.
func (d *Document) Sheet() *sheet.Sheet { return d.sheet }

// ContentSelection returns the current content panel selection, or nil.
func (d *Document) ContentSelection() ContentSelection { return d.contentSelection }

// ContentTab returns the active content panel tab.
func (d *Document) ContentTab() ContentTab { return d.contentTab }

// Mode returns the current interaction mode, or nil when idle.
func (d *Document) Mode() InteractionMode { return d.mode }

// RenameInProgress returns the rename target and buffer when an
// animation rename is underway.
func (d *Document) RenameInProgress() (target, buffer string, ok bool) {
	r, ok := d.mode.(RenamingAnimation)
	if !ok {
		return "", "", false
	}
	return r.Target, r.Buffer, true
}

// ContentFrameBeingDragged returns the dragged content frame, if any.
func (d *Document) ContentFrameBeingDragged() (string, bool) {
	m, ok := d.mode.(DraggingContentFrame)
	if !ok {
		return "", false
	}
	return m.Frame, true
}

// TimelineFrameBeingDragged returns the dragged timeline index, if any.
func (d *Document) TimelineFrameBeingDragged() (int, bool) {
	m, ok := d.mode.(DraggingTimelineFrame)
	if !ok {
		return 0, false
	}
	return m.Index, true
}

// TimelineFrameBeingScaled returns the index whose duration handle is
// being dragged, if any.
func (d *Document) TimelineFrameBeingScaled() (int, bool) {
	m, ok := d.mode.(ScalingFrameDuration)
	if !ok {
		return 0, false
	}
	return m.Index, true
}

// IsScrubbing reports whether the playback head is being dragged.
func (d *Document) IsScrubbing() bool {
	_, ok := d.mode.(Scrubbing)
	return ok
}

// WorkbenchItem returns the entity open on the workbench, or nil.
func (d *Document) WorkbenchItem() WorkbenchItem { return d.workbenchItem }

// WorkbenchOffset returns the pan offset.
func (d *Document) WorkbenchOffset() (x, y float64) { return d.offsetX, d.offsetY }

// WorkbenchZoomLevel returns the signed zoom step (see ZoomFactor).
func (d *Document) WorkbenchZoomLevel() int { return d.workbenchZoom }

// TimelineZoomLevel returns the timeline's signed zoom step.
func (d *Document) TimelineZoomLevel() int { return d.timelineZoom }

// ZoomFactor returns the workbench zoom multiplier derived from the
// signed step: a step n >= 1 is n, a step n <= -2 is 1/|n|.
func (d *Document) ZoomFactor() float64 { return zoomFactor(d.workbenchZoom) }

// TimelineZoomFactor returns the timeline zoom multiplier.
func (d *Document) TimelineZoomFactor() float64 { return zoomFactor(d.timelineZoom) }

// TimelineClock returns the playback position.
func (d *Document) TimelineClock() time.Duration { return d.timelineClock }

// IsPlaying reports whether the workbench animation is playing back.
func (d *Document) IsPlaying() bool { return d.playing }

// Zoom is stored as a signed integer step so repeated in/out stays
// exactly reversible. Valid steps form the lattice
// {-8, -4, -2, 1, 2, 4, 8, 16}; -1 and 0 are unreachable.

func zoomFactor(level int) float64 {
	if level >= 0 {
		return float64(level)
	}
	return 1 / float64(-level)
}

func zoomIn(level int) int {
	switch {
	case level >= 1:
		level *= 2
	case level == -2:
		// skip the degenerate -1 step
		level = 1
	default:
		level /= 2
	}
	if level > 16 {
		level = 16
	}
	return level
}

func zoomOut(level int) int {
	switch {
	case level > 1:
		level /= 2
	case level == 1:
		level = -2
	default:
		level *= 2
	}
	if level < -8 {
		level = -8
	}
	return level
}
