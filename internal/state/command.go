package state

import "time"

// Command is one immutable user intent. Each variant carries exactly
// the data needed to re-derive the mutation without consulting global
// state; validation happens in ProcessCommand, never in producers.
type Command interface {
	isCommand()
}

// Document registry.
type (
	// NewDocument asks the save dialog for a path and creates a fresh
	// document there.
	NewDocument struct{}
	// OpenDocument asks the open dialog for sheet paths and opens each
	// one that is not already open.
	OpenDocument struct{}
	// FocusDocument makes the document at Path current. Silently does
	// nothing when the path is not open.
	FocusDocument struct{ Path string }

	CloseCurrentDocument  struct{}
	CloseAllDocuments     struct{}
	SaveCurrentDocument   struct{}
	SaveCurrentDocumentAs struct{}
	SaveAllDocuments      struct{}

	// Import asks the open dialog for image files and adds each as a
	// frame of the current sheet.
	Import struct{}
)

// Content panel.
type (
	SwitchToContentTab struct{ Tab ContentTab }
	SelectFrame        struct{ Path string }
	SelectAnimation    struct{ Name string }
	// SelectAnimationFrame selects a timeline entry of the animation
	// open on the workbench.
	SelectAnimationFrame struct{ Index int }

	CreateAnimation       struct{}
	BeginAnimationRename  struct{ Name string }
	UpdateAnimationRename struct{ Text string }
	EndAnimationRename    struct{}
)

// Workbench.
type (
	EditFrame     struct{ Path string }
	EditAnimation struct{ Name string }

	ZoomIn    struct{}
	ZoomOut   struct{}
	ResetZoom struct{}
	Pan       struct{ DX, DY float64 }
)

// Timeline.
type (
	CreateAnimationFrame       struct{ Frame string }
	InsertAnimationFrameBefore struct {
		Frame string
		Index int
	}
	ReorderAnimationFrame struct{ From, To int }

	BeginContentFrameDrag  struct{ Frame string }
	BeginTimelineFrameDrag struct{ Index int }
	BeginFrameDurationDrag struct{ Index int }
	UpdateFrameDurationDrag struct{ Duration time.Duration }

	BeginScrub  struct{}
	UpdateScrub struct{ Time time.Duration }

	TogglePlayback       struct{}
	ToggleLooping        struct{}
	AdvanceTimelineClock struct{ Delta time.Duration }

	TimelineZoomIn    struct{}
	TimelineZoomOut   struct{}
	ResetTimelineZoom struct{}
)

func (NewDocument) isCommand()                {}
func (OpenDocument) isCommand()               {}
func (FocusDocument) isCommand()              {}
func (CloseCurrentDocument) isCommand()       {}
func (CloseAllDocuments) isCommand()          {}
func (SaveCurrentDocument) isCommand()        {}
func (SaveCurrentDocumentAs) isCommand()      {}
func (SaveAllDocuments) isCommand()           {}
func (Import) isCommand()                     {}
func (SwitchToContentTab) isCommand()         {}
func (SelectFrame) isCommand()                {}
func (SelectAnimation) isCommand()            {}
func (SelectAnimationFrame) isCommand()       {}
func (CreateAnimation) isCommand()            {}
func (BeginAnimationRename) isCommand()       {}
func (UpdateAnimationRename) isCommand()      {}
func (EndAnimationRename) isCommand()         {}
func (EditFrame) isCommand()                  {}
func (EditAnimation) isCommand()              {}
func (ZoomIn) isCommand()                     {}
func (ZoomOut) isCommand()                    {}
func (ResetZoom) isCommand()                  {}
func (Pan) isCommand()                        {}
func (CreateAnimationFrame) isCommand()       {}
func (InsertAnimationFrameBefore) isCommand() {}
func (ReorderAnimationFrame) isCommand()      {}
func (BeginContentFrameDrag) isCommand()      {}
func (BeginTimelineFrameDrag) isCommand()     {}
func (BeginFrameDurationDrag) isCommand()     {}
func (UpdateFrameDurationDrag) isCommand()    {}
func (BeginScrub) isCommand()                 {}
func (UpdateScrub) isCommand()                {}
func (TogglePlayback) isCommand()             {}
func (ToggleLooping) isCommand()              {}
func (AdvanceTimelineClock) isCommand()       {}
func (TimelineZoomIn) isCommand()             {}
func (TimelineZoomOut) isCommand()            {}
func (ResetTimelineZoom) isCommand()          {}

// CommandBuffer is an append-only queue of commands produced during
// one UI pass. Producers run while the UI iterates read-only state;
// the buffer is merged and flushed once mutation is safe.
type CommandBuffer struct {
	queue []Command
}

// NewCommandBuffer returns an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// Push appends one command.
func (b *CommandBuffer) Push(c Command) {
	b.queue = append(b.queue, c)
}

// Len returns the number of queued commands.
func (b *CommandBuffer) Len() int { return len(b.queue) }

// Append moves every command from other onto the end of this buffer,
// preserving relative order in both, and empties other.
func (b *CommandBuffer) Append(other *CommandBuffer) {
	b.queue = append(b.queue, other.queue...)
	other.queue = nil
}

// Flush removes and returns all queued commands. Each command is
// returned exactly once across the buffer's lifetime.
func (b *CommandBuffer) Flush() []Command {
	q := b.queue
	b.queue = nil
	return q
}

// Convenience producers. These are pure appends and never inspect
// state.

func (b *CommandBuffer) NewDocument()              { b.Push(NewDocument{}) }
func (b *CommandBuffer) OpenDocument()             { b.Push(OpenDocument{}) }
func (b *CommandBuffer) FocusDocument(path string) { b.Push(FocusDocument{Path: path}) }
func (b *CommandBuffer) CloseCurrentDocument()     { b.Push(CloseCurrentDocument{}) }
func (b *CommandBuffer) CloseAllDocuments()        { b.Push(CloseAllDocuments{}) }
func (b *CommandBuffer) Save()                     { b.Push(SaveCurrentDocument{}) }
func (b *CommandBuffer) SaveAs()                   { b.Push(SaveCurrentDocumentAs{}) }
func (b *CommandBuffer) SaveAll()                  { b.Push(SaveAllDocuments{}) }
func (b *CommandBuffer) Import()                   { b.Push(Import{}) }

func (b *CommandBuffer) SwitchToContentTab(tab ContentTab) { b.Push(SwitchToContentTab{Tab: tab}) }
func (b *CommandBuffer) SelectFrame(path string)           { b.Push(SelectFrame{Path: path}) }
func (b *CommandBuffer) SelectAnimation(name string)       { b.Push(SelectAnimation{Name: name}) }
func (b *CommandBuffer) SelectAnimationFrame(index int)    { b.Push(SelectAnimationFrame{Index: index}) }
func (b *CommandBuffer) CreateAnimation()                  { b.Push(CreateAnimation{}) }
func (b *CommandBuffer) BeginAnimationRename(name string)  { b.Push(BeginAnimationRename{Name: name}) }
func (b *CommandBuffer) UpdateAnimationRename(text string) { b.Push(UpdateAnimationRename{Text: text}) }
func (b *CommandBuffer) EndAnimationRename()               { b.Push(EndAnimationRename{}) }

func (b *CommandBuffer) EditFrame(path string)     { b.Push(EditFrame{Path: path}) }
func (b *CommandBuffer) EditAnimation(name string) { b.Push(EditAnimation{Name: name}) }
func (b *CommandBuffer) ZoomIn()                   { b.Push(ZoomIn{}) }
func (b *CommandBuffer) ZoomOut()                  { b.Push(ZoomOut{}) }
func (b *CommandBuffer) ResetZoom()                { b.Push(ResetZoom{}) }
func (b *CommandBuffer) Pan(dx, dy float64)        { b.Push(Pan{DX: dx, DY: dy}) }

func (b *CommandBuffer) CreateAnimationFrame(frame string) { b.Push(CreateAnimationFrame{Frame: frame}) }
func (b *CommandBuffer) InsertAnimationFrameBefore(frame string, index int) {
	b.Push(InsertAnimationFrameBefore{Frame: frame, Index: index})
}
func (b *CommandBuffer) ReorderAnimationFrame(from, to int) {
	b.Push(ReorderAnimationFrame{From: from, To: to})
}
func (b *CommandBuffer) BeginContentFrameDrag(frame string) {
	b.Push(BeginContentFrameDrag{Frame: frame})
}
func (b *CommandBuffer) BeginTimelineFrameDrag(index int) {
	b.Push(BeginTimelineFrameDrag{Index: index})
}
func (b *CommandBuffer) BeginFrameDurationDrag(index int) {
	b.Push(BeginFrameDurationDrag{Index: index})
}
func (b *CommandBuffer) UpdateFrameDurationDrag(d time.Duration) {
	b.Push(UpdateFrameDurationDrag{Duration: d})
}
func (b *CommandBuffer) BeginScrub()                 { b.Push(BeginScrub{}) }
func (b *CommandBuffer) UpdateScrub(t time.Duration) { b.Push(UpdateScrub{Time: t}) }
func (b *CommandBuffer) TogglePlayback()             { b.Push(TogglePlayback{}) }
func (b *CommandBuffer) ToggleLooping()              { b.Push(ToggleLooping{}) }
func (b *CommandBuffer) AdvanceTimelineClock(d time.Duration) {
	b.Push(AdvanceTimelineClock{Delta: d})
}
func (b *CommandBuffer) TimelineZoomIn()    { b.Push(TimelineZoomIn{}) }
func (b *CommandBuffer) TimelineZoomOut()   { b.Push(TimelineZoomOut{}) }
func (b *CommandBuffer) ResetTimelineZoom() { b.Push(ResetTimelineZoom{}) }
