// Package state is the editor core: the registry of open documents,
// the command vocabulary, and the single-writer dispatch that applies
// commands to it. The UI reads state and emits commands; nothing else
// mutates a document.
package state

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/maren/spritepad/internal/sheet"
)

// State owns every open document and tracks which one is current.
// All mutation flows through ProcessCommand, one command at a time, on
// one goroutine; the exclusive State→Document→Sheet ownership chain is
// what makes that safe without locks.
type State struct {
	documents []*Document
	current   string // source path, "" = none
	dialogs   Dialogs
}

// New returns an empty state using the given dialog seam.
func New(dialogs Dialogs) *State {
	return &State{dialogs: dialogs}
}

// Documents returns the open documents in registry order. The slice is
// a copy; the documents are live.
func (s *State) Documents() []*Document {
	out := make([]*Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// IsDocumentOpen reports whether a document with the given source path
// is open.
func (s *State) IsDocumentOpen(path string) bool {
	for _, d := range s.documents {
		if d.source == path {
			return true
		}
	}
	return false
}

// CurrentDocument returns the focused document.
func (s *State) CurrentDocument() (*Document, bool) {
	if s.current == "" {
		return nil, false
	}
	for _, d := range s.documents {
		if d.source == s.current {
			return d, true
		}
	}
	return nil, false
}

func (s *State) currentDocument() (*Document, error) {
	d, ok := s.CurrentDocument()
	if !ok {
		return nil, errCode(CodeNoDocumentOpen)
	}
	return d, nil
}

// workbenchAnimation resolves the animation open on the current
// document's workbench.
func (s *State) workbenchAnimation() (*Document, *sheet.Animation, error) {
	d, err := s.currentDocument()
	if err != nil {
		return nil, nil, err
	}
	item, ok := d.workbenchItem.(AnimationItem)
	if !ok {
		return nil, nil, errCode(CodeNotEditingAnyAnimation)
	}
	anim, ok := d.sheet.Animation(item.Name)
	if !ok {
		return nil, nil, errCode(CodeAnimationNotInDocument)
	}
	return d, anim, nil
}

// ProcessCommand interprets one command against the current state.
// A failure never leaves the targeted document partially mutated; it
// also never rolls back commands applied earlier in the same flush.
func (s *State) ProcessCommand(cmd Command) error {
	switch c := cmd.(type) {
	case NewDocument:
		return s.newDocument()
	case OpenDocument:
		return s.openDocuments()
	case FocusDocument:
		if s.IsDocumentOpen(c.Path) {
			s.current = c.Path
		}
		return nil
	case CloseCurrentDocument:
		return s.closeCurrentDocument()
	case CloseAllDocuments:
		s.documents = nil
		s.current = ""
		return nil
	case SaveCurrentDocument:
		return s.saveCurrentDocument()
	case SaveCurrentDocumentAs:
		return s.saveCurrentDocumentAs()
	case SaveAllDocuments:
		return s.saveAllDocuments()
	case Import:
		return s.importFrames()
	case SwitchToContentTab:
		return s.switchToContentTab(c.Tab)
	case SelectFrame:
		return s.selectFrame(c.Path)
	case SelectAnimation:
		return s.selectAnimation(c.Name)
	case SelectAnimationFrame:
		return s.selectAnimationFrame(c.Index)
	case CreateAnimation:
		return s.createAnimation()
	case BeginAnimationRename:
		return s.beginAnimationRename(c.Name)
	case UpdateAnimationRename:
		return s.updateAnimationRename(c.Text)
	case EndAnimationRename:
		return s.endAnimationRename()
	case EditFrame:
		return s.editFrame(c.Path)
	case EditAnimation:
		return s.editAnimation(c.Name)
	case ZoomIn:
		return s.withCurrent(func(d *Document) { d.workbenchZoom = zoomIn(d.workbenchZoom) })
	case ZoomOut:
		return s.withCurrent(func(d *Document) { d.workbenchZoom = zoomOut(d.workbenchZoom) })
	case ResetZoom:
		return s.withCurrent(func(d *Document) { d.workbenchZoom = 1 })
	case Pan:
		return s.withCurrent(func(d *Document) {
			d.offsetX += c.DX
			d.offsetY += c.DY
		})
	case CreateAnimationFrame:
		return s.createAnimationFrame(c.Frame)
	case InsertAnimationFrameBefore:
		return s.insertAnimationFrameBefore(c.Frame, c.Index)
	case ReorderAnimationFrame:
		return s.reorderAnimationFrame(c.From, c.To)
	case BeginContentFrameDrag:
		return s.beginContentFrameDrag(c.Frame)
	case BeginTimelineFrameDrag:
		return s.beginTimelineFrameDrag(c.Index)
	case BeginFrameDurationDrag:
		return s.beginFrameDurationDrag(c.Index)
	case UpdateFrameDurationDrag:
		return s.updateFrameDurationDrag(c.Duration)
	case BeginScrub:
		return s.beginScrub()
	case UpdateScrub:
		return s.updateScrub(c.Time)
	case TogglePlayback:
		return s.togglePlayback()
	case ToggleLooping:
		return s.toggleLooping()
	case AdvanceTimelineClock:
		return s.advanceTimelineClock(c.Delta)
	case TimelineZoomIn:
		return s.withCurrent(func(d *Document) { d.timelineZoom = zoomIn(d.timelineZoom) })
	case TimelineZoomOut:
		return s.withCurrent(func(d *Document) { d.timelineZoom = zoomOut(d.timelineZoom) })
	case ResetTimelineZoom:
		return s.withCurrent(func(d *Document) { d.timelineZoom = 1 })
	}
	return nil
}

func (s *State) withCurrent(fn func(*Document)) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	fn(d)
	return nil
}

// ---------------------------------------------------------------------------
// Document registry
// ---------------------------------------------------------------------------

func (s *State) newDocument() error {
	path, ok, err := s.dialogs.PickSaveFile(SheetFileExtension)
	if err != nil {
		return wrapCause(CodeDialogFailed, err)
	}
	if !ok {
		return nil
	}
	path = withSheetExtension(path)
	if existing := s.document(path); existing != nil {
		*existing = *newDocument(path)
	} else {
		s.documents = append(s.documents, newDocument(path))
	}
	s.current = path
	return nil
}

func (s *State) openDocuments() error {
	paths, ok, err := s.dialogs.PickFiles([]string{SheetFileExtension})
	if err != nil {
		return wrapCause(CodeDialogFailed, err)
	}
	if !ok {
		return nil
	}
	for _, path := range paths {
		if !s.IsDocumentOpen(path) {
			d, err := openDocument(path)
			if err != nil {
				return err
			}
			s.documents = append(s.documents, d)
		}
		s.current = path
	}
	return nil
}

func (s *State) document(path string) *Document {
	for _, d := range s.documents {
		if d.source == path {
			return d
		}
	}
	return nil
}

func (s *State) closeCurrentDocument() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	index := -1
	for i, doc := range s.documents {
		if doc == d {
			index = i
			break
		}
	}
	if index < 0 {
		return errCode(CodeDocumentNotFound)
	}
	s.documents = append(s.documents[:index], s.documents[index+1:]...)
	if len(s.documents) == 0 {
		s.current = ""
		return nil
	}
	// focus-follows-close: keep the same slot, or fall back to the new
	// last document when the closed one was last
	if index > len(s.documents)-1 {
		index = len(s.documents) - 1
	}
	s.current = s.documents[index].source
	return nil
}

func (s *State) saveCurrentDocument() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	return d.save()
}

func (s *State) saveCurrentDocumentAs() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	path, ok, err := s.dialogs.PickSaveFile(SheetFileExtension)
	if err != nil {
		return wrapCause(CodeDialogFailed, err)
	}
	if !ok {
		return nil
	}
	d.source = withSheetExtension(path)
	if err := d.save(); err != nil {
		return err
	}
	s.current = d.source
	return nil
}

func (s *State) saveAllDocuments() error {
	for _, d := range s.documents {
		if err := d.save(); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) importFrames() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	paths, ok, err := s.dialogs.PickFiles(ImageFileExtensions)
	if err != nil {
		return wrapCause(CodeDialogFailed, err)
	}
	if !ok {
		return nil
	}
	for _, path := range paths {
		d.sheet.AddFrame(path)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Content panel
// ---------------------------------------------------------------------------

func (s *State) switchToContentTab(tab ContentTab) error {
	return s.withCurrent(func(d *Document) { d.contentTab = tab })
}

func (s *State) selectFrame(path string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasFrame(path) {
		return errCode(CodeFrameNotInDocument)
	}
	d.contentSelection = FrameSelection{Path: path}
	return nil
}

func (s *State) selectAnimation(name string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasAnimation(name) {
		return errCode(CodeAnimationNotInDocument)
	}
	d.contentSelection = AnimationSelection{Name: name}
	return nil
}

func (s *State) selectAnimationFrame(index int) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if index < 0 || index >= anim.NumFrames() {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	d.contentSelection = AnimationFrameSelection{Animation: anim.Name, Index: index}
	return nil
}

func (s *State) createAnimation() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	name := d.sheet.AddAnimation()
	return s.beginAnimationRename(name)
}

func (s *State) beginAnimationRename(name string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasAnimation(name) {
		return errCode(CodeAnimationNotInDocument)
	}
	d.mode = RenamingAnimation{Target: name, Buffer: name}
	return nil
}

func (s *State) updateAnimationRename(text string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	// tolerated outside a rename: the command is a no-op instead of an
	// error, so a trailing keystroke after commit cannot fail a flush
	if r, ok := d.mode.(RenamingAnimation); ok {
		r.Buffer = text
		d.mode = r
	}
	return nil
}

func (s *State) endAnimationRename() error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	r, ok := d.mode.(RenamingAnimation)
	if !ok {
		return nil
	}
	if r.Buffer != r.Target {
		if d.sheet.HasAnimation(r.Buffer) {
			// leave the rename open so the user can retry
			return errCode(CodeAnimationAlreadyExists)
		}
		if err := d.sheet.RenameAnimation(r.Target, r.Buffer); err != nil {
			return errCode(CodeAnimationNotInDocument)
		}
		d.repointAnimation(r.Target, r.Buffer)
	}
	d.mode = nil
	return nil
}

// repointAnimation keeps selection and workbench references valid
// across a rename.
func (d *Document) repointAnimation(oldName, newName string) {
	switch sel := d.contentSelection.(type) {
	case AnimationSelection:
		if sel.Name == oldName {
			d.contentSelection = AnimationSelection{Name: newName}
		}
	case AnimationFrameSelection:
		if sel.Animation == oldName {
			sel.Animation = newName
			d.contentSelection = sel
		}
	}
	if item, ok := d.workbenchItem.(AnimationItem); ok && item.Name == oldName {
		d.workbenchItem = AnimationItem{Name: newName}
	}
}

// ---------------------------------------------------------------------------
// Workbench
// ---------------------------------------------------------------------------

func (s *State) editFrame(path string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasFrame(path) {
		return errCode(CodeFrameNotInDocument)
	}
	d.workbenchItem = FrameItem{Path: path}
	d.offsetX, d.offsetY = 0, 0
	return nil
}

func (s *State) editAnimation(name string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasAnimation(name) {
		return errCode(CodeAnimationNotInDocument)
	}
	d.workbenchItem = AnimationItem{Name: name}
	d.offsetX, d.offsetY = 0, 0
	d.timelineClock = 0
	d.playing = false
	return nil
}

// ---------------------------------------------------------------------------
// Timeline
// ---------------------------------------------------------------------------

func (s *State) createAnimationFrame(frame string) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if !d.sheet.HasFrame(frame) {
		return errCode(CodeFrameNotInDocument)
	}
	anim.AppendFrame(frame, sheet.DefaultFrameDuration)
	if _, dragging := d.mode.(DraggingContentFrame); dragging {
		d.mode = nil
	}
	return nil
}

func (s *State) insertAnimationFrameBefore(frame string, index int) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if !d.sheet.HasFrame(frame) {
		return errCode(CodeFrameNotInDocument)
	}
	if !anim.InsertFrameBefore(frame, sheet.DefaultFrameDuration, index) {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	if _, dragging := d.mode.(DraggingContentFrame); dragging {
		d.mode = nil
	}
	return nil
}

func (s *State) reorderAnimationFrame(from, to int) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if !anim.ReorderFrame(from, to) {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	if _, dragging := d.mode.(DraggingTimelineFrame); dragging {
		d.mode = nil
	}
	return nil
}

func (s *State) beginContentFrameDrag(frame string) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.sheet.HasFrame(frame) {
		return errCode(CodeFrameNotInDocument)
	}
	d.mode = DraggingContentFrame{Frame: frame}
	return nil
}

func (s *State) beginTimelineFrameDrag(index int) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if index < 0 || index >= anim.NumFrames() {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	d.mode = DraggingTimelineFrame{Index: index}
	return nil
}

func (s *State) beginFrameDurationDrag(index int) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if index < 0 || index >= anim.NumFrames() {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	d.mode = ScalingFrameDuration{Index: index, Original: anim.Timeline[index].Duration()}
	return nil
}

func (s *State) updateFrameDurationDrag(duration time.Duration) error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	scaling, ok := d.mode.(ScalingFrameDuration)
	if !ok {
		return errCode(CodeNotAdjustingFrameDuration)
	}
	if !anim.SetFrameDuration(scaling.Index, duration) {
		return errCode(CodeInvalidAnimationFrameIndex)
	}
	return nil
}

func (s *State) beginScrub() error {
	d, _, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	d.mode = Scrubbing{}
	d.playing = false
	return nil
}

func (s *State) updateScrub(t time.Duration) error {
	// tolerated without a preceding BeginScrub: a plain click on the
	// timeline ticks seeks directly
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if t < 0 {
		t = 0
	}
	if total := anim.Duration(); t > total {
		t = total
	}
	d.timelineClock = t
	return nil
}

func (s *State) togglePlayback() error {
	d, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	if _, scrubbing := d.mode.(Scrubbing); scrubbing {
		d.mode = nil
	}
	if !d.playing && !anim.Loop && d.timelineClock >= anim.Duration() {
		d.timelineClock = 0
	}
	d.playing = !d.playing
	return nil
}

func (s *State) toggleLooping() error {
	_, anim, err := s.workbenchAnimation()
	if err != nil {
		return err
	}
	anim.Loop = !anim.Loop
	return nil
}

func (s *State) advanceTimelineClock(delta time.Duration) error {
	d, err := s.currentDocument()
	if err != nil {
		return err
	}
	if !d.playing {
		return nil
	}
	item, ok := d.workbenchItem.(AnimationItem)
	if !ok {
		return nil
	}
	anim, ok := d.sheet.Animation(item.Name)
	if !ok {
		return nil
	}
	total := anim.Duration()
	if total == 0 {
		d.timelineClock = 0
		return nil
	}
	d.timelineClock += delta
	if anim.Loop {
		d.timelineClock = d.timelineClock % total
		return nil
	}
	if d.timelineClock >= total {
		d.timelineClock = total
		d.playing = false
	}
	return nil
}

func withSheetExtension(path string) string {
	want := "." + SheetFileExtension
	if ext := filepath.Ext(path); ext == want {
		return path
	} else if ext != "" {
		path = strings.TrimSuffix(path, ext)
	}
	return path + want
}
