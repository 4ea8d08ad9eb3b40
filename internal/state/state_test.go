package state

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func mustProcess(t *testing.T, s *State, cmd Command) {
	t.Helper()
	if err := s.ProcessCommand(cmd); err != nil {
		t.Fatalf("%T: %v", cmd, err)
	}
}

func newStateWithDocument(t *testing.T, path string) (*State, *DialogQueue) {
	t.Helper()
	q := &DialogQueue{}
	s := New(q)
	q.QueueSave(path)
	mustProcess(t, s, NewDocument{})
	return s, q
}

func addFrames(t *testing.T, s *State, q *DialogQueue, paths ...string) {
	t.Helper()
	q.QueueFiles(paths)
	mustProcess(t, s, Import{})
}

// addAnimation creates an animation and commits the generated name,
// leaving the document idle.
func addAnimation(t *testing.T, s *State, name string) {
	t.Helper()
	mustProcess(t, s, CreateAnimation{})
	mustProcess(t, s, UpdateAnimationRename{Text: name})
	mustProcess(t, s, EndAnimationRename{})
}

func currentDoc(t *testing.T, s *State) *Document {
	t.Helper()
	d, ok := s.CurrentDocument()
	if !ok {
		t.Fatal("no current document")
	}
	return d
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestNewDocumentAppendsExtensionAndFocuses(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero")
	d := currentDoc(t, s)
	if d.Source() != "/sheets/hero.sheet" {
		t.Fatalf("source = %q, want /sheets/hero.sheet", d.Source())
	}
}

func TestNewDocumentDialogCancelIsNoop(t *testing.T) {
	s := New(&DialogQueue{})
	if err := s.ProcessCommand(NewDocument{}); err != nil {
		t.Fatalf("cancelled dialog returned error: %v", err)
	}
	if len(s.Documents()) != 0 {
		t.Fatal("cancelled dialog created a document")
	}
}

func TestNewDocumentOnOpenPathResetsExisting(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "walk.png")

	q.QueueSave("/sheets/hero.sheet")
	mustProcess(t, s, NewDocument{})

	if len(s.Documents()) != 1 {
		t.Fatalf("documents = %d, want 1", len(s.Documents()))
	}
	if currentDoc(t, s).Sheet().HasFrame("walk.png") {
		t.Fatal("reset document kept old frames")
	}
}

func TestOpenSamePathTwiceOnlyRefocuses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.sheet")
	s, q := newStateWithDocument(t, path)
	addFrames(t, s, q, "walk.png")
	mustProcess(t, s, SaveCurrentDocument{})
	mustProcess(t, s, CloseAllDocuments{})

	q.QueueFiles([]string{path})
	mustProcess(t, s, OpenDocument{})

	// open another document so focus moves away
	q.QueueSave(filepath.Join(dir, "villain.sheet"))
	mustProcess(t, s, NewDocument{})
	if currentDoc(t, s).Source() == path {
		t.Fatal("focus did not move to second document")
	}

	q.QueueFiles([]string{path})
	mustProcess(t, s, OpenDocument{})

	if len(s.Documents()) != 2 {
		t.Fatalf("documents = %d, want 2 (second open must not duplicate)", len(s.Documents()))
	}
	if currentDoc(t, s).Source() != path {
		t.Fatal("second open did not refocus the existing document")
	}
}

func TestFocusDocumentUnknownPathIsSilentNoop(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	if err := s.ProcessCommand(FocusDocument{Path: "/sheets/nope.sheet"}); err != nil {
		t.Fatalf("focus on unopened path errored: %v", err)
	}
	if currentDoc(t, s).Source() != "/sheets/hero.sheet" {
		t.Fatal("focus moved to an unopened path")
	}
}

func TestCloseOnlyDocumentClearsCurrent(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	mustProcess(t, s, CloseCurrentDocument{})
	if len(s.Documents()) != 0 {
		t.Fatalf("documents = %d, want 0", len(s.Documents()))
	}
	if _, ok := s.CurrentDocument(); ok {
		t.Fatal("current document survived the close")
	}
}

func TestCloseKeepsIndexPosition(t *testing.T) {
	q := &DialogQueue{}
	s := New(q)
	for _, name := range []string{"a", "b", "c"} {
		q.QueueSave("/sheets/" + name)
		mustProcess(t, s, NewDocument{})
	}

	mustProcess(t, s, FocusDocument{Path: "/sheets/b.sheet"})
	mustProcess(t, s, CloseCurrentDocument{})
	if currentDoc(t, s).Source() != "/sheets/c.sheet" {
		t.Fatalf("current = %q, want the document now at the closed index", currentDoc(t, s).Source())
	}
}

func TestCloseLastFallsBackToNewLast(t *testing.T) {
	q := &DialogQueue{}
	s := New(q)
	for _, name := range []string{"a", "b", "c"} {
		q.QueueSave("/sheets/" + name)
		mustProcess(t, s, NewDocument{})
	}

	// c is current (last created)
	mustProcess(t, s, CloseCurrentDocument{})
	if currentDoc(t, s).Source() != "/sheets/b.sheet" {
		t.Fatalf("current = %q, want /sheets/b.sheet", currentDoc(t, s).Source())
	}
}

func TestCloseWithNoDocumentFails(t *testing.T) {
	s := New(&DialogQueue{})
	err := s.ProcessCommand(CloseCurrentDocument{})
	if !errors.Is(err, ErrNoDocumentOpen) {
		t.Fatalf("error = %v, want ErrNoDocumentOpen", err)
	}
}

func TestCloseAllNeverFails(t *testing.T) {
	s := New(&DialogQueue{})
	if err := s.ProcessCommand(CloseAllDocuments{}); err != nil {
		t.Fatalf("close all on empty state errored: %v", err)
	}
}

func TestSaveThenReopenRoundTripsSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.sheet")
	s, q := newStateWithDocument(t, path)
	addFrames(t, s, q, "walk_0.png", "walk_1.png")
	addAnimation(t, s, "Walk")
	mustProcess(t, s, EditAnimation{Name: "Walk"})
	mustProcess(t, s, CreateAnimationFrame{Frame: "walk_0.png"})
	mustProcess(t, s, CreateAnimationFrame{Frame: "walk_1.png"})
	mustProcess(t, s, ToggleLooping{})

	before := currentDoc(t, s).Sheet()
	mustProcess(t, s, SaveCurrentDocument{})
	mustProcess(t, s, CloseAllDocuments{})

	q.QueueFiles([]string{path})
	mustProcess(t, s, OpenDocument{})

	after := currentDoc(t, s).Sheet()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("sheet after reopen differs:\nbefore %#v\nafter  %#v", before, after)
	}
	// UI state never round-trips
	if currentDoc(t, s).WorkbenchItem() != nil {
		t.Fatal("workbench state was persisted")
	}
}

func TestSaveAsRepointsIdentity(t *testing.T) {
	dir := t.TempDir()
	s, q := newStateWithDocument(t, filepath.Join(dir, "hero.sheet"))
	newPath := filepath.Join(dir, "renamed.sheet")
	q.QueueSave(newPath)
	mustProcess(t, s, SaveCurrentDocumentAs{})

	if currentDoc(t, s).Source() != newPath {
		t.Fatalf("source = %q, want %q", currentDoc(t, s).Source(), newPath)
	}
	if !s.IsDocumentOpen(newPath) || s.IsDocumentOpen(filepath.Join(dir, "hero.sheet")) {
		t.Fatal("document identity did not follow the new path")
	}
}

// ---------------------------------------------------------------------------
// Selection and workbench
// ---------------------------------------------------------------------------

func TestSelectFrameMissingFailsWithoutMutating(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "walk.png")
	mustProcess(t, s, SelectFrame{Path: "walk.png"})

	err := s.ProcessCommand(SelectFrame{Path: "missing.png"})
	if !errors.Is(err, ErrFrameNotInDocument) {
		t.Fatalf("error = %v, want ErrFrameNotInDocument", err)
	}
	sel, ok := currentDoc(t, s).ContentSelection().(FrameSelection)
	if !ok || sel.Path != "walk.png" {
		t.Fatalf("selection = %#v, want the prior frame selection", currentDoc(t, s).ContentSelection())
	}
}

func TestEditFrameResetsPanButKeepsZoom(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "walk.png")
	mustProcess(t, s, ZoomIn{})
	mustProcess(t, s, Pan{DX: 12, DY: -3})

	mustProcess(t, s, EditFrame{Path: "walk.png"})

	d := currentDoc(t, s)
	if x, y := d.WorkbenchOffset(); x != 0 || y != 0 {
		t.Fatalf("offset = (%v, %v), want origin", x, y)
	}
	if d.WorkbenchZoomLevel() != 2 {
		t.Fatalf("zoom level = %d, want 2", d.WorkbenchZoomLevel())
	}
	if item, ok := d.WorkbenchItem().(FrameItem); !ok || item.Path != "walk.png" {
		t.Fatalf("workbench item = %#v", d.WorkbenchItem())
	}
}

func TestEditFrameMissingLeavesWorkbenchAlone(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "walk.png")
	mustProcess(t, s, EditFrame{Path: "walk.png"})

	err := s.ProcessCommand(EditFrame{Path: "missing.png"})
	if !errors.Is(err, ErrFrameNotInDocument) {
		t.Fatalf("error = %v, want ErrFrameNotInDocument", err)
	}
	if item, ok := currentDoc(t, s).WorkbenchItem().(FrameItem); !ok || item.Path != "walk.png" {
		t.Fatal("failed edit mutated the workbench item")
	}
}

func TestPanAccumulates(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	mustProcess(t, s, Pan{DX: 3, DY: 4})
	mustProcess(t, s, Pan{DX: -1, DY: 1})
	if x, y := currentDoc(t, s).WorkbenchOffset(); x != 2 || y != 5 {
		t.Fatalf("offset = (%v, %v), want (2, 5)", x, y)
	}
}

func TestZoomCommandsFollowLattice(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	d := currentDoc(t, s)

	mustProcess(t, s, ZoomIn{})
	if d.WorkbenchZoomLevel() != 2 || d.ZoomFactor() != 2 {
		t.Fatalf("after zoom in: level %d factor %v", d.WorkbenchZoomLevel(), d.ZoomFactor())
	}
	mustProcess(t, s, ZoomIn{})
	if d.WorkbenchZoomLevel() != 4 {
		t.Fatalf("after second zoom in: level %d", d.WorkbenchZoomLevel())
	}
	mustProcess(t, s, ZoomOut{})
	if d.WorkbenchZoomLevel() != 2 {
		t.Fatalf("zoom out did not invert zoom in: level %d", d.WorkbenchZoomLevel())
	}

	mustProcess(t, s, ResetZoom{})
	mustProcess(t, s, ZoomOut{})
	if d.WorkbenchZoomLevel() != -2 || d.ZoomFactor() != 0.5 {
		t.Fatalf("after zoom out from 1: level %d factor %v", d.WorkbenchZoomLevel(), d.ZoomFactor())
	}
	mustProcess(t, s, ResetZoom{})
	if d.ZoomFactor() != 1 {
		t.Fatalf("reset zoom factor = %v, want 1", d.ZoomFactor())
	}
}

// ---------------------------------------------------------------------------
// Animation rename transaction
// ---------------------------------------------------------------------------

func TestCreateAnimationChainsIntoRename(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	mustProcess(t, s, CreateAnimation{})

	d := currentDoc(t, s)
	target, buffer, ok := d.RenameInProgress()
	if !ok {
		t.Fatal("create animation did not enter rename mode")
	}
	if target != "New Animation" || buffer != target {
		t.Fatalf("rename target/buffer = %q/%q", target, buffer)
	}
	if !d.Sheet().HasAnimation("New Animation") {
		t.Fatal("generated animation missing from sheet")
	}
}

func TestCreateAnimationGeneratesUniqueNames(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	mustProcess(t, s, CreateAnimation{})
	mustProcess(t, s, EndAnimationRename{})
	mustProcess(t, s, CreateAnimation{})

	target, _, _ := currentDoc(t, s).RenameInProgress()
	if target != "New Animation 2" {
		t.Fatalf("second generated name = %q, want New Animation 2", target)
	}
}

func TestEndRenameWithOriginalNameClearsWithoutRenaming(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	addAnimation(t, s, "Walk")

	mustProcess(t, s, BeginAnimationRename{Name: "Walk"})
	mustProcess(t, s, UpdateAnimationRename{Text: "Run"})
	mustProcess(t, s, UpdateAnimationRename{Text: "Walk"})
	mustProcess(t, s, EndAnimationRename{})

	d := currentDoc(t, s)
	if d.Mode() != nil {
		t.Fatal("rename mode not cleared")
	}
	if !d.Sheet().HasAnimation("Walk") {
		t.Fatal("animation lost its name")
	}
}

func TestEndRenameCollisionIsRetryable(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	addAnimation(t, s, "Walk")
	addAnimation(t, s, "Run")

	mustProcess(t, s, BeginAnimationRename{Name: "Walk"})
	mustProcess(t, s, UpdateAnimationRename{Text: "Run"})

	err := s.ProcessCommand(EndAnimationRename{})
	if !errors.Is(err, ErrAnimationAlreadyExists) {
		t.Fatalf("error = %v, want ErrAnimationAlreadyExists", err)
	}

	target, buffer, ok := currentDoc(t, s).RenameInProgress()
	if !ok || target != "Walk" || buffer != "Run" {
		t.Fatalf("rename state after collision = %q/%q/%v, want untouched Walk/Run", target, buffer, ok)
	}

	// retry with a free name succeeds
	mustProcess(t, s, UpdateAnimationRename{Text: "Sprint"})
	mustProcess(t, s, EndAnimationRename{})
	d := currentDoc(t, s)
	if !d.Sheet().HasAnimation("Sprint") || d.Sheet().HasAnimation("Walk") {
		t.Fatal("retried rename did not commit")
	}
}

func TestRenameRepointsWorkbenchAndSelection(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	addAnimation(t, s, "Walk")
	mustProcess(t, s, EditAnimation{Name: "Walk"})
	mustProcess(t, s, SelectAnimation{Name: "Walk"})

	mustProcess(t, s, BeginAnimationRename{Name: "Walk"})
	mustProcess(t, s, UpdateAnimationRename{Text: "Run"})
	mustProcess(t, s, EndAnimationRename{})

	d := currentDoc(t, s)
	if item, ok := d.WorkbenchItem().(AnimationItem); !ok || item.Name != "Run" {
		t.Fatalf("workbench item = %#v, want AnimationItem{Run}", d.WorkbenchItem())
	}
	if sel, ok := d.ContentSelection().(AnimationSelection); !ok || sel.Name != "Run" {
		t.Fatalf("selection = %#v, want AnimationSelection{Run}", d.ContentSelection())
	}
}

func TestUpdateRenameOutsideRenameIsTolerated(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	if err := s.ProcessCommand(UpdateAnimationRename{Text: "stray"}); err != nil {
		t.Fatalf("stray rename update errored: %v", err)
	}
	if currentDoc(t, s).Mode() != nil {
		t.Fatal("stray rename update opened a half-rename")
	}
	if err := s.ProcessCommand(EndAnimationRename{}); err != nil {
		t.Fatalf("stray rename end errored: %v", err)
	}
}

func TestBeginRenameUnknownAnimationFails(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	err := s.ProcessCommand(BeginAnimationRename{Name: "ghost"})
	if !errors.Is(err, ErrAnimationNotInDocument) {
		t.Fatalf("error = %v, want ErrAnimationNotInDocument", err)
	}
}

// ---------------------------------------------------------------------------
// Timeline editing and gestures
// ---------------------------------------------------------------------------

func timelineFixture(t *testing.T) (*State, *DialogQueue) {
	t.Helper()
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "f0.png", "f1.png", "f2.png")
	addAnimation(t, s, "Walk")
	mustProcess(t, s, EditAnimation{Name: "Walk"})
	for _, f := range []string{"f0.png", "f1.png", "f2.png"} {
		mustProcess(t, s, CreateAnimationFrame{Frame: f})
	}
	return s, q
}

func timelineFrames(t *testing.T, s *State) []string {
	t.Helper()
	anim, ok := currentDoc(t, s).Sheet().Animation("Walk")
	if !ok {
		t.Fatal("fixture animation missing")
	}
	out := make([]string, 0, len(anim.Timeline))
	for _, f := range anim.Timeline {
		out = append(out, f.Frame)
	}
	return out
}

func TestTimelineOpsRequireAnimationOnWorkbench(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "f0.png")
	addAnimation(t, s, "Walk")
	mustProcess(t, s, EditFrame{Path: "f0.png"})

	for _, cmd := range []Command{
		CreateAnimationFrame{Frame: "f0.png"},
		ReorderAnimationFrame{From: 0, To: 1},
		BeginScrub{},
		TogglePlayback{},
		ToggleLooping{},
		SelectAnimationFrame{Index: 0},
	} {
		if err := s.ProcessCommand(cmd); !errors.Is(err, ErrNotEditingAnyAnimation) {
			t.Fatalf("%T error = %v, want ErrNotEditingAnyAnimation", cmd, err)
		}
	}
}

func TestInsertAnimationFrameBefore(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, InsertAnimationFrameBefore{Frame: "f2.png", Index: 0})
	got := timelineFrames(t, s)
	want := []string{"f2.png", "f0.png", "f1.png", "f2.png"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("timeline = %v, want %v", got, want)
	}
}

func TestInsertAnimationFrameOutOfRangeFails(t *testing.T) {
	s, _ := timelineFixture(t)
	err := s.ProcessCommand(InsertAnimationFrameBefore{Frame: "f0.png", Index: 9})
	if !errors.Is(err, ErrInvalidAnimationFrameIndex) {
		t.Fatalf("error = %v, want ErrInvalidAnimationFrameIndex", err)
	}
	if len(timelineFrames(t, s)) != 3 {
		t.Fatal("failed insert mutated the timeline")
	}
}

func TestDragReorderEndsGesture(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, BeginTimelineFrameDrag{Index: 0})
	if _, ok := currentDoc(t, s).TimelineFrameBeingDragged(); !ok {
		t.Fatal("drag gesture not recorded")
	}

	mustProcess(t, s, ReorderAnimationFrame{From: 0, To: 3})
	got := timelineFrames(t, s)
	want := []string{"f1.png", "f2.png", "f0.png"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("timeline = %v, want %v", got, want)
	}
	if currentDoc(t, s).Mode() != nil {
		t.Fatal("drop did not end the drag gesture")
	}
}

func TestContentFrameDragDropInserts(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, BeginContentFrameDrag{Frame: "f1.png"})
	frame, ok := currentDoc(t, s).ContentFrameBeingDragged()
	if !ok || frame != "f1.png" {
		t.Fatalf("dragged frame = %q/%v", frame, ok)
	}

	mustProcess(t, s, InsertAnimationFrameBefore{Frame: "f1.png", Index: 1})
	if currentDoc(t, s).Mode() != nil {
		t.Fatal("drop did not clear the content drag")
	}
}

func TestBeginningNewGestureReplacesOldOne(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, BeginAnimationRename{Name: "Walk"})
	mustProcess(t, s, BeginContentFrameDrag{Frame: "f0.png"})

	d := currentDoc(t, s)
	if _, _, renaming := d.RenameInProgress(); renaming {
		t.Fatal("starting a drag left the rename open")
	}
	if _, ok := d.ContentFrameBeingDragged(); !ok {
		t.Fatal("drag gesture missing")
	}
}

func TestDurationDrag(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, BeginFrameDurationDrag{Index: 1})
	mustProcess(t, s, UpdateFrameDurationDrag{Duration: 250 * time.Millisecond})

	anim, _ := currentDoc(t, s).Sheet().Animation("Walk")
	if anim.Timeline[1].DurationMS != 250 {
		t.Fatalf("duration = %dms, want 250ms", anim.Timeline[1].DurationMS)
	}

	// durations never reach zero
	mustProcess(t, s, UpdateFrameDurationDrag{Duration: 0})
	if anim.Timeline[1].DurationMS != 1 {
		t.Fatalf("duration = %dms, want clamp to 1ms", anim.Timeline[1].DurationMS)
	}
}

func TestUpdateDurationWithoutGestureFails(t *testing.T) {
	s, _ := timelineFixture(t)
	err := s.ProcessCommand(UpdateFrameDurationDrag{Duration: time.Second})
	if !errors.Is(err, ErrNotAdjustingFrameDuration) {
		t.Fatalf("error = %v, want ErrNotAdjustingFrameDuration", err)
	}
}

func TestScrubPausesPlaybackAndClampsClock(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, TogglePlayback{})
	mustProcess(t, s, BeginScrub{})

	d := currentDoc(t, s)
	if d.IsPlaying() {
		t.Fatal("scrubbing did not pause playback")
	}
	if !d.IsScrubbing() {
		t.Fatal("scrub mode not recorded")
	}

	mustProcess(t, s, UpdateScrub{Time: 10 * time.Second})
	if d.TimelineClock() != 300*time.Millisecond {
		t.Fatalf("clock = %v, want clamp to total duration 300ms", d.TimelineClock())
	}
	mustProcess(t, s, UpdateScrub{Time: -time.Second})
	if d.TimelineClock() != 0 {
		t.Fatalf("clock = %v, want clamp to 0", d.TimelineClock())
	}
}

func TestPlaybackClampsAndStopsWithoutLoop(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, TogglePlayback{})
	mustProcess(t, s, AdvanceTimelineClock{Delta: time.Second})

	d := currentDoc(t, s)
	if d.TimelineClock() != 300*time.Millisecond {
		t.Fatalf("clock = %v, want 300ms", d.TimelineClock())
	}
	if d.IsPlaying() {
		t.Fatal("playback did not stop at the end")
	}
}

func TestPlaybackWrapsWhenLooping(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, ToggleLooping{})
	mustProcess(t, s, TogglePlayback{})
	mustProcess(t, s, AdvanceTimelineClock{Delta: 450 * time.Millisecond})

	d := currentDoc(t, s)
	if d.TimelineClock() != 150*time.Millisecond {
		t.Fatalf("clock = %v, want wrap to 150ms", d.TimelineClock())
	}
	if !d.IsPlaying() {
		t.Fatal("looping playback stopped")
	}
}

func TestSelectAnimationFrame(t *testing.T) {
	s, _ := timelineFixture(t)
	mustProcess(t, s, SelectAnimationFrame{Index: 2})
	sel, ok := currentDoc(t, s).ContentSelection().(AnimationFrameSelection)
	if !ok || sel.Animation != "Walk" || sel.Index != 2 {
		t.Fatalf("selection = %#v", currentDoc(t, s).ContentSelection())
	}

	err := s.ProcessCommand(SelectAnimationFrame{Index: 7})
	if !errors.Is(err, ErrInvalidAnimationFrameIndex) {
		t.Fatalf("error = %v, want ErrInvalidAnimationFrameIndex", err)
	}
}

// ---------------------------------------------------------------------------
// Flush semantics
// ---------------------------------------------------------------------------

func TestFlushAppliesIndependentlyWithoutRollback(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "f0.png")

	buf := NewCommandBuffer()
	buf.SelectFrame("f0.png")
	buf.SelectFrame("missing.png")
	buf.ZoomIn()

	var failures []error
	for _, cmd := range buf.Flush() {
		if err := s.ProcessCommand(cmd); err != nil {
			failures = append(failures, err)
		}
	}

	if len(failures) != 1 || !errors.Is(failures[0], ErrFrameNotInDocument) {
		t.Fatalf("failures = %v, want exactly one ErrFrameNotInDocument", failures)
	}
	d := currentDoc(t, s)
	if sel, ok := d.ContentSelection().(FrameSelection); !ok || sel.Path != "f0.png" {
		t.Fatal("earlier command in flush was rolled back")
	}
	if d.WorkbenchZoomLevel() != 2 {
		t.Fatal("later command in flush was not applied")
	}
}

func TestImportCancelledDialogIsNoop(t *testing.T) {
	s, _ := newStateWithDocument(t, "/sheets/hero.sheet")
	if err := s.ProcessCommand(Import{}); err != nil {
		t.Fatalf("cancelled import errored: %v", err)
	}
	if len(currentDoc(t, s).Sheet().Frames) != 0 {
		t.Fatal("cancelled import added frames")
	}
}

func TestImportRegistersFrames(t *testing.T) {
	s, q := newStateWithDocument(t, "/sheets/hero.sheet")
	addFrames(t, s, q, "a.png", "b.png")
	addFrames(t, s, q, "a.png") // duplicate import is a no-op
	if got := len(currentDoc(t, s).Sheet().Frames); got != 2 {
		t.Fatalf("frames = %d, want 2", got)
	}
}
