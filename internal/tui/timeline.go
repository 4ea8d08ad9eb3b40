package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maren/spritepad/internal/sheet"
	"github.com/maren/spritepad/internal/state"
)

const (
	durationStep = 10 * time.Millisecond
	scrubStep    = 50 * time.Millisecond
)

// workbenchAnimation returns the animation open on the workbench, if
// any. Timeline key handling is a no-op without one; the state rejects
// the commands anyway, this just keeps the noise off the status line.
func (a *App) workbenchAnimation(doc *state.Document) (*sheet.Animation, bool) {
	item, ok := doc.WorkbenchItem().(state.AnimationItem)
	if !ok {
		return nil, false
	}
	return doc.Sheet().Animation(item.Name)
}

// timelineCursor is the timeline entry the pane operates on, derived
// from the selection and any in-flight gesture. A frame selection can
// outlive the animation it pointed into, for example after opening a
// shorter animation on the workbench, so it only counts when it names
// this animation, and the result is clamped to the timeline.
func (a *App) timelineCursor(doc *state.Document, anim *sheet.Animation) int {
	cursor := 0
	if i, ok := doc.TimelineFrameBeingDragged(); ok {
		cursor = i
	} else if i, ok := doc.TimelineFrameBeingScaled(); ok {
		cursor = i
	} else if sel, ok := doc.ContentSelection().(state.AnimationFrameSelection); ok && sel.Animation == anim.Name {
		cursor = sel.Index
	}
	if cursor >= anim.NumFrames() {
		cursor = anim.NumFrames() - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (a *App) handleTimelineAction(action Action, m tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc, ok := a.st.CurrentDocument()
	if !ok {
		return a, nil
	}

	switch action {
	case actionPlayPause:
		a.buf.TogglePlayback()
		a.drain()
		return a, nil
	case actionToggleLoop:
		a.buf.ToggleLooping()
		a.drain()
		return a, nil
	case actionScrubBack, actionScrubForward:
		if !doc.IsScrubbing() {
			a.buf.BeginScrub()
		}
		step := scrubStep
		if action == actionScrubBack {
			step = -scrubStep
		}
		a.buf.UpdateScrub(doc.TimelineClock() + step)
		a.drain()
		return a, nil
	case actionZoomIn:
		a.buf.TimelineZoomIn()
		a.drain()
		return a, nil
	case actionZoomOut:
		a.buf.TimelineZoomOut()
		a.drain()
		return a, nil
	case actionResetZoom:
		a.buf.ResetTimelineZoom()
		a.drain()
		return a, nil
	}

	anim, ok := a.workbenchAnimation(doc)
	if !ok || anim.NumFrames() == 0 {
		return a, nil
	}
	cursor := a.timelineCursor(doc, anim)

	switch action {
	case actionNavigate:
		a.handleTimelineNavigate(doc, normalizeKeyName(m.String()))
	case actionMoveEarlier:
		if cursor > 0 {
			a.buf.BeginTimelineFrameDrag(cursor)
			a.buf.ReorderAnimationFrame(cursor, cursor-1)
			a.buf.SelectAnimationFrame(cursor - 1)
			a.drain()
		}
	case actionMoveLater:
		if cursor < anim.NumFrames()-1 {
			a.buf.BeginTimelineFrameDrag(cursor)
			// Drop markers count positions before the move, so moving one
			// slot later targets the gap two past the origin.
			a.buf.ReorderAnimationFrame(cursor, cursor+2)
			a.buf.SelectAnimationFrame(cursor + 1)
			a.drain()
		}
	case actionInsertFrame:
		if frame, ok := doc.ContentFrameBeingDragged(); ok {
			a.buf.InsertAnimationFrameBefore(frame, cursor)
			a.drain()
		} else {
			a.status, a.statusErr = "grab a frame in the content pane first (d)", false
		}
	case actionDurationUp, actionDurationDown:
		current := anim.Timeline[cursor].Duration()
		if _, scaling := doc.TimelineFrameBeingScaled(); !scaling {
			a.buf.BeginFrameDurationDrag(cursor)
		}
		step := durationStep
		if action == actionDurationDown {
			step = -durationStep
		}
		a.buf.UpdateFrameDurationDrag(current + step)
		a.drain()
	}
	return a, nil
}

// handleTimelineNavigate moves the entry selection. Split from
// handleTimelineAction because it needs the raw key to pick a
// direction.
func (a *App) handleTimelineNavigate(doc *state.Document, keyName string) {
	anim, ok := a.workbenchAnimation(doc)
	if !ok || anim.NumFrames() == 0 {
		return
	}
	cursor := a.timelineCursor(doc, anim)
	switch keyName {
	case "h", "left":
		if cursor > 0 {
			cursor--
		}
	case "l", "right":
		if cursor < anim.NumFrames()-1 {
			cursor++
		}
	}
	a.buf.SelectAnimationFrame(cursor)
	a.drain()
}

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func (a *App) renderTimeline(width, height int) string {
	style := stylePane
	if a.focus == focusTimeline {
		style = stylePaneFocused
	}
	inner := width - 2

	doc, ok := a.st.CurrentDocument()
	if !ok {
		return style.Width(inner).Height(height - 2).Render(styleDim.Render("timeline"))
	}
	anim, ok := a.workbenchAnimation(doc)
	if !ok {
		body := styleDim.Render("open an animation to edit its timeline")
		return style.Width(inner).Height(height - 2).Render(styleTitle.Render("Timeline") + "\n\n" + body)
	}

	header := styleTitle.Render("Timeline") + "  " + styleMuted.Render(anim.Name)
	if anim.Loop {
		header += styleMuted.Render("  ⟳")
	}
	if doc.IsPlaying() {
		header += "  " + stylePlayhead.Render("▶")
	}

	cursor := a.timelineCursor(doc, anim)
	var cells []string
	for i, entry := range anim.Timeline {
		w := cellWidth(entry.Duration(), doc.TimelineZoomFactor())
		label := truncate(fmt.Sprintf("%s %dms", baseName(entry.Frame), entry.DurationMS), w)
		cell := padRight(label, w)
		switch {
		case i == cursor && a.focus == focusTimeline:
			cell = styleCursor.Render(cell)
		case i == cursor:
			cell = styleSelected.Render(cell)
		}
		cells = append(cells, cell)
	}
	strip := strings.Join(cells, styleDim.Render("│"))

	ruler := playheadRuler(anim, doc.TimelineClock(), doc.TimelineZoomFactor())
	footer := styleMuted.Render(fmt.Sprintf("clock %s  zoom %s", doc.TimelineClock().Truncate(time.Millisecond), zoomLabel(doc.TimelineZoomFactor())))

	body := header + "\n" + truncate(strip, inner) + "\n" + truncate(ruler, inner) + "\n" + footer
	return style.Width(inner).Height(height - 2).Render(body)
}

// cellWidth maps an entry duration to a cell width in terminal cells.
func cellWidth(d time.Duration, zoom float64) int {
	w := int(float64(d/time.Millisecond) / 10 * zoom)
	if w < 6 {
		return 6
	}
	return w
}

// playheadRuler draws the playback head under the strip at the cell
// position corresponding to the clock.
func playheadRuler(anim *sheet.Animation, clock time.Duration, zoom float64) string {
	var b strings.Builder
	var elapsed time.Duration
	placed := false
	for i, entry := range anim.Timeline {
		w := cellWidth(entry.Duration(), zoom)
		if i > 0 {
			b.WriteString(" ")
		}
		if !placed && clock < elapsed+entry.Duration() {
			frac := float64(clock-elapsed) / float64(entry.Duration())
			pos := int(frac * float64(w))
			if pos >= w {
				pos = w - 1
			}
			b.WriteString(strings.Repeat("─", pos))
			b.WriteString(stylePlayhead.Render("▼"))
			b.WriteString(strings.Repeat("─", w-pos-1))
			placed = true
		} else {
			b.WriteString(strings.Repeat("─", w))
		}
		elapsed += entry.Duration()
	}
	return b.String()
}
