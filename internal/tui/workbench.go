package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maren/spritepad/internal/state"
)

// panStep is how far one key press pans, in sheet pixels at 1x.
const panStep = 16.0

func (a *App) handleWorkbenchAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionZoomIn:
		a.buf.ZoomIn()
	case actionZoomOut:
		a.buf.ZoomOut()
	case actionResetZoom:
		a.buf.ResetZoom()
	case actionPanLeft:
		a.buf.Pan(-panStep, 0)
	case actionPanRight:
		a.buf.Pan(panStep, 0)
	case actionPanUp:
		a.buf.Pan(0, -panStep)
	case actionPanDown:
		a.buf.Pan(0, panStep)
	default:
		return a, nil
	}
	a.drain()
	return a, nil
}

func (a *App) renderWorkbench(width, height int) string {
	style := stylePane
	if a.focus == focusWorkbench {
		style = stylePaneFocused
	}
	inner := width - 2

	doc, ok := a.st.CurrentDocument()
	if !ok {
		return style.Width(inner).Height(height - 2).Render(styleDim.Render("workbench"))
	}

	title := styleTitle.Render("Workbench")
	var body string
	switch item := doc.WorkbenchItem().(type) {
	case state.FrameItem:
		body = a.renderWorkbenchFrame(doc, item.Path)
	case state.AnimationItem:
		body = a.renderWorkbenchAnimation(doc, item.Name)
	default:
		body = styleDim.Render("nothing on the workbench\nenter opens the highlighted item")
	}

	ox, oy := doc.WorkbenchOffset()
	footer := styleMuted.Render(fmt.Sprintf("zoom %s  pan %+.0f,%+.0f", zoomLabel(doc.ZoomFactor()), ox, oy))
	return style.Width(inner).Height(height - 2).Render(title + "\n\n" + body + "\n\n" + footer)
}

func (a *App) renderWorkbenchFrame(doc *state.Document, path string) string {
	frame, ok := doc.Sheet().Frame(path)
	if !ok {
		return styleStatusErr.Render("frame missing from sheet: " + baseName(path))
	}
	out := styleSelected.Render(baseName(path))
	if len(frame.Hitboxes) == 0 {
		out += "\n" + styleDim.Render("no hitboxes")
		return out
	}
	for _, hb := range frame.Hitboxes {
		out += fmt.Sprintf("\n%s  %d,%d %dx%d", hb.Name, hb.X, hb.Y, hb.Width, hb.Height)
	}
	return out
}

func (a *App) renderWorkbenchAnimation(doc *state.Document, name string) string {
	anim, ok := doc.Sheet().Animation(name)
	if !ok {
		return styleStatusErr.Render("animation missing from sheet: " + name)
	}
	out := styleSelected.Render(name)
	if anim.NumFrames() == 0 {
		return out + "\n" + styleDim.Render("empty timeline")
	}
	index, ok := anim.FrameAtTime(doc.TimelineClock())
	if !ok {
		return out + "\n" + styleDim.Render("clock past end")
	}
	out += fmt.Sprintf("\nframe %d/%d  %s", index+1, anim.NumFrames(), baseName(anim.Timeline[index].Frame))
	out += "\n" + styleMuted.Render(fmt.Sprintf("clock %s / %s", doc.TimelineClock().Truncate(0), anim.Duration()))
	if doc.IsPlaying() {
		out += "\n" + stylePlayhead.Render("▶ playing")
	} else {
		out += "\n" + styleDim.Render("⏸ paused")
	}
	if anim.Loop {
		out += styleMuted.Render("  ⟳ loop")
	}
	return out
}

func zoomLabel(factor float64) string {
	if factor >= 1 {
		return fmt.Sprintf("%.0fx", factor)
	}
	return fmt.Sprintf("1/%.0fx", 1/factor)
}
