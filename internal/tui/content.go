package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maren/spritepad/internal/state"
)

// contentPane lists frames or animations of the current sheet. The
// cursor and filter live here; what is selected or renamed lives in the
// editor state.
type contentPane struct {
	cursor    int
	filter    string
	filtering bool
}

func (a *App) contentEntries(doc *state.Document) []string {
	var names []string
	switch doc.ContentTab() {
	case state.ContentTabAnimations:
		for _, anim := range doc.Sheet().Animations {
			names = append(names, anim.Name)
		}
	default:
		for _, f := range doc.Sheet().Frames {
			names = append(names, f.Source)
		}
	}
	return rankMatches(names, a.content.filter)
}

func (a *App) contentCursorEntry(doc *state.Document) (string, bool) {
	entries := a.contentEntries(doc)
	if len(entries) == 0 {
		return "", false
	}
	if a.content.cursor >= len(entries) {
		a.content.cursor = len(entries) - 1
	}
	return entries[a.content.cursor], true
}

func (a *App) handleContentAction(action Action, m tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc, ok := a.st.CurrentDocument()
	if !ok {
		return a, nil
	}
	switch action {
	case actionNavigate:
		entries := a.contentEntries(doc)
		switch m.String() {
		case "j", "down":
			if a.content.cursor < len(entries)-1 {
				a.content.cursor++
			}
		case "k", "up":
			if a.content.cursor > 0 {
				a.content.cursor--
			}
		}
	case actionSwitchTab:
		tab := state.ContentTabFrames
		if doc.ContentTab() == state.ContentTabFrames {
			tab = state.ContentTabAnimations
		}
		a.buf.SwitchToContentTab(tab)
		a.content.cursor = 0
		a.drain()
	case actionFilter:
		a.content.filtering = true
		a.content.filter = ""
	case actionClearFilter:
		a.content.filter = ""
		a.content.cursor = 0
	case actionSelect:
		name, ok := a.contentCursorEntry(doc)
		if !ok {
			return a, nil
		}
		if doc.ContentTab() == state.ContentTabAnimations {
			a.buf.SelectAnimation(name)
		} else {
			a.buf.SelectFrame(name)
		}
		a.drain()
	case actionEdit:
		name, ok := a.contentCursorEntry(doc)
		if !ok {
			return a, nil
		}
		if doc.ContentTab() == state.ContentTabAnimations {
			a.buf.EditAnimation(name)
		} else {
			a.buf.EditFrame(name)
		}
		a.drain()
	case actionNewAnimation:
		a.buf.CreateAnimation()
		a.drain()
	case actionRename:
		if doc.ContentTab() != state.ContentTabAnimations {
			return a, nil
		}
		if name, ok := a.contentCursorEntry(doc); ok {
			a.buf.BeginAnimationRename(name)
			a.drain()
		}
	case actionGrab:
		if doc.ContentTab() != state.ContentTabFrames {
			return a, nil
		}
		if name, ok := a.contentCursorEntry(doc); ok {
			a.buf.BeginContentFrameDrag(name)
			a.drain()
			a.status = "dragging " + baseName(name)
		}
	case actionDrop:
		if frame, ok := doc.ContentFrameBeingDragged(); ok {
			a.buf.CreateAnimationFrame(frame)
			a.drain()
		}
	}
	return a, nil
}

// handleFilterKey routes typing into the content filter.
func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.content.filtering = false
		a.content.filter = ""
	case tea.KeyEnter:
		a.content.filtering = false
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.content.filter) > 0 {
			a.content.filter = a.content.filter[:len(a.content.filter)-1]
		}
	case tea.KeySpace:
		a.content.filter += " "
	case tea.KeyRunes:
		a.content.filter += string(m.Runes)
	}
	a.content.cursor = 0
	return a, nil
}

// handleRenameKey routes typing into the in-flight animation rename.
// Escape restores the original name before committing, which ends the
// gesture without renaming anything.
func (a *App) handleRenameKey(m tea.KeyMsg, doc *state.Document) (tea.Model, tea.Cmd) {
	target, buffer, _ := doc.RenameInProgress()
	switch m.Type {
	case tea.KeyEsc:
		a.buf.UpdateAnimationRename(target)
		a.buf.EndAnimationRename()
	case tea.KeyEnter:
		a.buf.EndAnimationRename()
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(buffer) > 0 {
			a.buf.UpdateAnimationRename(buffer[:len(buffer)-1])
		}
	case tea.KeySpace:
		a.buf.UpdateAnimationRename(buffer + " ")
	case tea.KeyRunes:
		a.buf.UpdateAnimationRename(buffer + string(m.Runes))
	default:
		return a, nil
	}
	a.drain()
	return a, nil
}

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func (a *App) renderContent(width, height int) string {
	style := stylePane
	if a.focus == focusContent {
		style = stylePaneFocused
	}
	inner := width - 2

	doc, ok := a.st.CurrentDocument()
	if !ok {
		body := styleDim.Render("ctrl+n new sheet\nctrl+o open sheet")
		return style.Width(inner).Height(height - 2).Render(body)
	}

	framesTab, animsTab := styleTabInactive, styleTabInactive
	if doc.ContentTab() == state.ContentTabFrames {
		framesTab = styleTabActive
	} else {
		animsTab = styleTabActive
	}
	out := framesTab.Render("Frames") + animsTab.Render("Animations") + "\n"

	if a.content.filtering || a.content.filter != "" {
		out += styleMuted.Render("/"+a.content.filter) + "\n"
	}

	target, buffer, renaming := doc.RenameInProgress()
	entries := a.contentEntries(doc)
	for i, name := range entries {
		label := name
		if doc.ContentTab() == state.ContentTabFrames {
			label = baseName(name)
		}
		if renaming && doc.ContentTab() == state.ContentTabAnimations && name == target {
			out += styleCursor.Render(truncate(buffer+"▌", inner)) + "\n"
			continue
		}
		line := truncate(label, inner-2)
		switch {
		case i == a.content.cursor && a.focus == focusContent:
			line = styleCursor.Render("▶ " + line)
		case a.isContentSelected(doc, name):
			line = styleSelected.Render("• " + line)
		default:
			line = "  " + line
		}
		out += line + "\n"
	}
	if len(entries) == 0 {
		out += styleDim.Render("  (empty)") + "\n"
	}
	return style.Width(inner).Height(height - 2).Render(out)
}

func (a *App) isContentSelected(doc *state.Document, name string) bool {
	switch sel := doc.ContentSelection().(type) {
	case state.FrameSelection:
		return doc.ContentTab() == state.ContentTabFrames && sel.Path == name
	case state.AnimationSelection:
		return doc.ContentTab() == state.ContentTabAnimations && sel.Name == name
	}
	return false
}
