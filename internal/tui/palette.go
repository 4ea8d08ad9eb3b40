package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maren/spritepad/internal/state"
)

// PaletteCommand is one entry in the command palette.
type PaletteCommand struct {
	ID          string
	Label       string
	Description string
	Category    string
	Enabled     func(a *App) (bool, string)
	Execute     func(a *App) tea.Cmd
}

type CommandMatch struct {
	Command        PaletteCommand
	Score          int
	Enabled        bool
	DisabledReason string
}

type CommandRegistry struct {
	commands []PaletteCommand
}

func paletteAlwaysEnabled(*App) (bool, string) { return true, "" }

func paletteNeedsDocument(a *App) (bool, string) {
	if _, ok := a.st.CurrentDocument(); !ok {
		return false, "No sheet is open."
	}
	return true, ""
}

func paletteNeedsAnimation(a *App) (bool, string) {
	doc, ok := a.st.CurrentDocument()
	if !ok {
		return false, "No sheet is open."
	}
	if _, ok := doc.WorkbenchItem().(state.AnimationItem); !ok {
		return false, "No animation is open on the workbench."
	}
	return true, ""
}

func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{}
	r.commands = []PaletteCommand{
		{
			ID:          "sheet:new",
			Label:       "New Sheet",
			Description: "Create a sheet at a new path",
			Category:    "Sheet",
			Enabled:     paletteAlwaysEnabled,
			Execute: func(a *App) tea.Cmd {
				a.openPrompt(promptNewDocument)
				return nil
			},
		},
		{
			ID:          "sheet:open",
			Label:       "Open Sheets",
			Description: "Open one or more sheets from disk",
			Category:    "Sheet",
			Enabled:     paletteAlwaysEnabled,
			Execute: func(a *App) tea.Cmd {
				a.openPrompt(promptOpenDocument)
				return nil
			},
		},
		{
			ID:          "sheet:save",
			Label:       "Save Sheet",
			Description: "Save the current sheet",
			Category:    "Sheet",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.Save()
				a.drain()
				return nil
			},
		},
		{
			ID:          "sheet:save-as",
			Label:       "Save Sheet As",
			Description: "Save the current sheet under a new path",
			Category:    "Sheet",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.openPrompt(promptSaveAs)
				return nil
			},
		},
		{
			ID:          "sheet:save-all",
			Label:       "Save All Sheets",
			Description: "Save every open sheet",
			Category:    "Sheet",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.SaveAll()
				a.drain()
				return nil
			},
		},
		{
			ID:          "sheet:close",
			Label:       "Close Sheet",
			Description: "Close the current sheet",
			Category:    "Sheet",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.CloseCurrentDocument()
				a.drain()
				return nil
			},
		},
		{
			ID:          "sheet:close-all",
			Label:       "Close All Sheets",
			Description: "Close every open sheet",
			Category:    "Sheet",
			Enabled:     paletteAlwaysEnabled,
			Execute: func(a *App) tea.Cmd {
				a.buf.CloseAllDocuments()
				a.drain()
				return nil
			},
		},
		{
			ID:          "sheet:import",
			Label:       "Import Frames",
			Description: "Add image files to the current sheet",
			Category:    "Sheet",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.openPrompt(promptImport)
				return nil
			},
		},
		{
			ID:          "animation:new",
			Label:       "New Animation",
			Description: "Create an animation and start renaming it",
			Category:    "Animation",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.CreateAnimation()
				a.drain()
				a.focus = focusContent
				return nil
			},
		},
		{
			ID:          "animation:play-pause",
			Label:       "Toggle Playback",
			Description: "Play or pause the workbench animation",
			Category:    "Animation",
			Enabled:     paletteNeedsAnimation,
			Execute: func(a *App) tea.Cmd {
				a.buf.TogglePlayback()
				a.drain()
				return nil
			},
		},
		{
			ID:          "animation:loop",
			Label:       "Toggle Looping",
			Description: "Toggle looping on the workbench animation",
			Category:    "Animation",
			Enabled:     paletteNeedsAnimation,
			Execute: func(a *App) tea.Cmd {
				a.buf.ToggleLooping()
				a.drain()
				return nil
			},
		},
		{
			ID:          "view:reset-zoom",
			Label:       "Reset Workbench Zoom",
			Description: "Reset the workbench zoom to 1x",
			Category:    "View",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.ResetZoom()
				a.drain()
				return nil
			},
		},
		{
			ID:          "view:reset-timeline-zoom",
			Label:       "Reset Timeline Zoom",
			Description: "Reset the timeline zoom to 1x",
			Category:    "View",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				a.buf.ResetTimelineZoom()
				a.drain()
				return nil
			},
		},
		{
			ID:          "view:switch-tab",
			Label:       "Switch Content Tab",
			Description: "Toggle between the frames and animations lists",
			Category:    "View",
			Enabled:     paletteNeedsDocument,
			Execute: func(a *App) tea.Cmd {
				doc, _ := a.st.CurrentDocument()
				tab := state.ContentTabFrames
				if doc.ContentTab() == state.ContentTabFrames {
					tab = state.ContentTabAnimations
				}
				a.buf.SwitchToContentTab(tab)
				a.drain()
				return nil
			},
		},
		{
			ID:          "view:log",
			Label:       "Toggle Log",
			Description: "Show or hide the in-app log",
			Category:    "View",
			Enabled:     paletteAlwaysEnabled,
			Execute: func(a *App) tea.Cmd {
				a.showLog = !a.showLog
				return nil
			},
		},
	}
	return r
}

// Search filters and ranks the palette against a query. Disabled
// commands stay listed so their reason is discoverable, but sort last.
func (r *CommandRegistry) Search(query string, a *App) []CommandMatch {
	if r == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]CommandMatch, 0, len(r.commands))
	for _, cmd := range r.commands {
		matched, score := paletteMatchScore(cmd, q)
		if !matched {
			continue
		}
		enabled, reason := cmd.Enabled(a)
		out = append(out, CommandMatch{
			Command:        cmd,
			Score:          score,
			Enabled:        enabled,
			DisabledReason: reason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Enabled != out[j].Enabled {
			return out[i].Enabled
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Command.Label < out[j].Command.Label
	})
	return out
}

func paletteMatchScore(cmd PaletteCommand, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	best := 0
	matched := false
	for _, field := range []string{cmd.Label, cmd.ID, cmd.Category} {
		ok, score := fuzzyScore(field, query)
		if !ok {
			continue
		}
		if !matched || score > best {
			best = score
		}
		matched = true
	}
	return matched, best
}

// ---------------------------------------------------------------------------
// Palette modal
// ---------------------------------------------------------------------------

type paletteState struct {
	query  string
	cursor int
}

func (a *App) openPalette() {
	a.palState = &paletteState{}
}

func (a *App) handlePaletteKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.palState
	matches := a.palette.Search(p.query, a)
	switch m.String() {
	case "esc":
		a.palState = nil
		return a, nil
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return a, nil
	case "down", "ctrl+n":
		if p.cursor < len(matches)-1 {
			p.cursor++
		}
		return a, nil
	case "enter":
		if p.cursor >= len(matches) {
			return a, nil
		}
		match := matches[p.cursor]
		a.palState = nil
		if !match.Enabled {
			a.status, a.statusErr = match.DisabledReason, true
			return a, nil
		}
		return a, match.Command.Execute(a)
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(p.query) > 0 {
			p.query = p.query[:len(p.query)-1]
		}
	case tea.KeySpace:
		p.query += " "
	case tea.KeyRunes:
		p.query += string(m.Runes)
	}
	p.cursor = 0
	return a, nil
}

func (a *App) renderPalette() string {
	p := a.palState
	matches := a.palette.Search(p.query, a)
	out := styleTitle.Render("Commands") + "\n" + styleMuted.Render("> "+p.query+"▌") + "\n\n"
	shown := matches
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, match := range shown {
		label := match.Command.Label
		desc := match.Command.Description
		if !match.Enabled {
			label = styleDim.Render(label)
			desc = match.DisabledReason
		}
		line := label + "  " + styleDim.Render(desc)
		if i == p.cursor {
			line = styleCursor.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		out += line + "\n"
	}
	if len(matches) == 0 {
		out += styleDim.Render("no matching commands") + "\n"
	}
	out += "\n" + styleDim.Render("enter run  esc close")
	return styleModal.Render(out)
}
