// Package tui is the terminal frontend for the sprite sheet editor. It
// translates key presses into commands, hands them to the editor state
// in document order, and renders the content, workbench and timeline
// panes from whatever the state says afterwards.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maren/spritepad/internal/config"
	"github.com/maren/spritepad/internal/library"
	"github.com/maren/spritepad/internal/logging"
	"github.com/maren/spritepad/internal/state"
)

type paneFocus int

const (
	focusContent paneFocus = iota
	focusWorkbench
	focusTimeline
)

// App ties together the panes and owns the single command buffer that
// feeds the editor state.
type App struct {
	ctx     context.Context
	cfg     config.Config
	st      *state.State
	buf     *state.CommandBuffer
	dialogs *state.DialogQueue
	lib     *library.Library
	log     *slog.Logger
	ring    *logging.Ring

	keys    *KeyRegistry
	palette *CommandRegistry

	width  int
	height int
	focus  paneFocus

	content  contentPane
	prompt   *prompt
	palState *paletteState
	showLog  bool

	status    string
	statusErr bool
	lastTick  time.Time
}

func New(ctx context.Context, cfg config.Config, lib *library.Library, logger *slog.Logger, ring *logging.Ring) (*App, error) {
	dialogs := &state.DialogQueue{}
	keys := NewKeyRegistry()
	if err := keys.LoadOverrides(cfg.UI.Keybindings); err != nil {
		return nil, err
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		st:      state.New(dialogs),
		buf:     &state.CommandBuffer{},
		dialogs: dialogs,
		lib:     lib,
		log:     logger,
		ring:    ring,
		keys:    keys,
		width:   120,
		height:  32,
	}
	a.palette = NewCommandRegistry()
	return a, nil
}

// RestoreSession reopens the documents that were open when the editor
// last quit. Missing files surface on the status line, not as a crash.
func (a *App) RestoreSession(s library.Session) {
	if len(s.Paths) == 0 {
		return
	}
	a.dialogs.QueueFiles(s.Paths)
	a.buf.OpenDocument()
	if s.Current != "" {
		a.buf.FocusDocument(s.Current)
	}
	a.drain()
}

// OpenPaths opens sheets named on the command line.
func (a *App) OpenPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	a.dialogs.QueueFiles(paths)
	a.buf.OpenDocument()
	a.drain()
}

func (a *App) Init() tea.Cmd {
	a.lastTick = time.Now()
	return a.tickCmd()
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

type tickMsg time.Time

type statusMsg string

type errMsg struct{ error }

func (a *App) tickCmd() tea.Cmd {
	fps := a.cfg.UI.PlaybackFPS
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tickMsg:
		now := time.Time(m)
		delta := now.Sub(a.lastTick)
		a.lastTick = now
		if doc, ok := a.st.CurrentDocument(); ok && doc.IsPlaying() {
			a.buf.AdvanceTimelineClock(delta)
			a.drain()
		}
		return a, a.tickCmd()
	case statusMsg:
		a.status, a.statusErr = string(m), false
	case errMsg:
		a.status, a.statusErr = m.Error(), true
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.prompt != nil:
		return a.handlePromptKey(m)
	case a.palState != nil:
		return a.handlePaletteKey(m)
	case a.showLog:
		if b := a.keys.Lookup(m.String(), scopeLog); b != nil && b.Action == actionClose {
			a.showLog = false
		}
		return a, nil
	}

	if doc, ok := a.st.CurrentDocument(); ok {
		if _, _, renaming := doc.RenameInProgress(); renaming && a.focus == focusContent {
			return a.handleRenameKey(m, doc)
		}
	}
	if a.content.filtering && a.focus == focusContent {
		return a.handleFilterKey(m)
	}

	b := a.keys.Lookup(m.String(), a.scope())
	if b == nil {
		return a, nil
	}
	return a.applyAction(b.Action, m)
}

func (a *App) scope() string {
	switch a.focus {
	case focusWorkbench:
		return scopeWorkbench
	case focusTimeline:
		return scopeTimeline
	default:
		return scopeContent
	}
}

func (a *App) applyAction(action Action, m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action {
	case actionQuit:
		return a, a.quit()
	case actionNextPane:
		a.focus = (a.focus + 1) % 3
		return a, nil
	case actionPrevPane:
		a.focus = (a.focus + 2) % 3
		return a, nil
	case actionCommandPalette:
		a.openPalette()
		return a, nil
	case actionToggleLog:
		a.showLog = !a.showLog
		return a, nil
	case actionNewDocument:
		a.openPrompt(promptNewDocument)
		return a, nil
	case actionOpenDocument:
		a.openPrompt(promptOpenDocument)
		return a, nil
	case actionSaveDocument:
		a.buf.Save()
		a.drain()
		if !a.statusErr {
			a.status = "saved"
		}
		return a, nil
	case actionSaveAs:
		a.openPrompt(promptSaveAs)
		return a, nil
	case actionSaveAll:
		a.buf.SaveAll()
		a.drain()
		if !a.statusErr {
			a.status = "all sheets saved"
		}
		return a, nil
	case actionCloseDocument:
		a.buf.CloseCurrentDocument()
		a.drain()
		return a, nil
	case actionNextDocument:
		a.focusNeighborDocument(1)
		return a, nil
	case actionPrevDocument:
		a.focusNeighborDocument(-1)
		return a, nil
	case actionImportFrames:
		a.openPrompt(promptImport)
		return a, nil
	}

	switch a.focus {
	case focusContent:
		return a.handleContentAction(action, m)
	case focusWorkbench:
		return a.handleWorkbenchAction(action)
	case focusTimeline:
		return a.handleTimelineAction(action, m)
	}
	return a, nil
}

func (a *App) quit() tea.Cmd {
	if a.lib != nil {
		s := library.Session{}
		for _, doc := range a.st.Documents() {
			s.Paths = append(s.Paths, doc.Source())
		}
		if doc, ok := a.st.CurrentDocument(); ok {
			s.Current = doc.Source()
		}
		if err := a.lib.SaveSession(a.ctx, s); err != nil {
			a.log.Warn("save session", "error", err)
		}
	}
	return tea.Quit
}

func (a *App) focusNeighborDocument(step int) {
	docs := a.st.Documents()
	if len(docs) < 2 {
		return
	}
	cur, ok := a.st.CurrentDocument()
	if !ok {
		return
	}
	for i, doc := range docs {
		if doc.Source() == cur.Source() {
			next := (i + step + len(docs)) % len(docs)
			a.buf.FocusDocument(docs[next].Source())
			a.drain()
			return
		}
	}
}

// drain flushes the buffer through the editor state. Each command is
// applied independently; a failure surfaces on the status line and in
// the log without blocking the commands behind it.
func (a *App) drain() {
	for _, cmd := range a.buf.Flush() {
		if err := a.st.ProcessCommand(cmd); err != nil {
			a.status, a.statusErr = err.Error(), true
			a.log.Warn("command rejected", "command", fmt.Sprintf("%T", cmd), "error", err)
			continue
		}
		a.statusErr = false
	}
}

// touchRecents records the current document in the library, off the
// update loop.
func (a *App) touchRecents() tea.Cmd {
	doc, ok := a.st.CurrentDocument()
	if !ok || a.lib == nil {
		return nil
	}
	path := doc.Source()
	return func() tea.Msg {
		if err := a.lib.Touch(a.ctx, path); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	contentWidth := a.width / 3
	if contentWidth > 44 {
		contentWidth = 44
	}
	rightWidth := a.width - contentWidth - 2
	bodyHeight := a.height - 3
	timelineHeight := 8
	workbenchHeight := bodyHeight - timelineHeight

	left := a.renderContent(contentWidth, bodyHeight)
	workbench := a.renderWorkbench(rightWidth, workbenchHeight)
	timeline := a.renderTimeline(rightWidth, timelineHeight)
	right := lipgloss.JoinVertical(lipgloss.Left, workbench, timeline)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	out := a.renderTabBar() + "\n" + body + "\n" + a.renderStatusLine()

	switch {
	case a.prompt != nil:
		out = overlayCentered(out, a.renderPrompt(), a.width, a.height)
	case a.palState != nil:
		out = overlayCentered(out, a.renderPalette(), a.width, a.height)
	case a.showLog:
		out = overlayCentered(out, a.renderLog(), a.width, a.height)
	}
	return out
}

func (a *App) renderTabBar() string {
	docs := a.st.Documents()
	if len(docs) == 0 {
		return styleTitle.Render("spritepad") + styleDim.Render("  no sheet open")
	}
	cur, _ := a.st.CurrentDocument()
	parts := make([]string, 0, len(docs)+1)
	parts = append(parts, styleTitle.Render("spritepad"))
	for _, doc := range docs {
		label := baseName(doc.Source())
		if cur != nil && doc.Source() == cur.Source() {
			parts = append(parts, styleTabActive.Render(label))
		} else {
			parts = append(parts, styleTabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (a *App) renderStatusLine() string {
	help := ""
	for i, b := range a.keys.HelpBindings(a.scope()) {
		if i > 6 {
			break
		}
		if i > 0 {
			help += "  "
		}
		help += b.Help().Key + " " + b.Help().Desc
	}
	line := styleDim.Render(help)
	if a.status != "" {
		style := styleStatusOK
		if a.statusErr {
			style = styleStatusErr
		}
		line = style.Render(a.status) + "  " + line
	}
	return truncate(line, a.width)
}

func (a *App) renderLog() string {
	out := styleTitle.Render("Log") + "\n"
	entries := a.ring.Entries()
	start := 0
	if len(entries) > 20 {
		start = len(entries) - 20
	}
	for _, e := range entries[start:] {
		line := fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level, e.Message)
		if e.Level >= slog.LevelWarn {
			line = styleStatusErr.Render(line)
		}
		out += truncate(line, a.width-8) + "\n"
	}
	out += styleDim.Render("esc close")
	return styleModal.Render(out)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
