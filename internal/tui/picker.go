package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptNewDocument promptKind = iota
	promptOpenDocument
	promptSaveAs
	promptImport
)

// prompt is the path picker modal. Confirming primes the dialog queue
// and emits the paired command, so the editor state sees the same
// answer a native file dialog would have produced.
type prompt struct {
	kind  promptKind
	input textinput.Model
}

func (a *App) openPrompt(kind promptKind) {
	in := textinput.New()
	in.Prompt = "> "
	in.Focus()
	switch kind {
	case promptNewDocument, promptSaveAs:
		in.Placeholder = "path/to/sheet"
	case promptOpenDocument:
		in.Placeholder = "one or more .sheet paths, comma separated"
	case promptImport:
		in.Placeholder = "one or more image paths, comma separated"
	}
	a.prompt = &prompt{kind: kind, input: in}
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		// Dismissing the prompt is a cancelled dialog: nothing queued,
		// nothing emitted, no error.
		a.prompt = nil
		return a, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(a.prompt.input.Value())
		kind := a.prompt.kind
		a.prompt = nil
		if value == "" {
			return a, nil
		}
		return a, a.confirmPrompt(kind, value)
	}
	var cmd tea.Cmd
	a.prompt.input, cmd = a.prompt.input.Update(m)
	return a, cmd
}

func (a *App) confirmPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptNewDocument:
		a.dialogs.QueueSave(value)
		a.buf.NewDocument()
	case promptOpenDocument:
		a.dialogs.QueueFiles(splitPaths(value))
		a.buf.OpenDocument()
	case promptSaveAs:
		a.dialogs.QueueSave(value)
		a.buf.SaveAs()
	case promptImport:
		a.dialogs.QueueFiles(splitPaths(value))
		a.buf.Import()
	}
	a.drain()
	if kind == promptNewDocument || kind == promptOpenDocument {
		return a.touchRecents()
	}
	return nil
}

func splitPaths(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) renderPrompt() string {
	var title string
	switch a.prompt.kind {
	case promptNewDocument:
		title = "New sheet"
	case promptOpenDocument:
		title = "Open sheets"
	case promptSaveAs:
		title = "Save sheet as"
	case promptImport:
		title = "Import frames"
	}
	body := styleTitle.Render(title) + "\n\n" + a.prompt.input.View() + "\n\n" + styleDim.Render("enter confirm  esc cancel")
	return styleModal.Render(body)
}
