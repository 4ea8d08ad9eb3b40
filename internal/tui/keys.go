package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per input scope, with an
// optional TOML override file on top of the defaults.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal    = "global"
	scopeContent   = "content"
	scopeWorkbench = "workbench"
	scopeTimeline  = "timeline"
	scopeRename    = "rename"
	scopePrompt    = "prompt"
	scopePalette   = "palette"
	scopeLog       = "log"
)

const (
	actionQuit           Action = "quit"
	actionNextPane       Action = "next_pane"
	actionPrevPane       Action = "prev_pane"
	actionCommandPalette Action = "command_palette"
	actionToggleLog      Action = "toggle_log"
	actionNewDocument    Action = "new_document"
	actionOpenDocument   Action = "open_document"
	actionSaveDocument   Action = "save_document"
	actionSaveAs         Action = "save_as"
	actionSaveAll        Action = "save_all"
	actionCloseDocument  Action = "close_document"
	actionNextDocument   Action = "next_document"
	actionPrevDocument   Action = "prev_document"
	actionImportFrames   Action = "import_frames"

	actionNavigate     Action = "navigate"
	actionSwitchTab    Action = "switch_tab"
	actionSelect       Action = "select"
	actionEdit         Action = "edit"
	actionNewAnimation Action = "new_animation"
	actionRename       Action = "rename"
	actionGrab         Action = "grab"
	actionDrop         Action = "drop"
	actionFilter       Action = "filter"
	actionClearFilter  Action = "clear_filter"
	actionConfirm      Action = "confirm"
	actionCancel       Action = "cancel"
	actionClose        Action = "close"
	actionZoomIn       Action = "zoom_in"
	actionZoomOut      Action = "zoom_out"
	actionResetZoom    Action = "reset_zoom"
	actionPanLeft      Action = "pan_left"
	actionPanRight     Action = "pan_right"
	actionPanUp        Action = "pan_up"
	actionPanDown      Action = "pan_down"
	actionPlayPause    Action = "play_pause"
	actionToggleLoop   Action = "toggle_loop"
	actionScrubBack    Action = "scrub_back"
	actionScrubForward Action = "scrub_forward"
	actionDurationUp   Action = "duration_up"
	actionDurationDown Action = "duration_down"
	actionMoveEarlier  Action = "move_earlier"
	actionMoveLater    Action = "move_later"
	actionInsertFrame  Action = "insert_frame"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup.
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")
	reg(scopeGlobal, actionNextPane, []string{"tab"}, "next pane")
	reg(scopeGlobal, actionPrevPane, []string{"shift+tab"}, "prev pane")
	reg(scopeGlobal, actionCommandPalette, []string{"ctrl+k"}, "commands")
	reg(scopeGlobal, actionToggleLog, []string{"ctrl+l"}, "log")
	reg(scopeGlobal, actionNewDocument, []string{"ctrl+n"}, "new sheet")
	reg(scopeGlobal, actionOpenDocument, []string{"ctrl+o"}, "open sheet")
	reg(scopeGlobal, actionSaveDocument, []string{"ctrl+s"}, "save")
	reg(scopeGlobal, actionSaveAll, []string{"ctrl+a"}, "save all")
	reg(scopeGlobal, actionCloseDocument, []string{"ctrl+w"}, "close")
	reg(scopeGlobal, actionNextDocument, []string{"]"}, "next sheet")
	reg(scopeGlobal, actionPrevDocument, []string{"["}, "prev sheet")
	reg(scopeGlobal, actionImportFrames, []string{"ctrl+i"}, "import frames")

	// Content pane footer.
	reg(scopeContent, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeContent, actionSwitchTab, []string{"t"}, "frames/animations")
	reg(scopeContent, actionSelect, []string{"space"}, "select")
	reg(scopeContent, actionEdit, []string{"enter"}, "open in workbench")
	reg(scopeContent, actionNewAnimation, []string{"n"}, "new animation")
	reg(scopeContent, actionRename, []string{"r"}, "rename")
	reg(scopeContent, actionGrab, []string{"d"}, "grab frame")
	reg(scopeContent, actionDrop, []string{"p"}, "drop on timeline")
	reg(scopeContent, actionFilter, []string{"/"}, "filter")
	reg(scopeContent, actionClearFilter, []string{"esc"}, "clear filter")
	reg(scopeContent, actionQuit, []string{"q"}, "quit")

	// Workbench pane footer.
	reg(scopeWorkbench, actionZoomIn, []string{"+", "="}, "zoom in")
	reg(scopeWorkbench, actionZoomOut, []string{"-"}, "zoom out")
	reg(scopeWorkbench, actionResetZoom, []string{"0"}, "reset zoom")
	reg(scopeWorkbench, actionPanLeft, []string{"h", "left"}, "pan")
	reg(scopeWorkbench, actionPanRight, []string{"l", "right"}, "pan")
	reg(scopeWorkbench, actionPanUp, []string{"k", "up"}, "pan")
	reg(scopeWorkbench, actionPanDown, []string{"j", "down"}, "pan")
	reg(scopeWorkbench, actionQuit, []string{"q"}, "quit")

	// Timeline pane footer.
	reg(scopeTimeline, actionNavigate, []string{"h/l", "h", "l", "left", "right"}, "select frame")
	reg(scopeTimeline, actionMoveEarlier, []string{"H", "shift+left"}, "move earlier")
	reg(scopeTimeline, actionMoveLater, []string{"L", "shift+right"}, "move later")
	reg(scopeTimeline, actionInsertFrame, []string{"i"}, "insert before")
	reg(scopeTimeline, actionDurationUp, []string{"+", "="}, "longer")
	reg(scopeTimeline, actionDurationDown, []string{"-"}, "shorter")
	reg(scopeTimeline, actionPlayPause, []string{"space"}, "play/pause")
	reg(scopeTimeline, actionToggleLoop, []string{"o"}, "loop")
	reg(scopeTimeline, actionScrubBack, []string{","}, "scrub back")
	reg(scopeTimeline, actionScrubForward, []string{"."}, "scrub forward")
	reg(scopeTimeline, actionZoomIn, []string{"z"}, "zoom in")
	reg(scopeTimeline, actionZoomOut, []string{"Z"}, "zoom out")
	reg(scopeTimeline, actionResetZoom, []string{"0"}, "reset zoom")
	reg(scopeTimeline, actionQuit, []string{"q"}, "quit")

	// Rename footer: text input plus enter/esc.
	reg(scopeRename, actionConfirm, []string{"enter"}, "confirm")
	reg(scopeRename, actionCancel, []string{"esc"}, "cancel")

	// Prompt footer.
	reg(scopePrompt, actionConfirm, []string{"enter"}, "confirm")
	reg(scopePrompt, actionCancel, []string{"esc"}, "cancel")

	// Palette footer.
	reg(scopePalette, actionNavigate, []string{"j/k", "up", "down", "ctrl+p", "ctrl+n"}, "navigate")
	reg(scopePalette, actionSelect, []string{"enter"}, "run")
	reg(scopePalette, actionClose, []string{"esc"}, "close")

	// Log overlay footer.
	reg(scopeLog, actionClose, []string{"esc", "ctrl+l"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key press in the given scope, falling back to the
// global scope when the scope itself has no binding for it.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ---------------------------------------------------------------------------
// TOML keybinding overrides
// ---------------------------------------------------------------------------

type keybindingConfig struct {
	Scope  string   `toml:"scope"`
	Action string   `toml:"action"`
	Keys   []string `toml:"keys"`
}

type keybindingFile struct {
	Binding []keybindingConfig `toml:"binding"`
}

// LoadOverrides reads a TOML keybinding file and applies it on top of
// the defaults. A missing path is not an error.
func (r *KeyRegistry) LoadOverrides(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read keybindings: %w", err)
	}
	var file keybindingFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse keybindings: %w", err)
	}
	return r.ApplyKeybindingConfig(file.Binding)
}

func (r *KeyRegistry) ApplyKeybindingConfig(items []keybindingConfig) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keybinding override scope=%q action=%q: duplicated override entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("keybinding conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
