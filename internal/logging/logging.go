// Package logging builds the application logger: a JSON file sink
// fanned out with an in-memory ring the TUI's log overlay reads.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Entry is one rendered log line held by the ring.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Ring holds the most recent log entries for in-app display.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	size    int
}

// NewRing returns a ring keeping at most size entries.
func NewRing(size int) *Ring {
	return &Ring{size: size}
}

// Entries returns a copy of the retained entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > r.size {
		r.entries = r.entries[len(r.entries)-r.size:]
	}
}

// ringHandler adapts a Ring to slog.Handler.
type ringHandler struct {
	ring  *Ring
	level slog.Leveler
	attrs []slog.Attr
}

func (h *ringHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ringHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	h.ring.add(Entry{Time: record.Time, Level: record.Level, Message: b.String()})
	return nil
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ringHandler{ring: h.ring, level: h.level, attrs: merged}
}

func (h *ringHandler) WithGroup(string) slog.Handler { return h }

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New opens the log file at path and returns the logger, the ring
// feeding the in-app overlay, and a close func for the file.
func New(path string, level slog.Level, ringSize int) (*slog.Logger, *Ring, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, nil, err
	}

	ring := NewRing(ringSize)
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(
		fileHandler,
		&ringHandler{ring: ring, level: level},
	))
	return logger, ring, file.Close, nil
}
