package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
)

// ParseLevel maps a level name to its slog.Level. The match is case
// insensitive and unrecognised names fall back to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ANSI color escape codes used by colored terminal output.
const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[37m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

func levelColor(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return ansiGray
	case l < slog.LevelWarn:
		return ansiGreen
	case l < slog.LevelError:
		return ansiYellow
	default:
		return ansiRed
	}
}

// TermHandler is a slog.Handler that renders records as single aligned
// lines for terminals:
//
//	[2006-01-02 15:04:05] INFO  message key=value
//
// Attributes print in sorted key order so the output is deterministic.
// Groups are flattened; the pairing subsystems only attach flat context.
type TermHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	color bool
	attrs []slog.Attr
}

// NewTermHandler creates a TermHandler writing to w at the given level.
func NewTermHandler(w io.Writer, level slog.Level, color bool) *TermHandler {
	return &TermHandler{mu: new(sync.Mutex), w: w, level: level, color: color}
}

// NewTerm creates a Logger that writes aligned text lines to stderr.
func NewTerm(level slog.Level) *Logger {
	return &Logger{inner: slog.New(NewTermHandler(os.Stderr, level, false))}
}

// Enabled implements slog.Handler.
func (h *TermHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

// WithAttrs implements slog.Handler. The child shares the writer and its
// lock with the parent.
func (h *TermHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &n
}

// WithGroup implements slog.Handler. Group names are dropped.
func (h *TermHandler) WithGroup(string) slog.Handler {
	return h
}

// Handle implements slog.Handler.
func (h *TermHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]string, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.String()
		return true
	})
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString("[")
		b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
		b.WriteString("] ")
	}
	if h.color {
		b.WriteString(levelColor(r.Level))
	}
	// Pad to the widest level name (DEBUG/ERROR) for column alignment.
	fmt.Fprintf(&b, "%-5s", r.Level.String())
	if h.color {
		b.WriteString(ansiReset)
	}
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(fields[k])
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}
