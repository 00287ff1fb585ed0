package slogpretty

import (
	"context"
	"encoding/json"
	"io"
	stdLog "log"
	"log/slog"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	SlogOpts *slog.HandlerOptions
	// NoColor turns off ANSI colors, for output that is not a terminal.
	NoColor bool
}

type PrettyHandler struct {
	opts PrettyHandlerOptions
	slog.Handler
	l      *stdLog.Logger
	attrs  []slog.Attr
	prefix string // Open groups joined with dots, ending in a dot.
}

func (opts PrettyHandlerOptions) NewPrettyHandler(
	out io.Writer,
) *PrettyHandler {
	h := &PrettyHandler{
		opts:    opts,
		Handler: slog.NewJSONHandler(out, opts.SlogOpts),
		l:       stdLog.New(out, "", 0),
	}

	return h
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = h.paint(color.FgMagenta, level)
	case slog.LevelInfo:
		level = h.paint(color.FgBlue, level)
	case slog.LevelWarn:
		level = h.paint(color.FgYellow, level)
	case slog.LevelError:
		level = h.paint(color.FgRed, level)
	}

	fields := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))

	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, h.prefix, a)

		return true
	})

	var b []byte
	var err error

	if len(fields) > 0 {
		b, err = json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := h.paint(color.FgCyan, r.Message)

	h.l.Println(
		timeStr,
		level,
		msg,
		h.paint(color.FgWhite, string(b)),
	)

	return nil
}

func (h *PrettyHandler) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if h.opts.NoColor {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// addAttr stores a under prefix+key. Group values are flattened into
// dotted keys.
func addAttr(fields map[string]interface{}, prefix string, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(fields, groupPrefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}

	fields[prefix+a.Key] = a.Value.Any()
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		addAttr(fields, h.prefix, a)
	}

	merged := h.attrs[:len(h.attrs):len(h.attrs)]
	for key, value := range fields {
		merged = append(merged, slog.Any(key, value))
	}

	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithAttrs(attrs),
		l:       h.l,
		attrs:   merged,
		prefix:  h.prefix,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithGroup(name),
		l:       h.l,
		attrs:   h.attrs,
		prefix:  h.prefix + name + ".",
	}
}
