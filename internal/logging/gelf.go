package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

// syslog severities used by GELF
const (
	gelfLevelError   = 3
	gelfLevelWarning = 4
	gelfLevelInfo    = 6
	gelfLevelDebug   = 7
)

// GelfHandler forwards slog records to a Graylog server over GELF/UDP.
type GelfHandler struct {
	writer *gelf.Writer
	host   string
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

// NewGelfHandler connects to the Graylog endpoint at addr.
func NewGelfHandler(addr, level string) (*GelfHandler, error) {
	writer, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to graylog at %s: %w", addr, err)
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &GelfHandler{
		writer: writer,
		host:   host,
		level:  parseLevel(level),
	}, nil
}

// Enabled reports whether the record level passes the configured threshold.
func (h *GelfHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func gelfLevel(level slog.Level) int32 {
	switch {
	case level >= slog.LevelError:
		return gelfLevelError
	case level >= slog.LevelWarn:
		return gelfLevelWarning
	case level >= slog.LevelInfo:
		return gelfLevelInfo
	default:
		return gelfLevelDebug
	}
}

// Handle converts the record to a GELF message and sends it.
func (h *GelfHandler) Handle(_ context.Context, r slog.Record) error {
	extra := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))
	add := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		// GELF additional fields must be prefixed with an underscore
		extra["_"+key] = a.Value.String()
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	msg := &gelf.Message{
		Version:  "1.1",
		Host:     h.host,
		Short:    r.Message,
		TimeUnix: float64(r.Time.UnixNano()) / float64(time.Second),
		Level:    gelfLevel(r.Level),
		Extra:    extra,
	}
	return h.writer.WriteMessage(msg)
}

// WithAttrs returns a handler that includes attrs on every message.
func (h *GelfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a handler that prefixes attribute keys with name.
func (h *GelfHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}
