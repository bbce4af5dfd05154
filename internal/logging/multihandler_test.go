package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&buf1, nil),
		slog.NewTextHandler(&buf2, nil),
	)

	logger := slog.New(h)
	logger.Info("to everyone")

	assert.Contains(t, buf1.String(), "to everyone")
	assert.Contains(t, buf2.String(), "to everyone")
}

func TestMultiHandler_SkipsNil(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)

	slog.New(h).Info("survives nils")
	assert.Contains(t, buf.String(), "survives nils")
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(h)
	logger.Debug("low priority")

	assert.Contains(t, debugBuf.String(), "low priority")
	assert.NotContains(t, errorBuf.String(), "low priority")
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	slog.New(h).With("place", "fort-santiago").Info("tagged")
	assert.Contains(t, buf.String(), "place=fort-santiago")
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errSink }
func (failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return failingHandler{} }
func (failingHandler) WithGroup(string) slog.Handler             { return failingHandler{} }

var errSink = errors.New("sink down")

func TestMultiHandler_SinkFailureDoesNotBlockOthers(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewTextHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still delivered", 0))

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "still delivered")
}
