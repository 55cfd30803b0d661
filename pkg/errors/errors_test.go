package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWillErrorString(t *testing.T) {
	err := &WillError{
		Op:   "engine.Mount",
		Kind: KindInit,
		Err:  fmt.Errorf("no element with id %q", "root"),
	}
	assert.Equal(t, `engine.Mount [init]: no element with id "root"`, err.Error())
}

func TestWillErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := New("config.Load", KindConfig, inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, KindConfig, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, KindUnknown, KindOf(inner))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindFocus, "focus"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
		{KindIO, "io"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "term.handleKey"
	assert.Equal(t, "panic in term.handleKey: test panic", err.Error())
}

func TestReport(t *testing.T) {
	var captured *WillError
	handler := &testHandler{onError: func(err *WillError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&WillError{Op: "test.op", Kind: KindRender, Err: fmt.Errorf("x")})

	require.NotNil(t, captured)
	assert.Equal(t, "test.op", captured.Op)
	assert.False(t, captured.Timestamp.IsZero())

	// nil reports are dropped
	captured = nil
	Report(nil)
	assert.Nil(t, captured)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	var callbackValue any
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, "intentional test panic", captured.Value)
	assert.Equal(t, "test.recover", captured.Op)
	assert.NotEmpty(t, captured.StackTrace)

	func() {
		defer RecoverWithCallback("test.callback", func(r any) { callbackValue = r })
		panic(42)
	}()
	assert.Equal(t, 42, callbackValue)
	assert.Equal(t, "test.callback", captured.Op)
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	_, ok := DefaultHandler.(*LogHandler)
	assert.True(t, ok, "SetHandler(nil) should install a LogHandler, got %T", DefaultHandler)
}

func TestLogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := &LogHandler{Logger: logger}

	h.HandleError(&WillError{Op: "engine.Rerender", Kind: KindFocus, Err: fmt.Errorf("gone")})
	assert.Empty(t, buf.String(), "focus errors log below info")

	h.HandleError(&WillError{Op: "engine.Mount", Kind: KindInit, Err: fmt.Errorf("no root")})
	assert.Contains(t, buf.String(), "op=engine.Mount")
	assert.Contains(t, buf.String(), "kind=init")

	buf.Reset()
	h.Verbose = true
	h.HandlePanic(&PanicError{Op: "x", Value: "v", StackTrace: "frame"})
	assert.Contains(t, buf.String(), "stack=frame")
}

type testHandler struct {
	onError func(*WillError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *WillError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
