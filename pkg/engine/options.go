package engine

import (
	"log/slog"
	"time"

	"github.com/go-will/will/pkg/dom"
)

// DefaultRootID is the id of the container roots mount into by default.
const DefaultRootID = dom.RootID

type options struct {
	rootID       string
	logger       *slog.Logger
	prune        bool
	requestFrame func(cb func())
	inspect      bool
	traceSamples int
	slowRender   time.Duration
}

func defaultOptions() options {
	return options{
		rootID: DefaultRootID,
		logger: slog.New(slog.DiscardHandler),
		prune:  true,
	}
}

// Option configures Mount.
type Option func(*options)

// WithRootID mounts into the element with the given id.
func WithRootID(id string) Option {
	return func(o *options) {
		o.rootID = id
	}
}

// WithLogger sets the logger for mount and re-render records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutPruning keeps hook storage of components that stop rendering.
func WithoutPruning() Option {
	return func(o *options) {
		o.prune = false
	}
}

// WithFrameRequester replaces the document's RequestAnimationFrame as the
// source of paint callbacks.
func WithFrameRequester(fn func(cb func())) Option {
	return func(o *options) {
		o.requestFrame = fn
	}
}

// WithInspection captures the tree outline, hook storage and focus path
// after every render pass for Root.Inspect.
func WithInspection() Option {
	return func(o *options) {
		o.inspect = true
	}
}

// WithRenderTrace sizes the render trace ring buffer and sets the duration
// above which a pass counts as slow. Non-positive values keep the defaults.
func WithRenderTrace(samples int, slow time.Duration) Option {
	return func(o *options) {
		o.traceSamples = samples
		o.slowRender = slow
	}
}
