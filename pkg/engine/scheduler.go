package engine

import "sync"

// FrameScheduler coalesces re-render requests of one root into at most one
// pending paint-frame callback. Requests made while a frame is pending, or
// before the root has finished mounting, are dropped.
//
// Request is safe to call from any goroutine; the re-render itself runs
// wherever the host runs frame callbacks.
type FrameScheduler struct {
	mu           sync.Mutex
	pending      bool
	run          func()
	requestFrame func(cb func())
	requests     int
	frames       int

	// OnRequest is called for every Request, coalesced or not.
	OnRequest func()
}

// NewFrameScheduler returns a scheduler that asks requestFrame for paint
// callbacks. It drops requests until Attach is called.
func NewFrameScheduler(requestFrame func(cb func())) *FrameScheduler {
	return &FrameScheduler{requestFrame: requestFrame}
}

// Attach sets the function run on each frame and starts accepting requests.
func (f *FrameScheduler) Attach(run func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.run = run
}

// Request schedules one run on the next frame unless one is already pending.
func (f *FrameScheduler) Request() {
	scheduled := func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		if f.run == nil || f.pending {
			return false
		}
		f.pending = true
		return true
	}()

	if f.OnRequest != nil {
		f.OnRequest()
	}
	if scheduled {
		f.requestFrame(f.frame)
	}
}

func (f *FrameScheduler) frame() {
	f.mu.Lock()
	f.pending = false
	f.frames++
	run := f.run
	f.mu.Unlock()
	if run != nil {
		run()
	}
}

// Pending reports whether a frame callback is outstanding.
func (f *FrameScheduler) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Stats returns how many requests were made and how many frames ran.
func (f *FrameScheduler) Stats() (requests, frames int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests, f.frames
}
