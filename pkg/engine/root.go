package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/errors"
	"github.com/go-will/will/pkg/focus"
)

// Root is a description mounted into a document container.
type Root struct {
	doc       dom.Host
	container dom.Node
	desc      *core.VNode
	session   *core.Session
	scheduler *FrameScheduler
	logger    *slog.Logger
	trace     *RenderTraceBuffer
	inspect   bool

	rendering bool
	renders   int

	mu         sync.RWMutex
	inspection Inspection
}

// Inspection is the state of a root after its latest render pass, as shown
// by the debug server.
type Inspection struct {
	Pass    int      `json:"pass"`
	Outline string   `json:"outline,omitempty"`
	Hooks   []string `json:"hooks"`
	Focus   []int    `json:"focus,omitempty"`
}

// Mount renders desc into the document's root container and returns the
// mounted root. State setters called after Mount returns schedule
// re-renders on the document's next animation frame.
func Mount(doc dom.Host, desc *core.VNode, opts ...Option) (*Root, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	container := doc.GetElementByID(o.rootID)
	if container == nil {
		return nil, errors.New("engine.Mount", errors.KindInit,
			fmt.Errorf("no container with id %q", o.rootID))
	}

	requestFrame := o.requestFrame
	if requestFrame == nil {
		requestFrame = doc.RequestAnimationFrame
	}

	r := &Root{
		doc:       doc,
		container: container,
		desc:      desc,
		scheduler: NewFrameScheduler(requestFrame),
		logger:    o.logger,
		trace:     NewRenderTraceBuffer(o.traceSamples, o.slowRender),
		inspect:   o.inspect,
	}
	r.session = core.NewSession(doc, nil, r.scheduler)
	r.session.SetPruning(o.prune)

	start := time.Now()
	r.rendering = true
	node, pruned := r.pass()
	if node != nil {
		container.AppendChild(node)
	}
	r.rendering = false
	r.renders++
	r.scheduler.Attach(r.Rerender)
	r.record(start, pruned, nil, false)

	r.logger.Debug("mounted",
		"root", o.rootID,
		"duration", time.Since(start),
		"identities", r.session.Store().Len(),
	)
	return r, nil
}

// Start mounts desc and returns the root's re-render function.
func Start(doc dom.Host, desc *core.VNode, opts ...Option) (func(), error) {
	r, err := Mount(doc, desc, opts...)
	if err != nil {
		return nil, err
	}
	return r.Rerender, nil
}

// Rerender rebuilds the whole tree from the root description, replaces the
// container's children with it, and moves focus to the node at the
// focused node's former position. Focus that cannot be restored is dropped.
//
// A Rerender requested while one is running is deferred to the next frame.
func (r *Root) Rerender() {
	if r.rendering {
		r.scheduler.Request()
		return
	}
	r.rendering = true
	defer func() { r.rendering = false }()

	start := time.Now()
	path := focus.CapturePath(r.doc.ActiveElement(), r.container)

	node, pruned := r.pass()
	if node != nil {
		r.container.ReplaceChildren(node)
	} else {
		r.container.ReplaceChildren()
	}

	lost := false
	if err := focus.RestorePath(r.container, path); err != nil {
		lost = true
		errors.Report(errors.New("engine.Rerender", errors.KindFocus,
			fmt.Errorf("restore %v: %w", path, err)))
	}
	r.renders++
	r.record(start, pruned, path, lost)

	r.logger.Debug("rerendered",
		"render", r.renders,
		"duration", time.Since(start),
		"focus", []int(path),
		"pruned", pruned,
		"identities", r.session.Store().Len(),
	)
}

// pass runs one render pass and returns the materialized tree and the
// number of pruned identities.
func (r *Root) pass() (dom.Node, int) {
	r.session.Begin()
	node := r.session.Build(r.desc)
	return node, r.session.End()
}

func (r *Root) record(start time.Time, pruned int, path focus.Path, lost bool) {
	d := time.Since(start)
	r.trace.Add(RenderSample{
		Timestamp:  start.UnixMilli(),
		RenderMs:   durationToMillis(d),
		Pass:       r.renders,
		Identities: r.session.Store().Len(),
		Pruned:     pruned,
		Focus:      path,
		FocusLost:  lost,
	}, d)

	insp := Inspection{Pass: r.renders}
	if r.inspect {
		insp.Hooks = r.session.Store().Describe()
		insp.Focus = focus.CapturePath(r.doc.ActiveElement(), r.container)
		if el, ok := r.container.(*dom.Element); ok {
			insp.Outline = dom.Outline(el)
		}
	}
	r.mu.Lock()
	r.inspection = insp
	r.mu.Unlock()
}

// Inspect returns the state captured after the latest render pass. It is
// safe to call from any goroutine. Without WithInspection only Pass is
// tracked.
func (r *Root) Inspect() Inspection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inspection
}

// Container returns the node the root renders into.
func (r *Root) Container() dom.Node {
	return r.container
}

// Store returns the root's hook store.
func (r *Root) Store() *core.HookStore {
	return r.session.Store()
}

// Scheduler returns the root's frame scheduler.
func (r *Root) Scheduler() *FrameScheduler {
	return r.scheduler
}

// Trace returns the root's render trace.
func (r *Root) Trace() *RenderTraceBuffer {
	return r.trace
}

// Renders returns the number of completed render passes, the mount included.
func (r *Root) Renders() int {
	return r.renders
}
