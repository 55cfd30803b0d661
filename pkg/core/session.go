package core

import "github.com/go-will/will/pkg/dom"

// Scheduler receives re-render requests from state setters.
type Scheduler interface {
	Request()
}

// Session is the render context of one mounted root: the document nodes are
// created in, the hook store, the scheduler setters notify, and the set of
// identities observed by the current render pass.
//
// A Session is not safe for concurrent use; one render pass runs at a time.
type Session struct {
	doc       dom.Host
	store     *HookStore
	scheduler Scheduler
	prune     bool

	inPass   bool
	observed map[any]struct{}
}

// NewSession returns a session rendering into doc. A nil store gets a fresh
// one; a nil scheduler makes setters store values without requesting a
// re-render.
func NewSession(doc dom.Host, store *HookStore, scheduler Scheduler) *Session {
	if store == nil {
		store = NewHookStore()
	}
	return &Session{
		doc:       doc,
		store:     store,
		scheduler: scheduler,
		prune:     true,
	}
}

// SetPruning controls whether End drops storage of identities the pass did
// not render. Pruning is on by default.
func (s *Session) SetPruning(enabled bool) {
	s.prune = enabled
}

// Store returns the session's hook store.
func (s *Session) Store() *HookStore {
	return s.store
}

// Document returns the document the session materializes into.
func (s *Session) Document() dom.Host {
	return s.doc
}

// Begin starts a render pass.
func (s *Session) Begin() {
	s.inPass = true
	s.observed = make(map[any]struct{})
}

// End completes a render pass and returns how many slot lists were pruned.
func (s *Session) End() int {
	if !s.inPass {
		return 0
	}
	s.inPass = false
	pruned := 0
	if s.prune {
		pruned = s.store.Prune(s.observed)
	}
	s.observed = nil
	return pruned
}

// InPass reports whether a render pass is running.
func (s *Session) InPass() bool {
	return s.inPass
}

// Render runs a complete render pass over v and returns the materialized
// node, or nil if v renders to nothing.
func (s *Session) Render(v *VNode) dom.Node {
	s.Begin()
	node := s.Build(v)
	s.End()
	return node
}

func (s *Session) request() {
	if s.scheduler != nil {
		s.scheduler.Request()
	}
}

// Context is the hook cursor of one component invocation: the slot list of
// the component's identity and the index the next hook call claims.
type Context struct {
	session  *Session
	identity any
	slots    *SlotList
	next     int
}

// Session returns the render session the component runs in.
func (c *Context) Session() *Session {
	return c.session
}

// Identity returns the identity the component's hooks are stored under.
func (c *Context) Identity() any {
	return c.identity
}

func (c *Context) claim() int {
	i := c.next
	c.next++
	return i
}
