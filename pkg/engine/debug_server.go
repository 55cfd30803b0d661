package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// DebugServer serves a root's render state over HTTP:
//
//	/health   liveness
//	/tree     outline of the latest pass (text/plain)
//	/hooks    hook storage per identity
//	/frames   render trace, filtered by ?min_ms, ?focus_lost and ?limit
//	/debug    pass count, scheduler stats and pending state
//	/runtime  heap, goroutine and GC samples, limited by ?limit
//
// Handlers read only state captured at the end of each pass, so they never
// touch the live document.
type DebugServer struct {
	root     *Root
	server   *http.Server
	listener net.Listener
	runtime  *RuntimeSampleBuffer
	stop     chan struct{}
	mu       sync.Mutex
}

// DebugOption configures StartDebugServer.
type DebugOption func(*debugOptions)

type debugOptions struct {
	window   time.Duration
	interval time.Duration
}

// WithRuntimeSampling sets how often /runtime samples are taken and how much
// history is kept.
func WithRuntimeSampling(window, interval time.Duration) DebugOption {
	return func(o *debugOptions) {
		o.window = window
		o.interval = interval
	}
}

// StartDebugServer starts serving root on the given localhost port and
// returns the server. Port 0 picks an ephemeral port; see Port.
func StartDebugServer(root *Root, port int, opts ...DebugOption) (*DebugServer, error) {
	var o debugOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}

	d := &DebugServer{
		root:     root,
		listener: listener,
		runtime:  NewRuntimeSampleBuffer(o.window, o.interval),
		stop:     make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", d.handleHealth)
	mux.HandleFunc("/tree", d.handleTree)
	mux.HandleFunc("/hooks", d.handleHooks)
	mux.HandleFunc("/frames", d.handleFrames)
	mux.HandleFunc("/debug", d.handleDebug)
	mux.HandleFunc("/runtime", d.handleRuntime)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	d.server = server

	go d.runtime.sample(d.stop)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			root.logger.Error("debug server stopped", "err", err)
		}
	}()
	root.logger.Debug("debug server listening", "port", d.Port())
	return d, nil
}

// Port returns the port the server listens on.
func (d *DebugServer) Port() int {
	return d.listener.Addr().(*net.TCPAddr).Port
}

// Stop gracefully shuts down the server.
func (d *DebugServer) Stop() {
	d.mu.Lock()
	server := d.server
	d.server = nil
	d.mu.Unlock()

	if server == nil {
		return
	}
	close(d.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (d *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (d *DebugServer) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	insp := d.root.Inspect()
	if !d.root.inspect {
		http.Error(w, "inspection disabled", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(insp.Outline))
}

func (d *DebugServer) handleHooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	insp := d.root.Inspect()
	if !d.root.inspect {
		http.Error(w, "inspection disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, struct {
		Pass  int      `json:"pass"`
		Hooks []string `json:"hooks"`
	}{insp.Pass, insp.Hooks})
}

func (d *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := d.root.trace.Snapshot()
	applyRenderFilters(r, &resp)
	writeJSON(w, resp)
}

func (d *DebugServer) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requests, frames := d.root.scheduler.Stats()
	insp := d.root.Inspect()
	writeJSON(w, struct {
		Pass       int   `json:"pass"`
		Requests   int   `json:"requests"`
		Frames     int   `json:"frames"`
		Pending    bool  `json:"pending"`
		Focus      []int `json:"focus,omitempty"`
		Inspecting bool  `json:"inspecting"`
	}{insp.Pass, requests, frames, d.root.scheduler.Pending(), insp.Focus, d.root.inspect})
}

func (d *DebugServer) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples := d.runtime.Snapshot()
	if limit := parseLimit(r); limit > 0 && len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}
	writeJSON(w, struct {
		IntervalMs float64         `json:"intervalMs"`
		Samples    []RuntimeSample `json:"samples"`
	}{durationToMillis(d.runtime.Interval()), samples})
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyRenderFilters(r *http.Request, resp *RenderTimeline) {
	limit := parseLimit(r)

	var filters []func(RenderSample) bool

	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s RenderSample) bool { return s.RenderMs >= v })
	}
	if value := r.URL.Query().Get("focus_lost"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil && parsed {
			filters = append(filters, func(s RenderSample) bool { return s.FocusLost })
		}
	}

	if len(filters) > 0 {
		filtered := make([]RenderSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseLimit(r *http.Request) int {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return v
}
