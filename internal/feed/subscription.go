package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/id"
	logpkg "github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/log"
)

// State is the observable connection state of a Subscription.
type State int

// Connection states. Transitions: Connecting -> Open on a successful
// stream response, any transport error -> Closed, then (after the
// reconnect delay) back to Connecting. Explicit Close is terminal.
const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrClosed is returned by Open after Close has been called.
var ErrClosed = errors.New("feed: subscription closed")

// Handler is invoked once per received, successfully-parsed event with
// the normalized entry and a duplicate flag (true when a buffered entry
// shares the payload identity). Returning false rejects buffering of the
// entry; the connection is unaffected.
type Handler func(e Entry, duplicate bool) bool

// Snapshot is a non-blocking, read-only view of a Subscription.
type Snapshot struct {
	// Buffer holds the retained entries, newest first.
	Buffer []Entry
	// State is the current connection state.
	State State
	// LastErr is a human-readable description of the last transport
	// failure, empty while healthy. It is presentation text, never a
	// value to branch on.
	LastErr string
}

// Options configures a Subscription.
type Options struct {
	// URL is the stream endpoint. An unreachable or invalid URL is not a
	// distinct error kind: it degrades to transport-error/reconnect
	// cycling, which is the caller's signal to fix configuration.
	URL string
	// Events enumerates the named server events to deliver. Empty means
	// all events. The "connected" confirmation event is handled either way
	// and never buffered.
	Events []string
	// BufferSize is the window capacity; must be >= 1.
	BufferSize int
	// ReconnectDelay is the fixed delay between a dropped connection and
	// the next attempt. No backoff, no jitter, no retry cap: the client
	// retries until Close. Zero means 3s.
	ReconnectDelay time.Duration
	// Filter is an optional CEL expression evaluated per event before
	// normalization. Non-matching events are skipped silently.
	Filter string
	// Normalize rewrites payloads for presentation. Nil leaves payloads
	// untouched.
	Normalize Normalizer
	// Identity extracts the dedupe identity. Nil means EventIdentity.
	Identity IdentityFunc
	// Dedupe decides whether duplicate-identity entries are buffered.
	// Nil means KeepAll.
	Dedupe DedupePolicy
	// Clock drives the reconnect timer and arrival timestamps. Nil means
	// the wall clock.
	Clock clock.Clock
	// HTTPClient performs the stream request. Nil means a default client
	// without timeout (the stream is long-lived by design).
	HTTPClient *http.Client
	// Logger receives parse-drop and reconnect diagnostics. Nil discards.
	Logger logpkg.Logger
}

// Subscription owns one push-channel subscription and presents it as a
// pollable buffer plus a connection-health flag, hiding reconnect
// mechanics. Create with New, start with Open, stop with Close.
type Subscription struct {
	opts   Options
	filter celFilter
	clk    clock.Clock
	client *http.Client
	logger logpkg.Logger
	ids    *id.Generator
	events map[string]struct{}

	mu       sync.Mutex
	state    State
	lastErr  string
	window   *Window
	handlers []Handler
	closed   bool
	// epoch invalidates callbacks from torn-down transports: every Open
	// and Close bumps it, and any in-flight callback carrying a stale
	// epoch becomes a no-op.
	epoch  uint64
	cancel context.CancelFunc
	timer  clock.Timer
}

// New validates opts and builds an idle Subscription. No I/O happens
// until Open.
func New(opts Options) (*Subscription, error) {
	if opts.URL == "" {
		return nil, errors.New("feed: Options.URL is required")
	}
	if opts.BufferSize < 1 {
		return nil, errors.New("feed: Options.BufferSize must be >= 1")
	}
	filter, err := newCELFilter(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("feed: invalid filter: %w", err)
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 3 * time.Second
	}
	if opts.Identity == nil {
		opts.Identity = EventIdentity
	}
	if opts.Dedupe == nil {
		opts.Dedupe = KeepAll
	}
	s := &Subscription{
		opts:   opts,
		filter: filter,
		clk:    opts.Clock,
		client: opts.HTTPClient,
		logger: opts.Logger,
		ids:    id.NewGenerator(),
		window: NewWindow(opts.BufferSize),
		state:  StateClosed,
	}
	if s.clk == nil {
		s.clk = clock.WallClock
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	if s.logger == nil {
		s.logger = logpkg.Discard()
	}
	if len(opts.Events) > 0 {
		s.events = make(map[string]struct{}, len(opts.Events))
		for _, name := range opts.Events {
			s.events[name] = struct{}{}
		}
	}
	return s, nil
}

// OnEvent registers a handler. Handlers registered after Open still see
// subsequent events.
func (s *Subscription) OnEvent(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Open establishes the subscription and returns immediately; events
// arrive asynchronously. Calling Open on a live subscription first tears
// down the prior transport, so a handle never holds two concurrent
// streams. After Close it returns ErrClosed.
func (s *Subscription) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.epoch++
	epoch := s.epoch
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateConnecting
	s.lastErr = ""
	go s.run(ctx, epoch)
	return nil
}

// Close tears down the subscription, cancels any pending reconnect and
// transitions to Closed. Safe to call multiple times; late transport
// callbacks after Close are guaranteed no-ops.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = StateClosed
}

// Snapshot returns a read-only view of the buffer and connection health.
func (s *Subscription) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Buffer: s.window.Entries(), State: s.state, LastErr: s.lastErr}
}

// run drives one transport connection until it fails or is torn down.
func (s *Subscription) run(ctx context.Context, epoch uint64) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.URL, nil)
	if err != nil {
		s.transportError(epoch, fmt.Sprintf("invalid stream URL: %v", err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return // torn down locally
		}
		s.transportError(epoch, fmt.Sprintf("connection failed: %v", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		s.transportError(epoch, fmt.Sprintf("unexpected status %s", resp.Status))
		return
	}

	// Headers arrived: the transport is open. The server's "connected"
	// event, when emitted, is confirmation only.
	s.markOpen(epoch)

	dec := NewDecoder(resp.Body)
	for {
		ev, err := dec.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.transportError(epoch, fmt.Sprintf("stream interrupted: %v", err))
			return
		}
		s.handleEvent(epoch, ev)
	}
}

func (s *Subscription) markOpen(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch {
		return
	}
	s.state = StateOpen
	s.lastErr = ""
}

func (s *Subscription) handleEvent(epoch uint64, ev WireEvent) {
	if ev.Type == "connected" {
		s.markOpen(epoch)
		return
	}
	if s.events != nil {
		if _, ok := s.events[ev.Type]; !ok {
			return
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
		// A malformed payload drops that single event; the stream stays up.
		s.logger.Warn("dropping malformed event payload",
			logpkg.Str("event", ev.Type), logpkg.Str("error", err.Error()))
		return
	}
	if !s.filter.Eval(ev.Type, payload, ev.Data) {
		return
	}

	now := s.clk.Now()
	if s.opts.Normalize != nil {
		payload = s.opts.Normalize(payload, now)
	}
	entry := Entry{
		ArrivalID: s.ids.Next(),
		Event:     ev.Type,
		Payload:   payload,
		Received:  now,
	}

	s.mu.Lock()
	if s.closed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	duplicate := s.window.ContainsIdentity(s.opts.Identity(entry), s.opts.Identity)
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	keep := s.opts.Dedupe(entry, duplicate)
	for _, h := range handlers {
		if !h(entry, duplicate) {
			keep = false
		}
	}
	if !keep {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch {
		return
	}
	s.window.Push(entry)
}

// transportError records the failure, flips the state to Closed, and arms
// the reconnect timer. Stale epochs (torn-down transports) are no-ops.
func (s *Subscription) transportError(epoch uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch {
		return
	}
	s.state = StateClosed
	s.lastErr = msg
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.logger.Warn("stream disconnected",
		logpkg.Str("url", s.opts.URL),
		logpkg.Str("error", msg),
		logpkg.Dur("retry_in", s.opts.ReconnectDelay))
	s.timer = s.clk.AfterFunc(s.opts.ReconnectDelay, func() { s.reconnect(epoch) })
}

// reconnect reopens the transport after the delay, keeping the same
// epoch: auto-reconnects belong to the lifetime started by Open.
func (s *Subscription) reconnect(epoch uint64) {
	s.mu.Lock()
	if s.closed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateConnecting
	s.mu.Unlock()
	go s.run(ctx, epoch)
}
