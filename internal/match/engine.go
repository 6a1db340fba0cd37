package match

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/service"
	"github.com/google/uuid"
)

// ErrEngineStarted is returned when Run is called more than once.
var ErrEngineStarted = errors.New("match engine already started")

// Engine joins the store's live snapshots with a FilterState and a Policy and
// republishes a complete Ranking whenever any of them changes.
//
// Thread-safety model:
//   - Run: exactly one goroutine; all scoring happens there.
//   - FilterState/Policy mutations: any goroutine; they only enqueue a trigger.
//   - Subscribe, Current: any goroutine.
type Engine struct {
	source  service.ActivityObserver
	filter  *FilterState
	policy  *Policy
	queue   *triggerQueue
	subs    map[int]*subscriber
	log     *slog.Logger
	session string
	current Ranking

	// records and loaded are owned by the Run goroutine.
	records []model.Activity

	clock   generationClock
	nextSub int
	mu      sync.RWMutex
	started atomic.Bool
	stopped bool
	loaded  bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSessionID sets the id used to correlate the engine's log lines.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		e.session = id
	}
}

// NewEngine creates an engine. Nil filter or policy get fresh defaults.
func NewEngine(source service.ActivityObserver, filter *FilterState, policy *Policy, opts ...EngineOption) *Engine {
	if filter == nil {
		filter = NewFilterState()
	}
	if policy == nil {
		policy, _ = NewPolicy(nil)
	}

	e := &Engine{
		source: source,
		filter: filter,
		policy: policy,
		queue:  newTriggerQueue(),
		subs:   make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.session == "" {
		e.session = uuid.Must(uuid.NewV7()).String()
	}
	e.log = slog.Default().With("session", e.session)
	return e
}

// Filter returns the filter state the engine listens to.
func (e *Engine) Filter() *FilterState {
	return e.filter
}

// Policy returns the comparison policy the engine listens to.
func (e *Engine) Policy() *Policy {
	return e.policy
}

// SessionID returns the engine's log correlation id.
func (e *Engine) SessionID() string {
	return e.session
}

// Run consumes snapshots and filter/policy changes until ctx is done, recomputing the
// ranking for each one. Changes made before the first snapshot arrives are folded into
// the first ranking. On return every subscription is closed and nothing more is published.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrEngineStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopFilter := e.filter.OnChange(func() {
		e.queue.Enqueue(trigger{kind: triggerFilter})
	})
	stopPolicy := e.policy.OnChange(func() {
		e.queue.Enqueue(trigger{kind: triggerPolicy})
	})
	defer e.shutdown(stopFilter, stopPolicy)

	snapshots := e.source.ObserveAll(runCtx)
	e.log.Info("match engine starting")

	for {
		if t, ok := e.queue.TryDequeue(); ok {
			e.handle(t)
			continue
		}

		select {
		case <-runCtx.Done():
			e.log.Info("match engine stopping", "reason", runCtx.Err())
			return ctx.Err()

		case snap, ok := <-snapshots:
			if !ok {
				// The store went away; keep serving the last records.
				e.log.Debug("activity source closed")
				snapshots = nil
				continue
			}
			e.handle(trigger{kind: triggerSnapshot, snapshot: snap})

		case <-e.queue.Wait():
		}
	}
}

func (e *Engine) handle(t trigger) {
	if t.kind == triggerSnapshot {
		if t.snapshot.Err != nil {
			e.log.Warn("activity snapshot failed, ranking zero activities", "error", t.snapshot.Err)
			e.records = nil
		} else {
			e.records = t.snapshot.Activities
		}
		e.loaded = true
	}
	if !e.loaded {
		return
	}
	e.recompute(t.kind)
}

func (e *Engine) recompute(reason triggerKind) {
	gen := e.clock.Next()
	sel := e.filter.Snapshot()
	modes := e.policy.Snapshot()

	r := Ranking{
		Generation: gen,
		Selection:  sel,
		Modes:      modes,
		Results:    Rank(e.records, sel, modes),
	}

	if !e.publish(r) {
		e.log.Debug("discarded stale ranking", "generation", gen)
		return
	}
	e.log.Debug("ranking published",
		"generation", gen,
		"reason", reason.String(),
		"activities", r.Len(),
		"full_matches", len(r.FullMatches()))
}

// publish replaces the current ranking unless r is not newer than it.
func (e *Engine) publish(r Ranking) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || r.Generation <= e.current.Generation {
		return false
	}
	e.current = r
	for _, s := range e.subs {
		s.offer(r)
	}
	return true
}

// Current returns the most recently published ranking. Its Generation is zero until
// the first ranking is published.
func (e *Engine) Current() Ranking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Subscribe returns a channel that always holds the newest ranking not yet received.
// Intermediate rankings a slow reader missed are dropped. The channel is closed by
// cancel or when Run returns.
func (e *Engine) Subscribe() (<-chan Ranking, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &subscriber{ch: make(chan Ranking, 1)}
	if e.stopped {
		s.close()
		return s.ch, func() {}
	}

	id := e.nextSub
	e.nextSub++
	e.subs[id] = s
	if e.current.Generation > 0 {
		s.offer(e.current)
	}

	return s.ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			sub.close()
		}
	}
}

func (e *Engine) shutdown(stops ...func()) {
	for _, stop := range stops {
		stop()
	}
	e.queue.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	for id, s := range e.subs {
		delete(e.subs, id)
		s.close()
	}
}

// subscriber is a one-slot mailbox. Only publish sends, under the engine lock.
type subscriber struct {
	ch     chan Ranking
	closed bool
}

func (s *subscriber) offer(r Ranking) {
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- r:
	default:
	}
}

func (s *subscriber) close() {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
