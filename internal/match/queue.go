package match

import (
	"sync"

	"github.com/Veraticus/whattodo/internal/service"
)

type triggerKind int

const (
	triggerFilter triggerKind = iota + 1
	triggerPolicy
	triggerSnapshot
)

func (k triggerKind) String() string {
	switch k {
	case triggerFilter:
		return "filter"
	case triggerPolicy:
		return "policy"
	case triggerSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// trigger is one input change the engine must recompute for.
type trigger struct {
	snapshot service.Snapshot
	kind     triggerKind
}

// triggerQueue is an unbounded FIFO. Producers (filter and policy listeners) never
// block, and no change is dropped. The signal channel has room for one pending
// wake-up, so several enqueues before the loop runs coalesce into one signal.
type triggerQueue struct {
	signal chan struct{}
	items  []trigger
	mu     sync.Mutex
	closed bool
}

func newTriggerQueue() *triggerQueue {
	return &triggerQueue{
		items:  make([]trigger, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends t. It returns false once the queue is closed.
func (q *triggerQueue) Enqueue(t trigger) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, t)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the oldest trigger without blocking.
func (q *triggerQueue) TryDequeue() (trigger, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return trigger{}, false
	}
	t := q.items[0]
	q.items[0] = trigger{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = q.items[:0:0]
	}
	return t, true
}

// Wait returns the wake-up channel. It is closed when the queue is closed.
func (q *triggerQueue) Wait() <-chan struct{} {
	return q.signal
}

// Close discards pending triggers and wakes the consumer.
func (q *triggerQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.signal)
}

// Len returns the number of pending triggers.
func (q *triggerQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
