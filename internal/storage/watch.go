package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/whattodo/internal/service"
)

// watchers fans complete activity snapshots out to ObserveAll streams. Each stream is
// a one-slot mailbox: a reader that falls behind only ever sees the newest snapshot.
type watchers struct {
	subs   map[int]chan service.Snapshot
	done   chan struct{}
	mu     sync.Mutex
	next   int
	closed bool
}

func newWatchers() *watchers {
	return &watchers{
		subs: make(map[int]chan service.Snapshot),
		done: make(chan struct{}),
	}
}

func (w *watchers) add() (int, chan service.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan service.Snapshot, 1)
	if w.closed {
		close(ch)
		return 0, ch, false
	}
	id := w.next
	w.next++
	w.subs[id] = ch
	return id, ch, true
}

func (w *watchers) remove(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ch, ok := w.subs[id]; ok {
		delete(w.subs, id)
		close(ch)
	}
}

func (w *watchers) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	close(w.done)
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
	}
}

func offer(ch chan service.Snapshot, snap service.Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// ObserveAll streams the full activity list: once immediately, then after every
// successful insert or delete. The channel is closed when ctx is done or the storage
// is closed. Snapshots are shared between streams and must not be modified.
func (s *SQLiteStorage) ObserveAll(ctx context.Context) <-chan service.Snapshot {
	id, ch, ok := s.watchers.add()
	if !ok {
		return ch
	}

	s.watchers.mu.Lock()
	if _, live := s.watchers.subs[id]; live {
		offer(ch, s.snapshot(ctx))
	}
	s.watchers.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.watchers.done:
		}
		s.watchers.remove(id)
	}()

	slog.Debug("activity watcher added", "watcher", id)
	return ch
}

// notifyWatchers sends a fresh snapshot to every stream. The fetch and the sends
// happen under one lock so a stream never receives an older list after a newer one.
func (s *SQLiteStorage) notifyWatchers(ctx context.Context) {
	s.watchers.mu.Lock()
	defer s.watchers.mu.Unlock()

	if len(s.watchers.subs) == 0 {
		return
	}

	// The write already committed, so ignore the caller's cancellation.
	snap := s.snapshot(context.WithoutCancel(ctx))
	for _, ch := range s.watchers.subs {
		offer(ch, snap)
	}
}

func (s *SQLiteStorage) snapshot(ctx context.Context) service.Snapshot {
	activities, err := s.ListActivities(ctx)
	if err != nil {
		slog.Warn("Failed to load activity snapshot", "error", err)
		return service.Snapshot{Err: err}
	}
	return service.Snapshot{Activities: activities}
}
