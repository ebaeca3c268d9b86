// Package hub reparte snapshots a los watchers locales de un store.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"
)

const snapshotTimeout = 5 * time.Second

// SnapshotFunc lee el estado actual de un path (normalmente Store.Get).
type SnapshotFunc func(ctx context.Context, path string) (json.RawMessage, error)

type Hub struct {
	mu       sync.Mutex
	next     uint64
	subs     map[uint64]*subscription
	snapshot SnapshotFunc
	log      logger.Logger
}

type subscription struct {
	path string
	fn   func(json.RawMessage)

	// Las entregas a un watcher son en orden y nunca concurrentes. fn corre sin mu tomado:
	// si escribe el path que observa, la entrega nueva se encola y sale al terminar fn.
	mu       sync.Mutex
	queue    []json.RawMessage
	draining bool
	closed   atomic.Bool
}

var _ store.ChangeNotifier = (*Hub)(nil)

func New(snapshot SnapshotFunc, log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs:     make(map[uint64]*subscription),
		snapshot: snapshot,
		log:      log,
	}
}

// Subscribe registra fn sobre path y entrega el snapshot actual antes de volver.
// La suscripción se cancela con el Cancel devuelto o cuando ctx termina.
func (h *Hub) Subscribe(ctx context.Context, path string, fn func(json.RawMessage)) (store.Cancel, error) {
	sub := &subscription{path: jsontree.Join(path), fn: fn}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()

			sub.closed.Store(true)
		})
	}
	stop := context.AfterFunc(ctx, cancel)

	raw, err := h.snapshot(ctx, sub.path)
	if err != nil {
		stop()
		cancel()
		return nil, err
	}
	sub.deliver(raw)

	return func() {
		stop()
		cancel()
	}, nil
}

// Changed notifica a cada watcher cuyo path se solapa con alguno de paths (una vez por watcher).
func (h *Hub) Changed(paths ...string) {
	h.mu.Lock()
	targets := make([]*subscription, 0)
	for _, sub := range h.subs {
		for _, p := range paths {
			if jsontree.Overlaps(sub.path, p) {
				targets = append(targets, sub)
				break
			}
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		raw, err := h.snapshot(ctx, sub.path)
		cancel()
		if err != nil {
			h.log.Warn("watch snapshot failed", map[string]any{"path": sub.path, "err": err})
			continue
		}
		sub.deliver(raw)
	}
}

// Len devuelve la cantidad de watchers activos.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (s *subscription) deliver(raw json.RawMessage) {
	var cp json.RawMessage
	if raw != nil {
		cp = make(json.RawMessage, len(raw))
		copy(cp, raw)
	}

	s.mu.Lock()
	s.queue = append(s.queue, cp)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if !s.closed.Load() {
			s.fn(next)
		}

		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}
