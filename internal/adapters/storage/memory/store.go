package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"monkey-social/internal/adapters/storage/hub"
	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"

	"github.com/google/uuid"
)

// Store es un árbol en memoria con la misma semántica que el Realtime Database.
// Sirve para dev/tests y como backend single-process.
type Store struct {
	mu   sync.RWMutex
	root any

	hub      *hub.Hub
	notifier store.ChangeNotifier
	newID    func() string
}

var _ store.Store = (*Store)(nil)

func NewStore(log logger.Logger) *Store {
	s := &Store{
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	s.hub = hub.New(s.Get, log)
	s.notifier = s.hub
	return s
}

// Hub expone el hub local (para conectar un bridge entre procesos).
func (s *Store) Hub() *hub.Hub { return s.hub }

// SetNotifier reemplaza el destino de notificaciones (p.ej. redisfeed.Bridge).
func (s *Store) SetNotifier(n store.ChangeNotifier) {
	if n == nil {
		n = s.hub
	}
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return jsontree.Snapshot(s.root, jsontree.Split(path))
}

func (s *Store) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, err := jsontree.Normalize(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.root = jsontree.Set(s.root, jsontree.Split(path), v)
	n := s.notifier
	s.mu.Unlock()

	n.Changed(jsontree.Join(path))
	return nil
}

func (s *Store) Push(ctx context.Context, path string, value any) (string, error) {
	id := s.newID()
	if err := s.Set(ctx, strings.TrimRight(path, "/")+"/"+id, value); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	return s.Set(ctx, path, nil)
}

func (s *Store) Update(ctx context.Context, updates map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	writes, err := store.PlanUpdate(updates)
	if err != nil {
		return err
	}

	// Normalizar todo antes de tocar el árbol: el batch se aplica completo o nada.
	values := make([]any, len(writes))
	for i, w := range writes {
		v, err := jsontree.Normalize(w.Value)
		if err != nil {
			return err
		}
		values[i] = v
	}

	paths := make([]string, len(writes))
	s.mu.Lock()
	for i, w := range writes {
		s.root = jsontree.Set(s.root, jsontree.Split(w.Path), values[i])
		paths[i] = w.Path
	}
	n := s.notifier
	s.mu.Unlock()

	if len(paths) > 0 {
		n.Changed(paths...)
	}
	return nil
}

func (s *Store) Watch(ctx context.Context, path string, fn func(json.RawMessage)) (store.Cancel, error) {
	return s.hub.Subscribe(ctx, path, fn)
}
