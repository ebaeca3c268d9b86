package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"monkey-social/internal/adapters/storage/hub"
	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"

	"github.com/google/uuid"
)

// Store guarda el árbol como hojas (path, value) y lo rearma en cada lectura.
// Las escrituras de un mismo Update van en una sola transacción.
type Store struct {
	db    *sql.DB
	hub   *hub.Hub
	newID func() string

	mu       sync.RWMutex
	notifier store.ChangeNotifier
}

var _ store.Store = (*Store)(nil)

func NewStore(db *sql.DB, log logger.Logger) *Store {
	s := &Store{
		db:    db,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	s.hub = hub.New(s.Get, log)
	s.notifier = s.hub
	return s
}

func (s *Store) Hub() *hub.Hub { return s.hub }

// SetNotifier reemplaza el destino de notificaciones; nil vuelve al hub local.
func (s *Store) SetNotifier(n store.ChangeNotifier) {
	if n == nil {
		n = s.hub
	}
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, error) {
	parts := jsontree.Split(path)
	p := strings.Join(parts, "/")

	var (
		rows *sql.Rows
		err  error
	)
	if p == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT path, value FROM tree_nodes`)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT path, value
			FROM tree_nodes
			WHERE path = $1 OR starts_with(path, $2)
		`, p, p+"/")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := map[string]any{}
	for rows.Next() {
		var (
			leafPath string
			raw      []byte
		)
		if err := rows.Scan(&leafPath, &raw); err != nil {
			return nil, err
		}
		v, err := jsontree.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("postgres: leaf %q: %w", leafPath, err)
		}
		leaves[leafPath] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	root := jsontree.Assemble(parts, leaves)
	if root == nil {
		return nil, nil
	}
	return json.Marshal(jsontree.Render(root))
}

func (s *Store) Set(ctx context.Context, path string, value any) error {
	return s.Update(ctx, map[string]any{path: value})
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
	writes, err := store.PlanUpdate(updates)
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	paths := make([]string, 0, len(writes))
	for _, w := range writes {
		v, err := jsontree.Normalize(w.Value)
		if err != nil {
			return err
		}
		if err := writeNode(ctx, tx, w.Path, v); err != nil {
			return fmt.Errorf("postgres: write %q: %w", w.Path, err)
		}
		paths = append(paths, w.Path)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	n.Changed(paths...)
	return nil
}

func (s *Store) Watch(ctx context.Context, path string, fn func(json.RawMessage)) (store.Cancel, error) {
	return s.hub.Subscribe(ctx, path, fn)
}

// writeNode reemplaza el subárbol en path: borra hojas debajo, hojas ancestras
// (un escalar en el camino deja de existir) e inserta las hojas nuevas.
func writeNode(ctx context.Context, tx *sql.Tx, path string, v any) error {
	parts := jsontree.Split(path)

	if path == "" {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tree_nodes`); err != nil {
			return err
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM tree_nodes
			WHERE path = $1 OR starts_with(path, $2)
		`, path, path+"/"); err != nil {
			return err
		}
		if anc := jsontree.Ancestors(parts); len(anc) > 0 && v != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tree_nodes WHERE path = ANY($1)`, anc); err != nil {
				return err
			}
		}
	}

	for leafPath, leaf := range jsontree.Flatten(parts, v) {
		b, err := json.Marshal(leaf)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tree_nodes (path, value) VALUES ($1, $2::jsonb)
			ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value
		`, leafPath, string(b)); err != nil {
			return err
		}
	}
	return nil
}
