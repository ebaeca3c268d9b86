package monkeys

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/platform/logger"
	"monkey-social/internal/ports/store"
)

// Collection es el nodo raíz de todos los monos.
const Collection = "monkeys"

func Path(id string) string {
	return jsontree.Join(Collection, id)
}

// FieldPath apunta a un campo de un mono (monkeys/{id}/{field}).
func FieldPath(id, field string) string {
	return jsontree.Join(Collection, id, field)
}

var errRecordNotFound = errors.New("monkeys: record not found")

type Repository interface {
	Save(ctx context.Context, m Monkey) error
	GetByID(ctx context.Context, id string) (Monkey, error)
	List(ctx context.Context) ([]Monkey, error)
	Watch(ctx context.Context, fn func([]Monkey)) (store.Cancel, error)
}

// StoreRepo guarda los monos en el árbol compartido.
type StoreRepo struct {
	st  store.Store
	log logger.Logger
}

func NewStoreRepo(st store.Store, log logger.Logger) *StoreRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &StoreRepo{st: st, log: log}
}

var _ Repository = (*StoreRepo)(nil)

func (r *StoreRepo) Save(ctx context.Context, m Monkey) error {
	return r.st.Set(ctx, Path(m.ID), m)
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (Monkey, error) {
	raw, err := r.st.Get(ctx, Path(id))
	if err != nil {
		return Monkey{}, err
	}
	if raw == nil {
		return Monkey{}, errRecordNotFound
	}
	var m Monkey
	if err := json.Unmarshal(raw, &m); err != nil {
		return Monkey{}, fmt.Errorf("monkeys: decode %s: %w", id, err)
	}
	return m, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]Monkey, error) {
	raw, err := r.st.Get(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return r.decode(raw, "list"), nil
}

func (r *StoreRepo) Watch(ctx context.Context, fn func([]Monkey)) (store.Cancel, error) {
	return r.st.Watch(ctx, Collection, func(raw json.RawMessage) {
		fn(r.decode(raw, "watch"))
	})
}

// decode degrada ante registros corruptos: los salta y deja constancia en el log.
func (r *StoreRepo) decode(raw json.RawMessage, op string) []Monkey {
	items, skipped := DecodeCollection(raw)
	if skipped > 0 {
		r.log.Warn("corrupt monkey records skipped", map[string]any{"op": op, "skipped": skipped, "kept": len(items)})
	}
	return items
}

// DecodeCollection decodifica el nodo monkeys/ registro por registro, ordenado por clave.
// Los registros corruptos se saltan y se cuentan en skipped; un nodo vacío da lista vacía.
func DecodeCollection(raw json.RawMessage) (items []Monkey, skipped int) {
	items = []Monkey{}
	if len(raw) == 0 {
		return items, 0
	}
	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byKey); err != nil {
		// Un array (claves 0..n-1) también es una colección válida.
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return items, 1
		}
		byKey = make(map[string]json.RawMessage, len(arr))
		for i, v := range arr {
			byKey[fmt.Sprint(i)] = v
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if string(byKey[k]) == "null" {
			continue
		}
		var m Monkey
		if err := json.Unmarshal(byKey[k], &m); err != nil {
			skipped++
			continue
		}
		items = append(items, m)
	}
	return items, skipped
}
