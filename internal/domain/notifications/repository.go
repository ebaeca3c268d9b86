package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/ports/store"
)

const Collection = "notifications"

func OwnerPath(ownerID string) string {
	return jsontree.Join(Collection, ownerID)
}

func Path(ownerID, id string) string {
	return jsontree.Join(Collection, ownerID, id)
}

type Repository interface {
	Append(ctx context.Context, ownerID string, n Notification) (string, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Notification, error)
	ListAll(ctx context.Context) (map[string][]Notification, error)
	WatchOwner(ctx context.Context, ownerID string, fn func([]Notification)) (store.Cancel, error)
}

type StoreRepo struct {
	st store.Store
}

func NewStoreRepo(st store.Store) *StoreRepo {
	return &StoreRepo{st: st}
}

var _ Repository = (*StoreRepo)(nil)

func (r *StoreRepo) Append(ctx context.Context, ownerID string, n Notification) (string, error) {
	n.ID = ""
	return r.st.Push(ctx, OwnerPath(ownerID), n)
}

func (r *StoreRepo) Delete(ctx context.Context, ownerID, id string) error {
	return r.st.Remove(ctx, Path(ownerID, id))
}

func (r *StoreRepo) ListByOwner(ctx context.Context, ownerID string) ([]Notification, error) {
	raw, err := r.st.Get(ctx, OwnerPath(ownerID))
	if err != nil {
		return nil, err
	}
	return decodeOwner(raw)
}

func (r *StoreRepo) ListAll(ctx context.Context) (map[string][]Notification, error) {
	raw, err := r.st.Get(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return DecodeAll(raw)
}

func (r *StoreRepo) WatchOwner(ctx context.Context, ownerID string, fn func([]Notification)) (store.Cancel, error) {
	return r.st.Watch(ctx, OwnerPath(ownerID), func(raw json.RawMessage) {
		items, err := decodeOwner(raw)
		if err != nil {
			return
		}
		fn(items)
	})
}

// DecodeAll decodifica el nodo notifications/ completo, agrupado por dueño.
// Cada lista sale ordenada de más nueva a más vieja.
func DecodeAll(raw json.RawMessage) (map[string][]Notification, error) {
	out := map[string][]Notification{}
	if len(raw) == 0 {
		return out, nil
	}
	var byOwner map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byOwner); err != nil {
		return nil, fmt.Errorf("notifications: decode: %w", err)
	}
	for owner, v := range byOwner {
		items, err := decodeOwner(v)
		if err != nil {
			continue
		}
		out[owner] = items
	}
	return out, nil
}

func decodeOwner(raw json.RawMessage) ([]Notification, error) {
	out := []Notification{}
	if len(raw) == 0 {
		return out, nil
	}
	var byID map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("notifications: decode owner: %w", err)
	}
	for id, v := range byID {
		var n Notification
		if err := json.Unmarshal(v, &n); err != nil {
			continue
		}
		n.ID = id
		out = append(out, n)
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst ordena por timestamp descendente; empates por id para que sea estable.
func SortNewestFirst(items []Notification) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp > items[j].Timestamp
		}
		return items[i].ID > items[j].ID
	})
}
