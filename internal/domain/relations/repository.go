package relations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"monkey-social/internal/platform/jsontree"
	"monkey-social/internal/ports/store"
)

const Collection = "relations"

func Path(ownerID, friendID string) string {
	return jsontree.Join(Collection, ownerID, friendID)
}

type Repository interface {
	Save(ctx context.Context, ownerID string, r Relation) error
	Get(ctx context.Context, ownerID, friendID string) (Relation, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Relation, error)
}

type StoreRepo struct {
	st store.Store
}

func NewStoreRepo(st store.Store) *StoreRepo {
	return &StoreRepo{st: st}
}

var _ Repository = (*StoreRepo)(nil)

func (r *StoreRepo) Save(ctx context.Context, ownerID string, rel Relation) error {
	return r.st.Set(ctx, Path(ownerID, rel.FriendID), rel)
}

func (r *StoreRepo) Get(ctx context.Context, ownerID, friendID string) (Relation, bool, error) {
	raw, err := r.st.Get(ctx, Path(ownerID, friendID))
	if err != nil || raw == nil {
		return Relation{}, false, err
	}
	var rel Relation
	if err := json.Unmarshal(raw, &rel); err != nil {
		return Relation{}, false, fmt.Errorf("relations: decode %s/%s: %w", ownerID, friendID, err)
	}
	rel.FriendID = friendID
	return rel, true, nil
}

func (r *StoreRepo) ListByOwner(ctx context.Context, ownerID string) ([]Relation, error) {
	out := []Relation{}
	raw, err := r.st.Get(ctx, jsontree.Join(Collection, ownerID))
	if err != nil || raw == nil {
		return out, err
	}
	var byFriend map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byFriend); err != nil {
		return out, fmt.Errorf("relations: decode %s: %w", ownerID, err)
	}
	for friendID, v := range byFriend {
		var rel Relation
		if err := json.Unmarshal(v, &rel); err != nil {
			continue
		}
		// la clave manda sobre el campo
		rel.FriendID = friendID
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FriendID < out[j].FriendID })
	return out, nil
}
