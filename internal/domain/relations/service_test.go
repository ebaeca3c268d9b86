package relations

import (
	"context"
	"testing"
	"time"

	"monkey-social/internal/adapters/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	svc := NewService(NewStoreRepo(memory.NewStore(nil)))
	svc.now = func() time.Time { return time.UnixMilli(1000) }
	return svc
}

func TestApplyChange_ClampsToRange(t *testing.T) {
	assert.Equal(t, 5, ApplyChange(4, 2))
	assert.Equal(t, 0, ApplyChange(1, -3))
	assert.Equal(t, 3, ApplyChange(2, 1))
}

func TestService_ListEmptyWhenNone(t *testing.T) {
	items, err := newTestService().List(context.Background(), "o1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestService_SaveAndListAreDirected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, "o1", "f1", Relation{Level: 9, SharedMemory: " banana "})
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Level)
	assert.Equal(t, "banana", saved.SharedMemory)
	assert.Equal(t, int64(1000), saved.UpdatedAt)

	items, err := svc.List(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "f1", items[0].FriendID)

	// el otro lado no se crea solo
	back, err := svc.List(ctx, "f1")
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestService_SaveRejectsSelfRelation(t *testing.T) {
	_, err := newTestService().Save(context.Background(), "o1", "o1", Relation{Level: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ApplyAccumulates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Apply(ctx, "o1", "f1", "Coco", 2, "")
	require.NoError(t, err)
	r, err := svc.Apply(ctx, "o1", "f1", "", 1, "一起看了云")
	require.NoError(t, err)

	assert.Equal(t, 3, r.Level)
	assert.Equal(t, "Coco", r.FriendName)
	assert.Equal(t, "一起看了云", r.SharedMemory)
}
