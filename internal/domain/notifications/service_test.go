package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"monkey-social/internal/adapters/storage/memory"
	"monkey-social/internal/domain/monkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestService() (*Service, *clock) {
	c := &clock{t: time.UnixMilli(1_700_000_000_000)}
	svc := NewService(NewStoreRepo(memory.NewStore(nil)))
	svc.now = c.now
	return svc, c
}

func sample(summary string) Notification {
	return Notification{
		Type:       TypeAutoSocial,
		FromMonkey: monkeys.Ref{ID: "m2", Name: "Coco", OwnerName: "Ana"},
		Summary:    summary,
		Timestamp:  42, // se reemplaza
	}
}

func TestService_SendInjectsTimestampAndID(t *testing.T) {
	svc, c := newTestService()

	n, err := svc.Send(context.Background(), "o1", sample("hola"))
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, c.now().UnixMilli(), n.Timestamp)
}

func TestService_ListNewestFirst(t *testing.T) {
	svc, c := newTestService()
	ctx := context.Background()

	first, err := svc.Send(ctx, "o1", sample("first"))
	require.NoError(t, err)
	c.advance(time.Second)
	second, err := svc.Send(ctx, "o1", sample("second"))
	require.NoError(t, err)

	items, err := svc.List(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "Coco", items[0].FromMonkey.Name)
}

func TestService_DeleteRemovesOnlyThatOne(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Send(ctx, "o1", sample("a"))
	require.NoError(t, err)
	_, err = svc.Send(ctx, "o1", sample("b"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "o1", a.ID))

	items, err := svc.List(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Summary)
}

func TestService_SubscribeDeliversSortedSnapshots(t *testing.T) {
	svc, c := newTestService()
	ctx := context.Background()

	var (
		mu   sync.Mutex
		last []Notification
		n    int
	)
	cancel, err := svc.Subscribe(ctx, "o1", func(items []Notification) {
		mu.Lock()
		last = items
		n++
		mu.Unlock()
	})
	require.NoError(t, err)

	_, err = svc.Send(ctx, "o1", sample("old"))
	require.NoError(t, err)
	c.advance(time.Minute)
	_, err = svc.Send(ctx, "o1", sample("new"))
	require.NoError(t, err)
	// otra bandeja no dispara
	_, err = svc.Send(ctx, "o2", sample("other"))
	require.NoError(t, err)

	cancel()
	_, err = svc.Send(ctx, "o1", sample("after cancel"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, n)
	require.Len(t, last, 2)
	assert.Equal(t, "new", last[0].Summary)
}

func TestService_ListAllGroupsByOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Send(ctx, "o1", sample("a"))
	require.NoError(t, err)
	_, err = svc.Send(ctx, "o2", sample("b"))
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all["o2"], 1)
}

func TestExpired_SevenDayBoundary(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	week := Retention.Milliseconds()

	assert.False(t, Expired(Notification{Timestamp: now.UnixMilli() - week + 1}, now))
	assert.False(t, Expired(Notification{Timestamp: now.UnixMilli() - week}, now))
	assert.True(t, Expired(Notification{Timestamp: now.UnixMilli() - week - 1}, now))
}

func TestService_SendRejectsEmptySummary(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Send(context.Background(), "o1", Notification{Type: TypeAutoSocial})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SendAtUsesCallerTimestamp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	n, err := svc.SendAt(ctx, "o1", sample("encuentro"), 1_750_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_750_000_000_000), n.Timestamp)

	items, err := svc.List(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1_750_000_000_000), items[0].Timestamp)

	_, err = svc.SendAt(ctx, "o1", sample("sin reloj"), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
