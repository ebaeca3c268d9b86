package world

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLister struct{ n atomic.Int32 }

func (l *countingLister) List(context.Context) ([]monkeys.Monkey, error) {
	l.n.Add(1)
	return nil, nil
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", NewJob(Options{}), logger.Nop(), 0)
	assert.Error(t, err)
}

func TestScheduler_RunsTicksUntilCancelled(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	lister := &countingLister{}
	job := NewJob(Options{Monkeys: lister, Notifications: h.nt, Writer: h.st, Dice: &scriptedDice{}})

	s, err := NewScheduler("@every 1s", job, logger.Nop(), time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return lister.n.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
