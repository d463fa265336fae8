package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingApplier struct {
	mu    sync.Mutex
	tasks []domain.AggregateTask
	err   error
	block chan struct{}
}

func (r *recordingApplier) Apply(_ context.Context, task domain.AggregateTask) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return r.err
}

func (r *recordingApplier) applied() []domain.AggregateTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AggregateTask(nil), r.tasks...)
}

func task(month string, amount domain.Money) domain.AggregateTask {
	return domain.AggregateTask{UserID: "u1", Month: month, Kind: domain.KindPositive, Amount: amount, Operation: domain.AggregateUpdate}
}

func TestInlineSwallowsErrors(t *testing.T) {
	applier := &recordingApplier{err: assert.AnError}
	d := &Inline{Applier: applier}

	assert.NotPanics(t, func() { d.Dispatch(context.Background(), task("2024-05", 1)) })
	assert.Len(t, applier.applied(), 1)
}

func TestInlineIgnoresCallerCancellation(t *testing.T) {
	applier := &recordingApplier{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	(&Inline{Applier: applier}).Dispatch(ctx, task("2024-05", 1))
	assert.Len(t, applier.applied(), 1)
}

func TestQueueDrainsInOrderPerKey(t *testing.T) {
	applier := &recordingApplier{}
	q := NewQueue(applier, WithWorkers(3), WithCapacity(64))
	require.NoError(t, q.Start(context.Background()))

	for i := 1; i <= 20; i++ {
		q.Dispatch(context.Background(), task("2024-05", domain.Money(i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))

	got := applier.applied()
	require.Len(t, got, 20)
	for i, tk := range got {
		assert.Equal(t, domain.Money(i+1), tk.Amount)
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	applier := &recordingApplier{block: make(chan struct{})}
	q := NewQueue(applier, WithWorkers(1), WithCapacity(1))
	require.NoError(t, q.Start(context.Background()))

	// One task is held by the blocked worker, one fits the lane, the rest drop.
	for i := 0; i < 5; i++ {
		q.Dispatch(context.Background(), task("2024-05", 1))
	}
	close(applier.block)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))

	got := len(applier.applied())
	assert.GreaterOrEqual(t, got, 1)
	assert.LessOrEqual(t, got, 2)
}

func TestQueueClosedDropsAndRejectsStart(t *testing.T) {
	applier := &recordingApplier{}
	q := NewQueue(applier)
	require.NoError(t, q.Start(context.Background()))
	require.NoError(t, q.Close(context.Background()))

	q.Dispatch(context.Background(), task("2024-05", 1))
	assert.Empty(t, applier.applied())
	assert.ErrorIs(t, q.Start(context.Background()), ErrQueueClosed)
	assert.NoError(t, q.Close(context.Background()))
}
