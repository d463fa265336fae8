// Package dispatch moves monthly aggregate tasks off the request path.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/platform/metrics"
)

// applyTimeout bounds one aggregate write.
const applyTimeout = 5 * time.Second

// Inline applies tasks synchronously on the caller's goroutine. Failures are
// logged and swallowed. It backs tests and one-shot CLI runs.
type Inline struct {
	Applier portssvc.AggregateApplier
	Logger  *slog.Logger
}

var _ portssvc.AggregateDispatcher = (*Inline)(nil)

func (d *Inline) Dispatch(ctx context.Context, task domain.AggregateTask) {
	applyTask(context.WithoutCancel(ctx), d.Applier, d.logger(), task)
}

func (d *Inline) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func applyTask(ctx context.Context, applier portssvc.AggregateApplier, logger *slog.Logger, task domain.AggregateTask) {
	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	if err := applier.Apply(ctx, task); err != nil {
		metrics.AggregateTasks.WithLabelValues("failed").Inc()
		logger.Error("Failed to apply monthly aggregate task",
			slog.String("error", err.Error()),
			slog.String("user_id", task.UserID),
			slog.String("month", task.Month),
			slog.String("kind", string(task.Kind)),
			slog.String("operation", string(task.Operation)),
			slog.Int64("amount", task.Amount.Int64()))
		return
	}
	metrics.AggregateTasks.WithLabelValues("applied").Inc()
}
