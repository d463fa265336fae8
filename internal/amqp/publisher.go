package amqp

import (
	"context"
	"log/slog"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/platform/metrics"
)

// TaskPublisher is the broker side of Client used by Publisher.
type TaskPublisher interface {
	PublishTask(ctx context.Context, task domain.AggregateTask) error
}

// Publisher dispatches aggregate tasks to the broker. Publish failures are
// logged and swallowed like any other aggregate failure.
type Publisher struct {
	client TaskPublisher
	logger *slog.Logger
}

var _ portssvc.AggregateDispatcher = (*Publisher)(nil)

func NewPublisher(client TaskPublisher, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}
}

func (p *Publisher) Dispatch(ctx context.Context, task domain.AggregateTask) {
	if err := p.client.PublishTask(context.WithoutCancel(ctx), task); err != nil {
		metrics.AggregateTasks.WithLabelValues("failed").Inc()
		p.logger.Error("Failed to publish monthly aggregate task",
			slog.String("error", err.Error()),
			slog.String("user_id", task.UserID),
			slog.String("month", task.Month))
		return
	}
	metrics.AggregateTasks.WithLabelValues("published").Inc()
}
