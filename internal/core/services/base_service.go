package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
)

// Clock returns the current time. Services take it as a dependency so tests can pin months.
type Clock func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	Clock      Clock
	Dispatcher portssvc.AggregateDispatcher
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now reads the service clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// dispatchAggregate hands one aggregate task to the dispatcher, keyed on the current month.
// Zero amounts are not dispatched.
func (s *BaseService) dispatchAggregate(ctx context.Context, userID string, kind domain.AccountKind, amount domain.Money, op domain.AggregateOperation) {
	if s.Dispatcher == nil || amount == 0 {
		return
	}
	s.Dispatcher.Dispatch(ctx, domain.AggregateTask{
		UserID:    userID,
		Month:     domain.MonthKey(s.Now()),
		Kind:      kind,
		Amount:    amount,
		Operation: op,
	})
}

// balanceEffect is one committed change to an asset balance, replayed into the aggregate.
type balanceEffect struct {
	kind  domain.AccountKind
	delta domain.Money
}

// dispatchEffects sends one update per account kind carrying the net of its effects.
// Credits go out before debits: a month row starts at zero and floors there, so a
// debit applied first would be swallowed.
func (s *BaseService) dispatchEffects(ctx context.Context, userID string, effects []balanceEffect) {
	for _, e := range netEffects(effects) {
		s.dispatchAggregate(ctx, userID, e.kind, e.delta, domain.AggregateUpdate)
	}
}

func netEffects(effects []balanceEffect) []balanceEffect {
	var netted []balanceEffect
	for _, kind := range []domain.AccountKind{domain.KindPositive, domain.KindNegative} {
		var sum domain.Money
		for _, e := range effects {
			if e.kind == kind {
				sum += e.delta
			}
		}
		if sum != 0 {
			netted = append(netted, balanceEffect{kind: kind, delta: sum})
		}
	}
	slices.SortStableFunc(netted, func(a, b balanceEffect) int {
		return cmp.Compare(b.delta, a.delta)
	})
	return netted
}
