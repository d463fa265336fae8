package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/google/uuid"
)

func aggKey(userID, month string) string { return userID + "|" + month }

// ApplyAggregateDelta holds the write lock across find-or-create and increment.
func (s *Store) ApplyAggregateDelta(_ context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := s.findOrCreateLocked(userID, month, now)
	agg.PositiveTotal = domain.ClampAdd(agg.PositiveTotal, positive)
	agg.NegativeTotal = domain.ClampAdd(agg.NegativeTotal, negative)
	agg.UpdatedAt = now
	s.aggregates[agg.ID] = agg
	return &agg, nil
}

func (s *Store) SetAggregate(_ context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := s.findOrCreateLocked(userID, month, now)
	agg.PositiveTotal = domain.ClampAdd(0, positive)
	agg.NegativeTotal = domain.ClampAdd(0, negative)
	agg.UpdatedAt = now
	s.aggregates[agg.ID] = agg
	return &agg, nil
}

func (s *Store) findOrCreateLocked(userID, month string, now time.Time) domain.MonthlyAggregate {
	if id, ok := s.aggIndex[aggKey(userID, month)]; ok {
		return s.aggregates[id]
	}
	agg := domain.MonthlyAggregate{
		ID:          uuid.NewString(),
		UserID:      userID,
		Month:       month,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	s.aggIndex[aggKey(userID, month)] = agg.ID
	return agg
}

func (s *Store) SaveAggregate(_ context.Context, aggregate domain.MonthlyAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := aggKey(aggregate.UserID, aggregate.Month)
	if _, exists := s.aggIndex[key]; exists {
		return fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrDuplicate, aggregate.Month)
	}
	s.aggIndex[key] = aggregate.ID
	s.aggregates[aggregate.ID] = aggregate
	return nil
}

func (s *Store) UpdateAggregate(_ context.Context, aggregate domain.MonthlyAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.aggregates[aggregate.ID]
	if !ok || cur.UserID != aggregate.UserID {
		return fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, aggregate.ID)
	}
	cur.PositiveTotal = aggregate.PositiveTotal
	cur.NegativeTotal = aggregate.NegativeTotal
	cur.UpdatedAt = aggregate.UpdatedAt
	s.aggregates[cur.ID] = cur
	return nil
}

func (s *Store) DeleteAggregate(_ context.Context, userID, aggregateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.aggregates[aggregateID]
	if !ok || cur.UserID != userID {
		return fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, aggregateID)
	}
	delete(s.aggregates, aggregateID)
	delete(s.aggIndex, aggKey(cur.UserID, cur.Month))
	return nil
}

func (s *Store) FindAggregate(_ context.Context, userID, month string) (*domain.MonthlyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.aggIndex[aggKey(userID, month)]
	if !ok {
		return nil, fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, month)
	}
	agg := s.aggregates[id]
	return &agg, nil
}

func (s *Store) FindAggregateByID(_ context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.aggregates[aggregateID]
	if !ok || agg.UserID != userID {
		return nil, fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, aggregateID)
	}
	return &agg, nil
}

func (s *Store) ListAggregates(_ context.Context, userID string) ([]domain.MonthlyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MonthlyAggregate, 0)
	for _, agg := range s.aggregates {
		if agg.UserID == userID {
			out = append(out, agg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

func (s *Store) ListAggregatesByYear(_ context.Context, userID, year string) ([]domain.MonthlyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MonthlyAggregate, 0)
	for _, agg := range s.aggregates {
		if agg.UserID == userID && strings.HasPrefix(agg.Month, year+"-") {
			out = append(out, agg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
