package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
)

func (s *Store) FindActiveAccount(_ context.Context, accountID string) (*domain.AssetAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok || !a.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &a, nil
}

func (s *Store) HasActiveChildren(_ context.Context, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.IsActive && a.ParentID != nil && *a.ParentID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.AssetAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AssetAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.AssetAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.ID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.ID)
	}
	s.accounts[account.ID] = account
	return nil
}

func (s *Store) DeactivateAccount(_ context.Context, accountID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok || !a.IsActive {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	a.IsActive = false
	a.UpdatedAt = now
	s.accounts[accountID] = a
	return nil
}

func (s *Store) FindClassify(_ context.Context, classifyID string) (*domain.Classify, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classifies[classifyID]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("%w: classify %s", apperrors.ErrNotFound, classifyID)
	}
	return &c, nil
}

func (s *Store) FindTag(_ context.Context, tagID string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tags[tagID]
	if !ok || !t.IsActive {
		return nil, fmt.Errorf("%w: tag %s", apperrors.ErrNotFound, tagID)
	}
	return &t, nil
}

func (s *Store) FindAssetByID(_ context.Context, userID, assetID string) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[assetID]
	if !ok || !a.IsActive || a.UserID != userID {
		return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	return &a, nil
}

func (s *Store) ListAssets(_ context.Context, userID string, filter portsrepo.AssetFilter) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Asset, 0)
	for _, a := range s.assets {
		if !a.IsActive || a.UserID != userID {
			continue
		}
		if filter.AccountID != "" && a.AccountID != filter.AccountID {
			continue
		}
		if filter.Kind != "" && a.Kind != filter.Kind {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) FindChangeRecord(_ context.Context, userID, recordID string) (*domain.ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordID]
	if !ok || r.UserID != userID {
		return nil, fmt.Errorf("%w: change record %s", apperrors.ErrNotFound, recordID)
	}
	return &r, nil
}

func (s *Store) ListChangeRecords(_ context.Context, userID, assetID string, period domain.Period) ([]domain.ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChangeRecord, 0)
	for _, r := range s.records {
		if r.AssetID != assetID || r.UserID != userID {
			continue
		}
		if r.CreatedAt.Before(period.Start) || !r.CreatedAt.Before(period.End) {
			continue
		}
		out = append(out, r)
	}
	s.sortRecords(out, true)
	return out, nil
}

func (s *Store) ListChangeRecordsByAsset(_ context.Context, assetID string) ([]domain.ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChangeRecord, 0)
	for _, r := range s.records {
		if r.AssetID == assetID {
			out = append(out, r)
		}
	}
	s.sortRecords(out, false)
	return out, nil
}

// sortRecords orders by created_at then insertion order. Callers hold s.mu.
func (s *Store) sortRecords(records []domain.ChangeRecord, newestFirst bool) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if newestFirst {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if newestFirst {
			return s.recordSeq[a.ID] > s.recordSeq[b.ID]
		}
		return s.recordSeq[a.ID] < s.recordSeq[b.ID]
	})
}

func (s *Store) FindBillByID(_ context.Context, userID, billID string) (*domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[billID]
	if !ok || !b.IsActive || b.UserID != userID {
		return nil, fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	b = cloneBill(b)
	return &b, nil
}

func (s *Store) ListBills(_ context.Context, userID string, filter domain.BillFilter) ([]domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keyword := strings.ToLower(filter.Keyword)
	out := make([]domain.Bill, 0)
	for _, b := range s.bills {
		if !b.IsActive || b.UserID != userID {
			continue
		}
		if filter.Type != "" && b.Type != filter.Type {
			continue
		}
		if filter.StartDate > 0 && b.Date < filter.StartDate {
			continue
		}
		if filter.EndDate > 0 && b.Date > filter.EndDate {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(b.Remark), keyword) {
			continue
		}
		if filter.After != nil && !filter.After.Before(b) {
			continue
		}
		out = append(out, cloneBill(b))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].ID > out[j].ID
		}
		return out[i].Date > out[j].Date
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) ExpenseTotalsByClassify(_ context.Context, userID string, period domain.Period) (map[string]domain.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := make(map[string]domain.Money)
	for _, b := range s.bills {
		if !b.IsActive || b.UserID != userID || b.Type != domain.BillExpense {
			continue
		}
		if !period.Contains(b.Date) {
			continue
		}
		totals[b.ClassifyID] += b.Amount
	}
	return totals, nil
}
