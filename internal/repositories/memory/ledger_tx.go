package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
)

// RunInTx serializes ledger transactions. Writes are applied immediately and
// reverted from the undo log when fn fails or panics.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &ledgerTx{s: s}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
		}
	}()
	return fn(ctx, tx)
}

type ledgerTx struct {
	s    *Store
	undo []func()
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) rollback() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// restoreAsset records how to put the asset map entry back. Callers hold s.mu.
func (t *ledgerTx) restoreAsset(id string) {
	prev, existed := t.s.assets[id]
	t.undo = append(t.undo, func() {
		if existed {
			t.s.assets[id] = prev
		} else {
			delete(t.s.assets, id)
		}
	})
}

func (t *ledgerTx) restoreBill(id string) {
	prev, existed := t.s.bills[id]
	t.undo = append(t.undo, func() {
		if existed {
			t.s.bills[id] = prev
		} else {
			delete(t.s.bills, id)
		}
	})
}

func (t *ledgerTx) FindAssetForUpdate(_ context.Context, userID, assetID string) (*domain.Asset, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	a, ok := t.s.assets[assetID]
	if !ok || !a.IsActive || a.UserID != userID {
		return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	return &a, nil
}

func (t *ledgerTx) FindAssetsForUpdate(_ context.Context, userID string, assetIDs []string) (map[string]domain.Asset, error) {
	ids := append([]string(nil), assetIDs...)
	sort.Strings(ids)
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := make(map[string]domain.Asset, len(ids))
	for _, id := range ids {
		if a, ok := t.s.assets[id]; ok && a.IsActive && a.UserID == userID {
			out[id] = a
		}
	}
	return out, nil
}

func (t *ledgerTx) InsertAsset(_ context.Context, asset domain.Asset) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, exists := t.s.assets[asset.ID]; exists {
		return fmt.Errorf("%w: asset %s", apperrors.ErrDuplicate, asset.ID)
	}
	t.restoreAsset(asset.ID)
	t.s.assets[asset.ID] = asset
	return nil
}

func (t *ledgerTx) UpdateAsset(_ context.Context, asset domain.Asset) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	cur, ok := t.s.assets[asset.ID]
	if !ok || !cur.IsActive {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, asset.ID)
	}
	t.restoreAsset(asset.ID)
	cur.Name = asset.Name
	cur.Remark = asset.Remark
	cur.Amount = asset.Amount
	cur.UpdatedAt = asset.UpdatedAt
	t.s.assets[asset.ID] = cur
	return nil
}

func (t *ledgerTx) DeactivateAsset(_ context.Context, assetID string, now time.Time) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	cur, ok := t.s.assets[assetID]
	if !ok || !cur.IsActive {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	t.restoreAsset(assetID)
	cur.IsActive = false
	cur.UpdatedAt = now
	t.s.assets[assetID] = cur
	return nil
}

func (t *ledgerTx) AppendChangeRecord(_ context.Context, record domain.ChangeRecord) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, exists := t.s.records[record.ID]; exists {
		return fmt.Errorf("%w: change record %s", apperrors.ErrDuplicate, record.ID)
	}
	t.s.seq++
	t.s.records[record.ID] = record
	t.s.recordSeq[record.ID] = t.s.seq
	id := record.ID
	t.undo = append(t.undo, func() {
		delete(t.s.records, id)
		delete(t.s.recordSeq, id)
	})
	return nil
}

func (t *ledgerTx) DeleteChangeRecordsByAsset(_ context.Context, assetID string) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var n int64
	for id, r := range t.s.records {
		if r.AssetID != assetID {
			continue
		}
		rec, seq := r, t.s.recordSeq[id]
		delete(t.s.records, id)
		delete(t.s.recordSeq, id)
		t.undo = append(t.undo, func() {
			t.s.records[rec.ID] = rec
			t.s.recordSeq[rec.ID] = seq
		})
		n++
	}
	return n, nil
}

func (t *ledgerTx) InsertBill(_ context.Context, bill domain.Bill) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, exists := t.s.bills[bill.ID]; exists {
		return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, bill.ID)
	}
	t.restoreBill(bill.ID)
	t.s.bills[bill.ID] = cloneBill(bill)
	return nil
}

func (t *ledgerTx) FindBillForUpdate(_ context.Context, userID, billID string) (*domain.Bill, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	b, ok := t.s.bills[billID]
	if !ok || !b.IsActive || b.UserID != userID {
		return nil, fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	b = cloneBill(b)
	return &b, nil
}

func (t *ledgerTx) UpdateBill(_ context.Context, bill domain.Bill) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	cur, ok := t.s.bills[bill.ID]
	if !ok || !cur.IsActive {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, bill.ID)
	}
	t.restoreBill(bill.ID)
	bill.CreatedAt = cur.CreatedAt
	bill.IsActive = true
	t.s.bills[bill.ID] = cloneBill(bill)
	return nil
}

func (t *ledgerTx) DeactivateBill(_ context.Context, billID string, now time.Time) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	cur, ok := t.s.bills[billID]
	if !ok || !cur.IsActive {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	t.restoreBill(billID)
	cur.IsActive = false
	cur.UpdatedAt = now
	t.s.bills[billID] = cur
	return nil
}
