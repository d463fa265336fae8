package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.May, 14, 10, 0, 0, 0, time.UTC)

func seedAsset(t *testing.T, s *Store, id string, amount domain.Money) {
	t.Helper()
	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertAsset(ctx, domain.Asset{ID: id, UserID: "u1", Amount: amount, Kind: domain.KindPositive, IsActive: true}); err != nil {
			return err
		}
		return tx.AppendChangeRecord(ctx, domain.ChangeRecord{ID: id + "-init", AssetID: id, UserID: "u1", Delta: amount, CreatedAt: now})
	})
	require.NoError(t, err)
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedAsset(t, s, "a1", 1000)

	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		asset, err := tx.FindAssetForUpdate(ctx, "u1", "a1")
		require.NoError(t, err)
		asset.Amount = 0
		require.NoError(t, tx.UpdateAsset(ctx, *asset))
		require.NoError(t, tx.AppendChangeRecord(ctx, domain.ChangeRecord{ID: "r2", AssetID: "a1", UserID: "u1", Delta: -1000, CreatedAt: now}))
		require.NoError(t, tx.InsertBill(ctx, domain.Bill{ID: "b1", UserID: "u1", IsActive: true}))
		_, err = tx.DeleteChangeRecordsByAsset(ctx, "a1")
		require.NoError(t, err)
		return apperrors.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	asset, err := s.FindAssetByID(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1000), asset.Amount)

	records, err := s.ListChangeRecordsByAsset(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a1-init", records[0].ID)

	_, err = s.FindBillByID(ctx, "u1", "b1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRunInTxRollsBackOnPanic(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedAsset(t, s, "a1", 1000)

	assert.Panics(t, func() {
		_ = s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			require.NoError(t, tx.DeactivateAsset(ctx, "a1", now))
			panic("boom")
		})
	})

	_, err := s.FindAssetByID(ctx, "u1", "a1")
	assert.NoError(t, err)
}

func TestApplyAggregateDeltaClampsAndIsAtomic(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ApplyAggregateDelta(ctx, "u1", "2024-05", 10, 0, now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	agg, err := s.FindAggregate(ctx, "u1", "2024-05")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(500), agg.PositiveTotal)

	agg, err = s.ApplyAggregateDelta(ctx, "u1", "2024-05", -800, -5, now)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(0), agg.PositiveTotal)
	assert.Equal(t, domain.Money(0), agg.NegativeTotal)

	rows, err := s.ListAggregates(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOwnershipIsEnforced(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedAsset(t, s, "a1", 1000)

	_, err := s.FindAssetByID(ctx, "u2", "a1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		locked, err := tx.FindAssetsForUpdate(ctx, "u2", []string{"a1"})
		require.NoError(t, err)
		assert.Empty(t, locked)
		return nil
	})
	require.NoError(t, err)
}

func TestListBillsKeysetOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		for _, b := range []domain.Bill{
			{ID: "b1", UserID: "u1", Type: domain.BillExpense, Date: 100, IsActive: true},
			{ID: "b2", UserID: "u1", Type: domain.BillExpense, Date: 200, IsActive: true},
			{ID: "b3", UserID: "u1", Type: domain.BillExpense, Date: 200, IsActive: true},
		} {
			if err := tx.InsertBill(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	page, err := s.ListBills(ctx, "u1", domain.BillFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b3", page[0].ID)
	assert.Equal(t, "b2", page[1].ID)

	page, err = s.ListBills(ctx, "u1", domain.BillFilter{Limit: 2, After: &domain.BillCursor{Date: 200, ID: "b2"}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b1", page[0].ID)
}
