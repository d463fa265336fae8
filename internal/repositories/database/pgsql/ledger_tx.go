package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxLedgerRepository)(nil)

// RunInTx runs fn inside a READ COMMITTED transaction. Row locks taken by the
// ForUpdate methods serialize concurrent mutations of the same asset or bill.
func (r *PgxLedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

const assetColumns = `id, account_id, user_id, name, amount, kind, remark, is_active, created_at, updated_at`

func (t *pgxLedgerTx) FindAssetForUpdate(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND user_id = $2 AND is_active FOR UPDATE`
	asset, err := scanAsset(t.tx.QueryRow(ctx, query, assetID, userID))
	if err != nil {
		return nil, mapError(err, "asset %s", assetID)
	}
	return asset, nil
}

func (t *pgxLedgerTx) FindAssetsForUpdate(ctx context.Context, userID string, assetIDs []string) (map[string]domain.Asset, error) {
	ids := append([]string(nil), assetIDs...)
	sort.Strings(ids)

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = ANY($1) AND user_id = $2 AND is_active ORDER BY id FOR UPDATE`
	rows, err := t.tx.Query(ctx, query, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets for update: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Asset, len(ids))
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked asset row: %w", err)
		}
		out[asset.ID] = *asset
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked asset rows: %w", err)
	}
	return out, nil
}

func (t *pgxLedgerTx) InsertAsset(ctx context.Context, a domain.Asset) error {
	query := `
		INSERT INTO assets (id, account_id, user_id, name, amount, kind, remark, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9);
	`
	_, err := t.tx.Exec(ctx, query, a.ID, a.AccountID, a.UserID, a.Name, a.Amount.Decimal(), string(a.Kind), a.Remark, a.CreatedAt, a.UpdatedAt)
	return mapError(err, "failed to insert asset %s", a.ID)
}

func (t *pgxLedgerTx) UpdateAsset(ctx context.Context, a domain.Asset) error {
	query := `UPDATE assets SET name = $1, remark = $2, amount = $3, updated_at = $4 WHERE id = $5 AND is_active`
	cmdTag, err := t.tx.Exec(ctx, query, a.Name, a.Remark, a.Amount.Decimal(), a.UpdatedAt, a.ID)
	if err != nil {
		return mapError(err, "failed to update asset %s", a.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, a.ID)
	}
	return nil
}

func (t *pgxLedgerTx) DeactivateAsset(ctx context.Context, assetID string, now time.Time) error {
	cmdTag, err := t.tx.Exec(ctx, `UPDATE assets SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active`, now, assetID)
	if err != nil {
		return mapError(err, "failed to deactivate asset %s", assetID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	return nil
}

func (t *pgxLedgerTx) AppendChangeRecord(ctx context.Context, r domain.ChangeRecord) error {
	query := `
		INSERT INTO asset_change_records (id, asset_id, user_id, delta, kind, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := t.tx.Exec(ctx, query, r.ID, r.AssetID, r.UserID, r.Delta.Decimal(), int16(r.Kind), r.Remark, r.CreatedAt)
	return mapError(err, "failed to insert change record %s", r.ID)
}

func (t *pgxLedgerTx) DeleteChangeRecordsByAsset(ctx context.Context, assetID string) (int64, error) {
	cmdTag, err := t.tx.Exec(ctx, `DELETE FROM asset_change_records WHERE asset_id = $1`, assetID)
	if err != nil {
		return 0, mapError(err, "failed to delete change records of asset %s", assetID)
	}
	return cmdTag.RowsAffected(), nil
}

func (t *pgxLedgerTx) InsertBill(ctx context.Context, b domain.Bill) error {
	query := `
		INSERT INTO bills (id, user_id, type, amount, date, classify_id, asset_id, tag_id, remark, images, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		b.ID, b.UserID, string(b.Type), b.Amount.Decimal(), b.Date, b.ClassifyID,
		nullString(b.AssetID), nullString(b.TagID), b.Remark, imagesOrEmpty(b.Images),
		b.CreatedAt, b.UpdatedAt,
	)
	return mapError(err, "failed to insert bill %s", b.ID)
}

func (t *pgxLedgerTx) FindBillForUpdate(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND user_id = $2 AND is_active FOR UPDATE`
	bill, err := scanBill(t.tx.QueryRow(ctx, query, billID, userID))
	if err != nil {
		return nil, mapError(err, "bill %s", billID)
	}
	return bill, nil
}

func (t *pgxLedgerTx) UpdateBill(ctx context.Context, b domain.Bill) error {
	query := `
		UPDATE bills
		SET type = $1, amount = $2, date = $3, classify_id = $4, asset_id = $5, tag_id = $6,
		    remark = $7, images = $8, updated_at = $9
		WHERE id = $10 AND is_active;
	`
	cmdTag, err := t.tx.Exec(ctx, query,
		string(b.Type), b.Amount.Decimal(), b.Date, b.ClassifyID, nullString(b.AssetID), nullString(b.TagID),
		b.Remark, imagesOrEmpty(b.Images), b.UpdatedAt, b.ID,
	)
	if err != nil {
		return mapError(err, "failed to update bill %s", b.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, b.ID)
	}
	return nil
}

func (t *pgxLedgerTx) DeactivateBill(ctx context.Context, billID string, now time.Time) error {
	cmdTag, err := t.tx.Exec(ctx, `UPDATE bills SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active`, now, billID)
	if err != nil {
		return mapError(err, "failed to deactivate bill %s", billID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	return nil
}
