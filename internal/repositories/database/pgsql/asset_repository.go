package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAssetRepository reads assets and their change records.
type PgxAssetRepository struct {
	BaseRepository
}

func newPgxAssetRepository(pool *pgxpool.Pool) *PgxAssetRepository {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.AssetReader        = (*PgxAssetRepository)(nil)
	_ portsrepo.ChangeRecordReader = (*PgxAssetRepository)(nil)
)

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND user_id = $2 AND is_active`
	asset, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID, userID))
	if err != nil {
		return nil, mapError(err, "asset %s", assetID)
	}
	return asset, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context, userID string, filter portsrepo.AssetFilter) ([]domain.Asset, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1 AND is_active`)
	args := []any{userID}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		fmt.Fprintf(&sb, " AND account_id = $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		fmt.Fprintf(&sb, " AND kind = $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at, id")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

func (r *PgxAssetRepository) FindChangeRecord(ctx context.Context, userID, recordID string) (*domain.ChangeRecord, error) {
	query := `SELECT ` + changeRecordColumns + ` FROM asset_change_records WHERE id = $1 AND user_id = $2`
	rec, err := scanChangeRecord(r.Pool.QueryRow(ctx, query, recordID, userID))
	if err != nil {
		return nil, mapError(err, "change record %s", recordID)
	}
	return rec, nil
}

func (r *PgxAssetRepository) ListChangeRecords(ctx context.Context, userID, assetID string, period domain.Period) ([]domain.ChangeRecord, error) {
	query := `
		SELECT ` + changeRecordColumns + `
		FROM asset_change_records
		WHERE asset_id = $1 AND user_id = $2 AND created_at >= $3 AND created_at < $4
		ORDER BY created_at DESC, seq DESC;
	`
	return r.queryChangeRecords(ctx, query, assetID, userID, period.Start, period.End)
}

func (r *PgxAssetRepository) ListChangeRecordsByAsset(ctx context.Context, assetID string) ([]domain.ChangeRecord, error) {
	query := `SELECT ` + changeRecordColumns + ` FROM asset_change_records WHERE asset_id = $1 ORDER BY created_at, seq`
	return r.queryChangeRecords(ctx, query, assetID)
}

func (r *PgxAssetRepository) queryChangeRecords(ctx context.Context, query string, args ...any) ([]domain.ChangeRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query change records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ChangeRecord, 0)
	for rows.Next() {
		rec, err := scanChangeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change record row: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
