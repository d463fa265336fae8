package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository serves asset accounts and the classify/tag lookups.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.AssetAccountRepositoryFacade = (*PgxAccountRepository)(nil)
	_ portsrepo.CategoryReader               = (*PgxAccountRepository)(nil)
)

const accountColumns = `id, name, kind, parent_id, is_active, created_at, updated_at`

func (r *PgxAccountRepository) FindActiveAccount(ctx context.Context, accountID string) (*domain.AssetAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM asset_accounts WHERE id = $1 AND is_active`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapError(err, "account %s", accountID)
	}
	return account, nil
}

func (r *PgxAccountRepository) HasActiveChildren(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM asset_accounts WHERE parent_id = $1 AND is_active)`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.AssetAccount, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM asset_accounts WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.AssetAccount, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, a domain.AssetAccount) error {
	query := `
		INSERT INTO asset_accounts (id, name, kind, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, a.ID, a.Name, string(a.Kind), nullString(a.ParentID), a.CreatedAt, a.UpdatedAt)
	return mapError(err, "failed to save account %s", a.ID)
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE asset_accounts SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active`, now, accountID)
	if err != nil {
		return mapError(err, "failed to deactivate account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *PgxAccountRepository) FindClassify(ctx context.Context, classifyID string) (*domain.Classify, error) {
	var (
		c        domain.Classify
		billType string
	)
	err := r.Pool.QueryRow(ctx, `SELECT id, label, type, is_active FROM classifies WHERE id = $1 AND is_active`, classifyID).
		Scan(&c.ID, &c.Label, &billType, &c.IsActive)
	if err != nil {
		return nil, mapError(err, "classify %s", classifyID)
	}
	c.Type = domain.BillType(billType)
	return &c, nil
}

func (r *PgxAccountRepository) FindTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.Pool.QueryRow(ctx, `SELECT id, name, is_active FROM tags WHERE id = $1 AND is_active`, tagID).
		Scan(&t.ID, &t.Name, &t.IsActive)
	if err != nil {
		return nil, mapError(err, "tag %s", tagID)
	}
	return &t, nil
}
