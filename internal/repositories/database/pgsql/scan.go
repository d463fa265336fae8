package pgsql

import (
	"database/sql"
	"fmt"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		a      domain.Asset
		kind   string
		amount decimal.Decimal
	)
	if err := row.Scan(&a.ID, &a.AccountID, &a.UserID, &a.Name, &amount, &kind, &a.Remark, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := toMoney(amount)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", a.ID, err)
	}
	a.Amount = m
	a.Kind = domain.AccountKind(kind)
	return &a, nil
}

const changeRecordColumns = `id, asset_id, user_id, delta, kind, remark, created_at`

func scanChangeRecord(row rowScanner) (*domain.ChangeRecord, error) {
	var (
		r     domain.ChangeRecord
		delta decimal.Decimal
		kind  int16
	)
	if err := row.Scan(&r.ID, &r.AssetID, &r.UserID, &delta, &kind, &r.Remark, &r.CreatedAt); err != nil {
		return nil, err
	}
	m, err := toMoney(delta)
	if err != nil {
		return nil, fmt.Errorf("change record %s: %w", r.ID, err)
	}
	r.Delta = m
	r.Kind = domain.ChangeKind(kind)
	return &r, nil
}

const billColumns = `id, user_id, type, amount, date, classify_id, asset_id, tag_id, remark, images, is_active, created_at, updated_at`

func scanBill(row rowScanner) (*domain.Bill, error) {
	var (
		b              domain.Bill
		billType       string
		amount         decimal.Decimal
		assetID, tagID sql.NullString
	)
	if err := row.Scan(&b.ID, &b.UserID, &billType, &amount, &b.Date, &b.ClassifyID, &assetID, &tagID, &b.Remark, &b.Images, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := toMoney(amount)
	if err != nil {
		return nil, fmt.Errorf("bill %s: %w", b.ID, err)
	}
	b.Amount = m
	b.Type = domain.BillType(billType)
	b.AssetID = fromNullString(assetID)
	b.TagID = fromNullString(tagID)
	return &b, nil
}

const aggregateColumns = `id, user_id, month, positive_total, negative_total, created_at, updated_at`

func scanAggregate(row rowScanner) (*domain.MonthlyAggregate, error) {
	var (
		a        domain.MonthlyAggregate
		pos, neg decimal.Decimal
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Month, &pos, &neg, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if a.PositiveTotal, err = toMoney(pos); err != nil {
		return nil, err
	}
	if a.NegativeTotal, err = toMoney(neg); err != nil {
		return nil, err
	}
	return &a, nil
}

const budgetColumns = `id, user_id, type, amount, classify_id, parent_id, created_at, updated_at`

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var (
		b                    domain.Budget
		budgetType           string
		amount               decimal.Decimal
		classifyID, parentID sql.NullString
	)
	if err := row.Scan(&b.ID, &b.UserID, &budgetType, &amount, &classifyID, &parentID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := toMoney(amount)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", b.ID, err)
	}
	b.Amount = m
	b.Type = domain.BudgetType(budgetType)
	b.ClassifyID = fromNullString(classifyID)
	b.ParentID = fromNullString(parentID)
	return &b, nil
}

func scanAccount(row rowScanner) (*domain.AssetAccount, error) {
	var (
		a        domain.AssetAccount
		kind     string
		parentID sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &kind, &parentID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Kind = domain.AccountKind(kind)
	a.ParentID = fromNullString(parentID)
	return &a, nil
}
