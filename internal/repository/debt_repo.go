package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
)

// DebtRepository defines the data access contract for debts and their items.
type DebtRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, d *model.Debt) error
	// FindByID returns the debt with user, items and each item's product
	// populated — the canonical read after a committed write.
	FindByID(ctx context.Context, id uint) (*model.Debt, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*model.Debt, error)
	// FindByUUIDForUpdateTx takes an exclusive row lock on the debt, held for
	// the duration of the surrounding transaction.
	FindByUUIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Debt, error)
	FindByUser(ctx context.Context, userUUID uuid.UUID) ([]model.Debt, error)
	List(ctx context.Context, filter dto.DebtFilter) ([]model.Debt, int64, decimal.Decimal, error)
	Save(ctx context.Context, d *model.Debt) error
	DeleteTx(tx *gorm.DB, d *model.Debt) error
	// FindCreatedBetween returns debts (with items) created in [from, to) —
	// the recomputation window for report buckets.
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Debt, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.Debt, error)
	// CountItemsByProduct reports how many debt items reference a product.
	// Guards product deletion: items keep a plain FK to products.
	CountItemsByProduct(ctx context.Context, productID uint) (int64, error)
	DB() *gorm.DB
}

type debtRepo struct{ db *gorm.DB }

func NewDebtRepository(db *gorm.DB) DebtRepository { return &debtRepo{db: db} }

func (r *debtRepo) DB() *gorm.DB { return r.db }

func (r *debtRepo) CreateTx(ctx context.Context, tx *gorm.DB, d *model.Debt) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *debtRepo) FindByID(ctx context.Context, id uint) (*model.Debt, error) {
	var d model.Debt
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *debtRepo) FindByUUID(ctx context.Context, id uuid.UUID) (*model.Debt, error) {
	var d model.Debt
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Where("uuid = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *debtRepo) FindByUUIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Debt, error) {
	var d model.Debt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User").
		Preload("Items.Product").
		Where("uuid = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *debtRepo) FindByUser(ctx context.Context, userUUID uuid.UUID) ([]model.Debt, error) {
	var debts []model.Debt
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = debts.user_id").
		Where("users.uuid = ?", userUUID).
		Preload("User").
		Preload("Items.Product").
		Order("debts.created_at DESC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepo) List(ctx context.Context, filter dto.DebtFilter) ([]model.Debt, int64, decimal.Decimal, error) {
	var debts []model.Debt
	var total int64
	totalAmount := decimal.Zero

	q := r.db.WithContext(ctx).Model(&model.Debt{})

	if filter.UserUUID != "" {
		q = q.Joins("JOIN users ON users.id = debts.user_id").
			Where("users.uuid = ?", filter.UserUUID)
	}
	if filter.Status != "" {
		q = q.Where("debts.status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		q = q.Where("debts.date_pay >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("debts.date_pay <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, totalAmount, err
	}

	// Grand total over the full filtered set, not just the current page.
	var sum struct{ Total decimal.Decimal }
	if err := q.Select("COALESCE(SUM(debts.amount), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, 0, totalAmount, err
	}
	totalAmount = sum.Total

	offset := (filter.Page - 1) * filter.Limit
	err := q.Select("debts.*").
		Preload("User").
		Preload("Items.Product").
		Order("debts.created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&debts).Error

	return debts, total, totalAmount, err
}

func (r *debtRepo) Save(ctx context.Context, d *model.Debt) error {
	return r.db.WithContext(ctx).Omit("Items", "User").Save(d).Error
}

func (r *debtRepo) DeleteTx(tx *gorm.DB, d *model.Debt) error {
	// Items go with it via the DB-level ON DELETE CASCADE.
	return tx.Delete(&model.Debt{}, d.ID).Error
}

func (r *debtRepo) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Debt, error) {
	var debts []model.Debt
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Preload("Items").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepo) CountItemsByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DebtItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *debtRepo) ListOverdue(ctx context.Context, now time.Time) ([]model.Debt, error) {
	var debts []model.Debt
	err := r.db.WithContext(ctx).
		Where("status IN ? AND date_pay < ?", []model.DebtStatus{model.DebtStatusActive, model.DebtStatusPending}, now).
		Preload("User").
		Preload("Items.Product").
		Order("date_pay ASC").
		Find(&debts).Error
	return debts, err
}
