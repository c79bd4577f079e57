package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtItem is one product line within a debt. Price is the unit price captured
// at reservation time — it does not track later product price changes.
type DebtItem struct {
	ID        uint            `gorm:"primaryKey"`
	UUID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	DebtID    uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Product is a non-owning reference: deleting the product does NOT cascade
	// here; the FK blocks product deletion while items reference it.
	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization (debt_items → debts_items,
// matching the wire-visible schema).
func (DebtItem) TableName() string { return "debts_items" }

// Subtotal is price × quantity for this line.
func (i *DebtItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
