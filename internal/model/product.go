package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType is the closed catalog categorization.
type ProductType string

const (
	ProductTypeGranosBasicos ProductType = "granos_basicos"
	ProductTypeSnacks        ProductType = "snacks"
	ProductTypeBebidas       ProductType = "bebidas"
	ProductTypeLacteos       ProductType = "lacteos"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeGranosBasicos, ProductTypeSnacks, ProductTypeBebidas, ProductTypeLacteos:
		return true
	}
	return false
}

// Product is a catalog entry with a live stock count. Stock is mutated only
// through the inventory service's locked read-modify-write — never by direct
// field assignment from elsewhere.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	UUID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Name      string          `gorm:"uniqueIndex;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	Type      ProductType     `gorm:"type:varchar(30);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []DebtItem `gorm:"foreignKey:ProductID"`
}
