package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtStatusActive  DebtStatus = "active"
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
	// DebtStatusSettled is terminal — no outgoing transitions.
	DebtStatusSettled DebtStatus = "settled"
)

// Valid reports whether s is one of the known statuses.
func (s DebtStatus) Valid() bool {
	switch s {
	case DebtStatusActive, DebtStatusPending, DebtStatusPaid, DebtStatusSettled:
		return true
	}
	return false
}

// debtTransitions is the forward-only transition table. Self-transitions and
// backward moves are absent, hence rejected.
var debtTransitions = map[DebtStatus][]DebtStatus{
	DebtStatusActive:  {DebtStatusPending, DebtStatusPaid, DebtStatusSettled},
	DebtStatusPending: {DebtStatusPaid, DebtStatusSettled},
	DebtStatusPaid:    {DebtStatusSettled},
	DebtStatusSettled: {},
}

// CanTransition reports whether s → to is an allowed lifecycle move.
func (s DebtStatus) CanTransition(to DebtStatus) bool {
	for _, allowed := range debtTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Debt is a credit sale owed by a user, composed of line items. Amount always
// equals the sum of item price × quantity at creation time.
type Debt struct {
	ID        uint            `gorm:"primaryKey"`
	UUID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	UserID    uint            `gorm:"not null;index"`
	DueDate   time.Time       `gorm:"column:date_pay;not null"`
	Status    DebtStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
	// Items are cascade-deleted with the debt.
	Items []DebtItem `gorm:"foreignKey:DebtID;constraint:OnDelete:CASCADE"`
}

// Overdue reports whether the debt is still open past its due date.
func (d *Debt) Overdue(now time.Time) bool {
	return (d.Status == DebtStatusActive || d.Status == DebtStatusPending) && d.DueDate.Before(now)
}
