package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a ledger customer/account holder. Email is the natural identifier;
// UUID is the surface identifier exposed by the API.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Firstname    string    `gorm:"size:100;not null"`
	Lastname     string    `gorm:"size:100;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Picture      *string
	// IsDelinquent flags customers with a poor payment history; debt creation
	// for them is allowed but logged at warn level.
	IsDelinquent bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Debts []Debt `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
