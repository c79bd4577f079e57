package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSalesDaily is the materialized sales bucket for one calendar day.
// Rows are never written by users — the report service fully recomputes and
// upserts them whenever a debt event fires.
type ReportSalesDaily struct {
	ID                uint            `gorm:"primaryKey"`
	SaleDate          time.Time       `gorm:"type:date;uniqueIndex;not null"`
	TotalSales        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalTransactions int             `gorm:"not null;default:0"`
	TotalProductsSold int             `gorm:"not null;default:0"`
	AverageSaleAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ActiveDebtsCount  int             `gorm:"not null;default:0"`
	PendingDebtsCount int             `gorm:"not null;default:0"`
	PaidDebtsCount    int             `gorm:"not null;default:0"`
	SettledDebtsCount int             `gorm:"not null;default:0"`
	TotalActiveAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	// TotalPaidAmount combines paid and settled debts.
	TotalPaidAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ReportSalesDaily) TableName() string { return "reports_sales_daily" }

// ReportSalesMonthly is the materialized sales bucket for one calendar month,
// unique per (year, month).
type ReportSalesMonthly struct {
	ID                uint            `gorm:"primaryKey"`
	Year              int             `gorm:"not null;uniqueIndex:idx_report_year_month"`
	Month             int             `gorm:"not null;uniqueIndex:idx_report_year_month"`
	TotalSales        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalTransactions int             `gorm:"not null;default:0"`
	TotalProductsSold int             `gorm:"not null;default:0"`
	AverageSaleAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ActiveDebtsCount  int             `gorm:"not null;default:0"`
	PendingDebtsCount int             `gorm:"not null;default:0"`
	PaidDebtsCount    int             `gorm:"not null;default:0"`
	SettledDebtsCount int             `gorm:"not null;default:0"`
	TotalActiveAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalPaidAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDays         int             `gorm:"not null;default:0"`
	AverageDailySales decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ReportSalesMonthly) TableName() string { return "reports_sales_monthly" }
