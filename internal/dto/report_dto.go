package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

// DailySalesFilter is bound from the query string of GET /v1/reports/daily.
type DailySalesFilter struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// MonthlySalesFilter is bound from the query string of GET /v1/reports/monthly.
type MonthlySalesFilter struct {
	Year  int `form:"year"  validate:"omitempty,min=2000,max=2200"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DailySalesResponse struct {
	SaleDate          string          `json:"sale_date"` // YYYY-MM-DD
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalTransactions int             `json:"total_transactions"`
	TotalProductsSold int             `json:"total_products_sold"`
	AverageSaleAmount decimal.Decimal `json:"average_sale_amount"`
	ActiveDebtsCount  int             `json:"active_debts_count"`
	PendingDebtsCount int             `json:"pending_debts_count"`
	PaidDebtsCount    int             `json:"paid_debts_count"`
	SettledDebtsCount int             `json:"settled_debts_count"`
	TotalActiveAmount decimal.Decimal `json:"total_active_amount"`
	TotalPaidAmount   decimal.Decimal `json:"total_paid_amount"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type MonthlySalesResponse struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalTransactions int             `json:"total_transactions"`
	TotalProductsSold int             `json:"total_products_sold"`
	AverageSaleAmount decimal.Decimal `json:"average_sale_amount"`
	ActiveDebtsCount  int             `json:"active_debts_count"`
	PendingDebtsCount int             `json:"pending_debts_count"`
	PaidDebtsCount    int             `json:"paid_debts_count"`
	SettledDebtsCount int             `json:"settled_debts_count"`
	TotalActiveAmount decimal.Decimal `json:"total_active_amount"`
	TotalPaidAmount   decimal.Decimal `json:"total_paid_amount"`
	TotalDays         int             `json:"total_days"`
	AverageDailySales decimal.Decimal `json:"average_daily_sales"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type DailySalesListResponse struct {
	Data            []DailySalesResponse `json:"data"`
	Total           int64                `json:"total"`
	Page            int                  `json:"page"`
	Limit           int                  `json:"limit"`
	TotalPages      int                  `json:"total_pages"`
	HasNextPage     bool                 `json:"has_next_page"`
	HasPreviousPage bool                 `json:"has_previous_page"`
}

type MonthlySalesListResponse struct {
	Data            []MonthlySalesResponse `json:"data"`
	Total           int64                  `json:"total"`
	Page            int                    `json:"page"`
	Limit           int                    `json:"limit"`
	TotalPages      int                    `json:"total_pages"`
	HasNextPage     bool                   `json:"has_next_page"`
	HasPreviousPage bool                   `json:"has_previous_page"`
}
