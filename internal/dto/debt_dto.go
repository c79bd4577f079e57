package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DebtProductInput is one ordered line in a debt creation request.
type DebtProductInput struct {
	ProductUUID string `json:"product_uuid" validate:"required,uuid"`
	Quantity    int    `json:"quantity"     validate:"required,min=1"`
}

type CreateDebtRequest struct {
	UserUUID string             `json:"user_uuid" validate:"required,uuid"`
	DueDate  time.Time          `json:"due_date"  validate:"required"`
	Products []DebtProductInput `json:"products"  validate:"required,min=1,dive"`
}

type UpdateDebtStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending paid settled"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// DebtFilter is bound from the query string of GET /v1/debts.
type DebtFilter struct {
	UserUUID  string `form:"user_uuid" validate:"omitempty,uuid"`
	Status    string `form:"status"    validate:"omitempty,oneof=active pending paid settled"`
	StartDate string `form:"start_date"` // YYYY-MM-DD, filters due date
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DebtItemResponse struct {
	UUID     string          `json:"uuid"`
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type DebtResponse struct {
	UUID      string             `json:"uuid"`
	User      UserResponse       `json:"user"`
	DueDate   time.Time          `json:"due_date"`
	Status    string             `json:"status"`
	Amount    decimal.Decimal    `json:"amount"`
	Products  []DebtItemResponse `json:"products"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type DebtListResponse struct {
	Data            []DebtResponse  `json:"data"`
	Total           int64           `json:"total"`
	Page            int             `json:"page"`
	Limit           int             `json:"limit"`
	TotalPages      int             `json:"total_pages"`
	HasNextPage     bool            `json:"has_next_page"`
	HasPreviousPage bool            `json:"has_previous_page"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// UserDebtStats summarizes one user's ledger position. "Open" groups
// active+pending; "paid" groups paid+settled.
type UserDebtStats struct {
	TotalDebts   int             `json:"total_debts"`
	ActiveDebts  int             `json:"active_debts"`
	PaidDebts    int             `json:"paid_debts"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
}
