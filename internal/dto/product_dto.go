package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name  string          `json:"name"  validate:"required,min=2"`
	Price decimal.Decimal `json:"price" validate:"required,gt=0"`
	Stock int             `json:"stock" validate:"min=0"`
	Type  string          `json:"type"  validate:"required,oneof=granos_basicos snacks bebidas lacteos"`
}

type UpdateProductRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=2"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Stock *int             `json:"stock" validate:"omitempty,min=0"`
	Type  *string          `json:"type"  validate:"omitempty,oneof=granos_basicos snacks bebidas lacteos"`
}

// StockAdjustRequest moves stock through the inventory ledger.
type StockAdjustRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" validate:"omitempty,oneof=granos_basicos snacks bebidas lacteos"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	UUID      string          `json:"uuid"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Data            []ProductResponse `json:"data"`
	Total           int64             `json:"total"`
	Page            int               `json:"page"`
	Limit           int               `json:"limit"`
	TotalPages      int               `json:"total_pages"`
	HasNextPage     bool              `json:"has_next_page"`
	HasPreviousPage bool              `json:"has_previous_page"`
}
