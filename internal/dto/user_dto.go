package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Firstname    string  `json:"firstname" validate:"required,min=2,max=100"`
	Lastname     string  `json:"lastname"  validate:"required,min=2,max=100"`
	Email        string  `json:"email"     validate:"required,email"`
	Password     string  `json:"password"  validate:"required,min=8"`
	Picture      *string `json:"picture"   validate:"omitempty,url"`
	IsDelinquent bool    `json:"is_delinquent"`
}

type UpdateUserRequest struct {
	Firstname    *string `json:"firstname" validate:"omitempty,min=2,max=100"`
	Lastname     *string `json:"lastname"  validate:"omitempty,min=2,max=100"`
	Picture      *string `json:"picture"   validate:"omitempty,url"`
	IsDelinquent *bool   `json:"is_delinquent"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	UUID         string    `json:"uuid"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	Picture      *string   `json:"picture,omitempty"`
	IsDelinquent bool      `json:"is_delinquent"`
	CreatedAt    time.Time `json:"created_at"`
}
