package models

import "time"

// Store is a row of the stores table, keyed by the tax identifier nit_store.
type Store struct {
	NitStore     string    `json:"nit_store"`
	StoreName    string    `json:"store_name"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	IDStoreType  *int      `json:"id_store_type"`
	OpeningHours *string   `json:"opening_hours"`
	ClosingHours *string   `json:"closing_hours"`
	Note         *string   `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoreRequest is the create/update payload. Every field is required;
// a missing one is a 400, not a handler panic.
type StoreRequest struct {
	NitStore     string `json:"nit_store" binding:"required"`
	StoreName    string `json:"store_name" binding:"required"`
	Address      string `json:"address" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Email        string `json:"email" binding:"required"`
	IDStoreType  *int   `json:"id_store_type" binding:"required"`
	OpeningHours string `json:"opening_hours" binding:"required"`
	ClosingHours string `json:"closing_hours" binding:"required"`
	Note         string `json:"note" binding:"required"`
}

// Pagination is the metadata block returned by every paginated list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
