package models

import (
	"encoding/json"
	"time"
)

// StoreView is one contact/interaction event. The log is append-only: rows are
// never updated or individually deleted through the API.
type StoreView struct {
	IDView         int64           `json:"id_view"`
	IDStore        string          `json:"id_store"`
	ContactType    string          `json:"contact_type"`
	ContactMethod  string          `json:"contact_method"`
	UserIP         *string         `json:"user_ip"`
	UserAgent      *string         `json:"user_agent"`
	SessionID      *string         `json:"session_id"`
	AdditionalData json.RawMessage `json:"additional_data"`
	ViewDate       time.Time       `json:"view_date"`
}

type StoreViewRequest struct {
	IDStore        string          `json:"id_store"`
	ContactType    string          `json:"contact_type"`
	ContactMethod  string          `json:"contact_method"`
	UserIP         string          `json:"user_ip"`
	UserAgent      string          `json:"user_agent"`
	SessionID      *string         `json:"session_id"`
	AdditionalData json.RawMessage `json:"additional_data"`
}
