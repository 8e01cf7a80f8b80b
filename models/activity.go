package models

import (
	"encoding/json"
	"time"
)

// RecentActivity is one audit-log row. user_id holds the acting store's
// nit_store; the column name is historical.
type RecentActivity struct {
	ID                  int64           `json:"id"`
	UserID              string          `json:"user_id,omitempty"`
	ActivityType        string          `json:"activity_type"`
	ActivityDescription *string         `json:"activity_description"`
	Metadata            json.RawMessage `json:"metadata"`
	SessionID           *string         `json:"session_id,omitempty"`
	IPAddress           *string         `json:"ip_address"`
	CreatedAt           time.Time       `json:"created_at"`
}

type ActivityRequest struct {
	UserID              string          `json:"user_id"`
	ActivityType        string          `json:"activity_type"`
	ActivityDescription string          `json:"activity_description"`
	Metadata            json.RawMessage `json:"metadata"`
	SessionID           *string         `json:"session_id"`
	IPAddress           string          `json:"ip_address"`
	UserAgent           string          `json:"user_agent"`
}
