package dto

import "time"

// AuditLogQuery is read from the query string of GET /ui/audit-logs.
type AuditLogQuery struct {
	UserID  int    `json:"user_id" validate:"gte=0"`
	Entity  string `json:"entity" validate:"max=64"`
	Action  string `json:"action" validate:"max=64"`
	Page    int    `json:"page" validate:"gte=1"`
	PerPage int    `json:"per_page" validate:"gte=1,lte=200"`
}

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    int         `json:"user_id"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entity_id"`
	OldValue  interface{} `json:"old_value,omitempty"`
	NewValue  interface{} `json:"new_value,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs       []AuditLogResponse `json:"logs"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}
