package dto

import "time"

// AuditLogResponse un registro de la bitácora.
type AuditLogResponse struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	ActionType         string         `json:"action_type"`
	TargetResourceID   string         `json:"target_resource_id,omitempty"`
	TargetResourceType string         `json:"target_resource_type"`
	AfterValue         map[string]any `json:"after_value,omitempty"`
	IPAddress          string         `json:"ip_address"`
	CreatedAt          time.Time      `json:"created_at"`
}

// AuditLogListResponse lista paginada de la bitácora.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
