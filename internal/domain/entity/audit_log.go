package entity

import "time"

// AuditLog registro inmutable de una acción mutante.
type AuditLog struct {
	ID                 string
	UserID             string
	CompanyID          string
	ActionType         string // ej. CREATE_FACTORIES
	TargetResourceID   string
	TargetResourceType string
	BeforeValue        map[string]any
	AfterValue         map[string]any
	IPAddress          string
	CreatedAt          time.Time
}
