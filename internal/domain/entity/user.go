package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin          = "ADMIN"
	RoleFactoryManager = "FACTORY_MANAGER"
	RoleViewer         = "VIEWER"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	FirstName    string
	LastName     string
	Email        string // único en todo el sistema
	PasswordHash string // bcrypt; nunca sale del dominio hacia los DTOs
	Role         string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es uno de los roles soportados.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleFactoryManager, RoleViewer:
		return true
	}
	return false
}
