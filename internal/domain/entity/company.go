package entity

import "time"

// Company representa un tenant: unidad de aislamiento de datos.
type Company struct {
	ID        string
	Name      string
	Email     string // único entre empresas
	Phone     string
	Address   string
	Country   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
