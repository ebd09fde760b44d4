package entity

import "time"

// Supplier proveedor de materias primas de una empresa.
type Supplier struct {
	ID             string
	CompanyID      string
	Name           string
	Address        string
	Country        string
	ContactPerson  string
	ContactEmail   string
	ContactPhone   string
	Certifications string // texto libre (ej. "GOTS, OEKO-TEX")
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
