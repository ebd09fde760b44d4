package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Address        string `json:"address"`
	Country        string `json:"country"`
	ContactPerson  string `json:"contact_person"`
	ContactEmail   string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   string `json:"contact_phone"`
	Certifications string `json:"certifications"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor (campos opcionales).
type UpdateSupplierRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address        *string `json:"address"`
	Country        *string `json:"country"`
	ContactPerson  *string `json:"contact_person"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	Certifications *string `json:"certifications"`
	IsActive       *bool   `json:"is_active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Country        string    `json:"country"`
	ContactPerson  string    `json:"contact_person"`
	ContactEmail   string    `json:"contact_email"`
	ContactPhone   string    `json:"contact_phone"`
	Certifications string    `json:"certifications"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
