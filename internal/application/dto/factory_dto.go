package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFactoryRequest entrada para crear una fábrica.
type CreateFactoryRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	Country       string           `json:"country"`
	Latitude      *decimal.Decimal `json:"latitude"`
	Longitude     *decimal.Decimal `json:"longitude"`
	ContactPerson string           `json:"contact_person"`
	ContactEmail  string           `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string           `json:"contact_phone"`
}

// UpdateFactoryRequest entrada para actualizar una fábrica (campos opcionales).
type UpdateFactoryRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	Country       *string          `json:"country"`
	Latitude      *decimal.Decimal `json:"latitude"`
	Longitude     *decimal.Decimal `json:"longitude"`
	ContactPerson *string          `json:"contact_person"`
	ContactEmail  *string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  *string          `json:"contact_phone"`
	IsActive      *bool            `json:"is_active"`
}

// FactoryResponse salida de una fábrica.
type FactoryResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	Country       string           `json:"country"`
	Latitude      *decimal.Decimal `json:"latitude"`
	Longitude     *decimal.Decimal `json:"longitude"`
	ContactPerson string           `json:"contact_person"`
	ContactEmail  string           `json:"contact_email"`
	ContactPhone  string           `json:"contact_phone"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// FactoryListResponse lista paginada de fábricas.
type FactoryListResponse struct {
	Items []FactoryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
