package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterialBatch lote de materia prima recibido de un proveedor.
type RawMaterialBatch struct {
	ID             string
	SupplierID     string
	MaterialName   string
	MaterialType   string
	BatchNumber    string
	Quantity       decimal.Decimal
	Unit           string
	ReceivedDate   time.Time
	Certifications map[string]any // JSONB
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
