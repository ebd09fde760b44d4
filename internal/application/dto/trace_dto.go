package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest alta de un lote de materia prima recibido de un proveedor.
type CreateRawMaterialRequest struct {
	SupplierID     string          `json:"supplier_id" validate:"required,uuid"`
	MaterialName   string          `json:"material_name" validate:"required,max=200"`
	MaterialType   string          `json:"material_type"`
	BatchNumber    string          `json:"batch_number" validate:"required,max=100"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ReceivedDate   string          `json:"received_date" validate:"required,isodate"`
	Certifications map[string]any  `json:"certifications"`
	Notes          string          `json:"notes"`
}

// RawMaterialResponse salida de un lote de materia prima.
type RawMaterialResponse struct {
	ID             string          `json:"id"`
	SupplierID     string          `json:"supplier_id"`
	MaterialName   string          `json:"material_name"`
	MaterialType   string          `json:"material_type"`
	BatchNumber    string          `json:"batch_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ReceivedDate   string          `json:"received_date"`
	Certifications map[string]any  `json:"certifications,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RawMaterialListResponse lista paginada de lotes.
type RawMaterialListResponse struct {
	Items []RawMaterialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ProductionRunInputRequest insumo consumido por la corrida.
type ProductionRunInputRequest struct {
	RawMaterialBatchID string          `json:"raw_material_batch_id" validate:"required,uuid"`
	QuantityUsed       decimal.Decimal `json:"quantity_used"`
	Unit               string          `json:"unit"`
}

// CreateProductionRunRequest alta de una corrida con sus insumos.
type CreateProductionRunRequest struct {
	FactoryID         string                      `json:"factory_id" validate:"required,uuid"`
	RunNumber         string                      `json:"run_number" validate:"required,max=100"`
	ProductType       string                      `json:"product_type"`
	StartDate         string                      `json:"start_date" validate:"required,isodate"`
	EndDate           string                      `json:"end_date" validate:"omitempty,isodate"`
	UnitsProduced     int                         `json:"units_produced" validate:"min=0"`
	Notes             string                      `json:"notes"`
	RawMaterialInputs []ProductionRunInputRequest `json:"raw_material_inputs" validate:"dive"`
}

// ProductionRunInputResponse insumo de una corrida.
type ProductionRunInputResponse struct {
	ID                 string          `json:"id"`
	RawMaterialBatchID string          `json:"raw_material_batch_id"`
	QuantityUsed       decimal.Decimal `json:"quantity_used"`
	Unit               string          `json:"unit"`
}

// ProductionRunResponse corrida con sus insumos.
type ProductionRunResponse struct {
	ID            string                       `json:"id"`
	FactoryID     string                       `json:"factory_id"`
	RunNumber     string                       `json:"run_number"`
	ProductType   string                       `json:"product_type"`
	StartDate     string                       `json:"start_date"`
	EndDate       *string                      `json:"end_date"`
	UnitsProduced int                          `json:"units_produced"`
	Notes         string                       `json:"notes,omitempty"`
	Inputs        []ProductionRunInputResponse `json:"inputs"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// ProductionRunListResponse lista paginada de corridas (sin insumos).
type ProductionRunListResponse struct {
	Items []ProductionRunResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// CreateFinishedGoodRequest alta de un lote de producto terminado.
type CreateFinishedGoodRequest struct {
	ProductionRunID string `json:"production_run_id" validate:"required,uuid"`
	ProductName     string `json:"product_name" validate:"required,max=200"`
	ProductSKU      string `json:"product_sku"`
	Quantity        int    `json:"quantity" validate:"min=0"`
	Unit            string `json:"unit"`
	ProductionDate  string `json:"production_date" validate:"required,isodate"`
	Notes           string `json:"notes"`
}

// FinishedGoodResponse salida de un lote terminado con su QR.
type FinishedGoodResponse struct {
	ID              string    `json:"id"`
	ProductionRunID string    `json:"production_run_id"`
	QRCodeID        string    `json:"qr_code_id"`
	ProductName     string    `json:"product_name"`
	ProductSKU      string    `json:"product_sku"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	ProductionDate  string    `json:"production_date"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FinishedGoodListResponse lista paginada de lotes terminados.
type FinishedGoodListResponse struct {
	Items []FinishedGoodResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// TraceResponse cadena pública de un producto (GET /trace/:qr_code_id).
type TraceResponse struct {
	FinishedGood  TraceFinishedGood  `json:"finished_good"`
	ProductionRun TraceProductionRun `json:"production_run"`
	RawMaterials  []TraceRawMaterial `json:"raw_materials"`
}

// TraceFinishedGood datos públicos del lote terminado.
type TraceFinishedGood struct {
	ID              string `json:"id"`
	QRCodeID        string `json:"qr_code_id"`
	ProductionRunID string `json:"production_run_id"`
	ProductName     string `json:"product_name"`
	ProductSKU      string `json:"product_sku"`
	Quantity        int    `json:"quantity"`
	Unit            string `json:"unit"`
	ProductionDate  string `json:"production_date"`
}

// TraceProductionRun datos públicos de la corrida y su fábrica.
type TraceProductionRun struct {
	ID            string       `json:"id"`
	RunNumber     string       `json:"run_number"`
	ProductType   string       `json:"product_type"`
	StartDate     string       `json:"start_date"`
	EndDate       *string      `json:"end_date"`
	UnitsProduced int          `json:"units_produced"`
	Factory       TraceFactory `json:"factory"`
}

// TraceFactory campos públicos de la fábrica.
type TraceFactory struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// TraceRawMaterial insumo de la corrida.
type TraceRawMaterial struct {
	ID           string          `json:"id"`
	MaterialName string          `json:"material_name"`
	MaterialType string          `json:"material_type"`
	BatchNumber  string          `json:"batch_number"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Unit         string          `json:"unit"`
	ReceivedDate string          `json:"received_date"`
	Supplier     TraceSupplier   `json:"supplier"`
}

// TraceSupplier campos públicos del proveedor.
type TraceSupplier struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	Certifications string `json:"certifications"`
}
