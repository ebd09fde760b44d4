package entity

import "time"

// FinishedGoodBatch lote de producto terminado con su código QR público.
type FinishedGoodBatch struct {
	ID              string
	ProductionRunID string
	QRCodeID        string // único en todo el sistema
	ProductName     string
	ProductSKU      string
	Quantity        int
	Unit            string
	ProductionDate  time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
