package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRun corrida de producción en una fábrica.
type ProductionRun struct {
	ID            string
	FactoryID     string
	RunNumber     string
	ProductType   string
	StartDate     time.Time
	EndDate       *time.Time
	UnitsProduced int
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductionRunInput vínculo corrida ↔ lote de materia prima con la cantidad consumida.
type ProductionRunInput struct {
	ID                 string
	ProductionRunID    string
	RawMaterialBatchID string
	QuantityUsed       decimal.Decimal
	Unit               string
	CreatedAt          time.Time
}
