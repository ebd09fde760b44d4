package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnergyMetric lectura de un medidor de energía. Solo se agrega, nunca se modifica.
type EnergyMetric struct {
	ID          string
	DeviceID    string // ID interno del IoTDevice
	Timestamp   time.Time
	Kwh         decimal.Decimal
	Voltage     *decimal.Decimal
	Current     *decimal.Decimal
	PowerFactor *decimal.Decimal
}

// WaterMetric lectura de un medidor de agua.
type WaterMetric struct {
	ID           string
	DeviceID     string
	Timestamp    time.Time
	FlowRate     decimal.Decimal
	VolumeLiters *decimal.Decimal
	PH           *decimal.Decimal
	TDS          *decimal.Decimal
	Temperature  *decimal.Decimal
}

// WasteMetric registro de residuos; se indexa por fábrica.
type WasteMetric struct {
	ID             string
	FactoryID      string
	DeviceID       string
	Timestamp      time.Time
	WasteType      string
	WeightKg       decimal.Decimal
	DisposalMethod string
	Notes          string
}
