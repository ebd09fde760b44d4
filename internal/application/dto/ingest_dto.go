package dto

import "github.com/shopspring/decimal"

// IoTReadingRequest una lectura de sensor. Los campos numéricos son opcionales;
// solo se usan los que corresponden al tipo del dispositivo.
type IoTReadingRequest struct {
	DeviceID  string `json:"device_id"`
	Timestamp string `json:"timestamp"`

	Kwh         *decimal.Decimal `json:"kwh,omitempty"`
	Voltage     *decimal.Decimal `json:"voltage,omitempty"`
	Current     *decimal.Decimal `json:"current,omitempty"`
	PowerFactor *decimal.Decimal `json:"power_factor,omitempty"`

	FlowRate     *decimal.Decimal `json:"flow_rate,omitempty"`
	VolumeLiters *decimal.Decimal `json:"volume_liters,omitempty"`
	PH           *decimal.Decimal `json:"ph,omitempty"`
	TDS          *decimal.Decimal `json:"tds,omitempty"`
	Temperature  *decimal.Decimal `json:"temperature,omitempty"`

	WasteType      string           `json:"waste_type,omitempty"`
	WeightKg       *decimal.Decimal `json:"weight_kg,omitempty"`
	DisposalMethod string           `json:"disposal_method,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// IngestResult resumen de un lote: success + failed == cantidad de lecturas recibidas.
type IngestResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
