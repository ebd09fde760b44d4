// Package telemetry clasifica lecturas IoT por el tipo fijo del dispositivo
// y las acumula en tres buffers (energía, agua, residuos) para inserción masiva.
package telemetry

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// Reading lectura cruda recibida de un dispositivo. Solo los campos del tipo del
// dispositivo se copian a la métrica; el resto se ignora.
type Reading struct {
	DeviceID  string // identificador externo
	Timestamp time.Time

	Kwh         *decimal.Decimal
	Voltage     *decimal.Decimal
	Current     *decimal.Decimal
	PowerFactor *decimal.Decimal

	FlowRate     *decimal.Decimal
	VolumeLiters *decimal.Decimal
	PH           *decimal.Decimal
	TDS          *decimal.Decimal
	Temperature  *decimal.Decimal

	WasteType      string
	WeightKg       *decimal.Decimal
	DisposalMethod string
	Notes          string
}

// Batch buffers por tabla destino.
type Batch struct {
	Energy []*entity.EnergyMetric
	Water  []*entity.WaterMetric
	Waste  []*entity.WasteMetric

	// LastPing mayor timestamp aceptado por dispositivo (ID interno).
	LastPing map[string]time.Time

	newID func() string
}

// NewBatch crea un lote vacío; newID genera los IDs de las métricas.
func NewBatch(newID func() string) *Batch {
	return &Batch{LastPing: make(map[string]time.Time), newID: newID}
}

// Add enruta r según dev.DeviceType. Devuelve error si falta un campo obligatorio
// del tipo (kwh, flow_rate, waste_type/weight_kg) o el tipo es desconocido.
func (b *Batch) Add(dev *entity.IoTDevice, r Reading) error {
	switch dev.DeviceType {
	case entity.DeviceTypeEnergy:
		if r.Kwh == nil {
			return fmt.Errorf("kwh es requerido para dispositivos ENERGY")
		}
		b.Energy = append(b.Energy, &entity.EnergyMetric{
			ID:          b.newID(),
			DeviceID:    dev.ID,
			Timestamp:   r.Timestamp,
			Kwh:         *r.Kwh,
			Voltage:     r.Voltage,
			Current:     r.Current,
			PowerFactor: r.PowerFactor,
		})
	case entity.DeviceTypeWater:
		if r.FlowRate == nil {
			return fmt.Errorf("flow_rate es requerido para dispositivos WATER")
		}
		b.Water = append(b.Water, &entity.WaterMetric{
			ID:           b.newID(),
			DeviceID:     dev.ID,
			Timestamp:    r.Timestamp,
			FlowRate:     *r.FlowRate,
			VolumeLiters: r.VolumeLiters,
			PH:           r.PH,
			TDS:          r.TDS,
			Temperature:  r.Temperature,
		})
	case entity.DeviceTypeWaste:
		if r.WasteType == "" || r.WeightKg == nil {
			return fmt.Errorf("waste_type y weight_kg son requeridos para dispositivos WASTE")
		}
		b.Waste = append(b.Waste, &entity.WasteMetric{
			ID:             b.newID(),
			FactoryID:      dev.FactoryID,
			DeviceID:       dev.ID,
			Timestamp:      r.Timestamp,
			WasteType:      r.WasteType,
			WeightKg:       *r.WeightKg,
			DisposalMethod: r.DisposalMethod,
			Notes:          r.Notes,
		})
	default:
		return fmt.Errorf("tipo de dispositivo desconocido: %s", dev.DeviceType)
	}
	if prev, ok := b.LastPing[dev.ID]; !ok || r.Timestamp.After(prev) {
		b.LastPing[dev.ID] = r.Timestamp
	}
	return nil
}

// Len total de métricas acumuladas.
func (b *Batch) Len() int {
	return len(b.Energy) + len(b.Water) + len(b.Waste)
}
