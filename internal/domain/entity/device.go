package entity

import "time"

// Tipos de dispositivo. El tipo se fija al crear y decide la tabla de métricas.
const (
	DeviceTypeEnergy = "ENERGY"
	DeviceTypeWater  = "WATER"
	DeviceTypeWaste  = "WASTE"
)

// IoTDevice sensor instalado en una fábrica.
type IoTDevice struct {
	ID         string
	FactoryID  string
	DeviceName string
	DeviceID   string // identificador externo, único en todo el sistema
	DeviceType string
	Location   string
	IsActive   bool
	LastPing   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsValidDeviceType indica si t es un tipo de dispositivo soportado.
func IsValidDeviceType(t string) bool {
	switch t {
	case DeviceTypeEnergy, DeviceTypeWater, DeviceTypeWaste:
		return true
	}
	return false
}
