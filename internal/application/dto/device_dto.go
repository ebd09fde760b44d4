package dto

import "time"

// CreateDeviceRequest entrada para registrar un dispositivo IoT en una fábrica.
type CreateDeviceRequest struct {
	FactoryID  string `json:"factory_id" validate:"required,uuid"`
	DeviceName string `json:"device_name" validate:"required,max=200"`
	DeviceID   string `json:"device_id" validate:"required,max=100"`
	DeviceType string `json:"device_type" validate:"required,oneof=ENERGY WATER WASTE"`
	Location   string `json:"location"`
}

// UpdateDeviceRequest campos editables. device_type no existe aquí: es inmutable.
type UpdateDeviceRequest struct {
	FactoryID  *string `json:"factory_id" validate:"omitempty,uuid"`
	DeviceName *string `json:"device_name" validate:"omitempty,min=1,max=200"`
	DeviceID   *string `json:"device_id" validate:"omitempty,min=1,max=100"`
	Location   *string `json:"location"`
	IsActive   *bool   `json:"is_active"`
}

// DeviceResponse salida de un dispositivo.
type DeviceResponse struct {
	ID         string     `json:"id"`
	FactoryID  string     `json:"factory_id"`
	DeviceName string     `json:"device_name"`
	DeviceID   string     `json:"device_id"`
	DeviceType string     `json:"device_type"`
	Location   string     `json:"location"`
	IsActive   bool       `json:"is_active"`
	LastPing   *time.Time `json:"last_ping"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DeviceListResponse lista paginada de dispositivos.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
