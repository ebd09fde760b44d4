package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factory planta productiva de una empresa. Es dueña de corridas de producción y dispositivos IoT.
type Factory struct {
	ID            string
	CompanyID     string
	Name          string
	Address       string
	City          string
	Country       string
	Latitude      *decimal.Decimal // DECIMAL(10,7)
	Longitude     *decimal.Decimal
	ContactPerson string
	ContactEmail  string
	ContactPhone  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
