package models

import "time"

// Abono is a partial payment applied against a Factura. Rows are immutable
// once created.
type Abono struct {
	ID        uint    `gorm:"primaryKey"`
	FacturaID uint    `gorm:"not null;index"` // FK hacia Factura
	Monto     float64 `gorm:"not null"`
	CreatedAt time.Time
}
