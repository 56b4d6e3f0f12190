package models

import "time"

// Factura is a billable record for a client: one item, a quantity, a unit
// price and the total computed at creation time. Partial payments are tracked
// as Abonos.
type Factura struct {
	ID        uint    `gorm:"primaryKey"`
	Cliente   string  `gorm:"size:100;not null"`
	Articulo  string  `gorm:"size:200;not null"`
	Cantidad  int     `gorm:"not null;default:1"`
	Precio    float64 `gorm:"not null"`
	Notas     string  `gorm:"type:text"`
	Total     float64 `gorm:"not null"` // Cantidad * Precio, fixed at creation
	Abonos    []Abono `gorm:"foreignKey:FacturaID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
