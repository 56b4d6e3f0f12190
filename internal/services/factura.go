package services

import (
	"errors"
	"fmt"

	"github.com/HectorEmCode/facturacionjtt/internal/models"
	"gorm.io/gorm"
)

// ErrMontoInvalido is returned when a payment amount is zero, negative, or
// exceeds the outstanding balance of the invoice.
var ErrMontoInvalido = errors.New("monto inválido")

// FacturaService encapsulates invoice business rules. Derived amounts are
// pure functions over (factura, abonos) so they can never go stale.
type FacturaService struct{}

func NewFacturaService() *FacturaService { return &FacturaService{} }

// ComputeTotal returns the invoice total for a quantity and unit price.
func (s *FacturaService) ComputeTotal(cantidad int, precio float64) float64 {
	return float64(cantidad) * precio
}

// TotalAbonado sums the amounts of the given payments.
func (s *FacturaService) TotalAbonado(abonos []models.Abono) float64 {
	var total float64
	for _, a := range abonos {
		total += a.Monto
	}
	return total
}

// SaldoPendiente returns the outstanding balance of an invoice given its
// payments.
func (s *FacturaService) SaldoPendiente(factura *models.Factura, abonos []models.Abono) float64 {
	if factura == nil {
		return 0
	}
	return factura.Total - s.TotalAbonado(abonos)
}

// NumeroFactura formats the display identifier for an invoice id.
func (s *FacturaService) NumeroFactura(id uint) string {
	return fmt.Sprintf("JTT-%05d", id)
}

// RegistrarAbono validates and persists a payment against an invoice. The
// balance check and the insert run in one transaction; the payment sum is
// re-read inside it so a concurrent payment committed in between cannot push
// the balance negative on engines that serialize writers.
// Returns gorm.ErrRecordNotFound if the invoice does not exist and
// ErrMontoInvalido if the amount is not in (0, saldo pendiente].
func (s *FacturaService) RegistrarAbono(db *gorm.DB, facturaID uint, monto float64) (*models.Abono, error) {
	if monto <= 0 {
		return nil, ErrMontoInvalido
	}
	var abono models.Abono
	err := db.Transaction(func(tx *gorm.DB) error {
		var factura models.Factura
		if err := tx.First(&factura, facturaID).Error; err != nil {
			return err
		}
		var abonado float64
		if err := tx.Model(&models.Abono{}).
			Where("factura_id = ?", facturaID).
			Select("COALESCE(SUM(monto), 0)").
			Scan(&abonado).Error; err != nil {
			return err
		}
		if monto > factura.Total-abonado {
			return ErrMontoInvalido
		}
		abono = models.Abono{FacturaID: facturaID, Monto: monto}
		return tx.Create(&abono).Error
	})
	if err != nil {
		return nil, err
	}
	return &abono, nil
}
