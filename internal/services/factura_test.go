package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/HectorEmCode/facturacionjtt/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Factura{}, &models.Abono{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestComputeTotal(t *testing.T) {
	svc := NewFacturaService()
	if got := svc.ComputeTotal(3, 10.0); got != 30.0 {
		t.Fatalf("expected 30.0 got %v", got)
	}
	if got := svc.ComputeTotal(1, 0); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestSaldoPendiente(t *testing.T) {
	svc := NewFacturaService()
	factura := &models.Factura{Total: 100}
	abonos := []models.Abono{{Monto: 25}, {Monto: 30.5}}
	if got := svc.TotalAbonado(abonos); got != 55.5 {
		t.Fatalf("expected 55.5 got %v", got)
	}
	if got := svc.SaldoPendiente(factura, abonos); got != 44.5 {
		t.Fatalf("expected 44.5 got %v", got)
	}
	if got := svc.SaldoPendiente(factura, nil); got != 100 {
		t.Fatalf("expected 100 got %v", got)
	}
}

func TestNumeroFactura(t *testing.T) {
	svc := NewFacturaService()
	if got := svc.NumeroFactura(5); got != "JTT-00005" {
		t.Fatalf("expected JTT-00005 got %q", got)
	}
	if got := svc.NumeroFactura(123456); got != "JTT-123456" {
		t.Fatalf("expected JTT-123456 got %q", got)
	}
}

func TestRegistrarAbono(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFacturaService()
	factura := models.Factura{Cliente: "Ana", Articulo: "Widget", Cantidad: 3, Precio: 10, Total: 30}
	if err := db.Create(&factura).Error; err != nil {
		t.Fatalf("create factura: %v", err)
	}

	// amount above balance rejected, no row persisted
	if _, err := svc.RegistrarAbono(db, factura.ID, 31); !errors.Is(err, ErrMontoInvalido) {
		t.Fatalf("expected ErrMontoInvalido got %v", err)
	}
	// amount <= 0 rejected
	if _, err := svc.RegistrarAbono(db, factura.ID, 0); !errors.Is(err, ErrMontoInvalido) {
		t.Fatalf("expected ErrMontoInvalido for 0 got %v", err)
	}
	if _, err := svc.RegistrarAbono(db, factura.ID, -5); !errors.Is(err, ErrMontoInvalido) {
		t.Fatalf("expected ErrMontoInvalido for -5 got %v", err)
	}
	var count int64
	db.Model(&models.Abono{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected payments must not persist rows, found %d", count)
	}

	// full payment accepted
	abono, err := svc.RegistrarAbono(db, factura.ID, 30)
	if err != nil {
		t.Fatalf("valid payment: %v", err)
	}
	if abono.ID == 0 || abono.Monto != 30 {
		t.Fatalf("unexpected abono: %#v", abono)
	}
	var abonos []models.Abono
	if err := db.Where("factura_id = ?", factura.ID).Find(&abonos).Error; err != nil {
		t.Fatalf("load abonos: %v", err)
	}
	if len(abonos) != 1 {
		t.Fatalf("expected 1 abono got %d", len(abonos))
	}
	if saldo := svc.SaldoPendiente(&factura, abonos); saldo != 0 {
		t.Fatalf("expected saldo 0 got %v", saldo)
	}

	// further payment against a zero balance rejected
	if _, err := svc.RegistrarAbono(db, factura.ID, 5); !errors.Is(err, ErrMontoInvalido) {
		t.Fatalf("expected ErrMontoInvalido on zero balance got %v", err)
	}
	db.Model(&models.Abono{}).Count(&count)
	if count != 1 {
		t.Fatalf("payment count changed after rejection: %d", count)
	}
}

func TestRegistrarAbonoMissingFactura(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFacturaService()
	if _, err := svc.RegistrarAbono(db, 999, 10); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound got %v", err)
	}
}

func TestRegistrarAbonoPartialSequence(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFacturaService()
	factura := models.Factura{Cliente: "Luis", Articulo: "Servicio", Cantidad: 2, Precio: 50, Total: 100}
	if err := db.Create(&factura).Error; err != nil {
		t.Fatalf("create factura: %v", err)
	}
	for _, monto := range []float64{40, 35, 25} {
		if _, err := svc.RegistrarAbono(db, factura.ID, monto); err != nil {
			t.Fatalf("payment %v: %v", monto, err)
		}
	}
	var abonos []models.Abono
	db.Where("factura_id = ?", factura.ID).Find(&abonos)
	if len(abonos) != 3 {
		t.Fatalf("expected 3 abonos got %d", len(abonos))
	}
	if saldo := svc.SaldoPendiente(&factura, abonos); saldo != 0 {
		t.Fatalf("expected saldo 0 got %v", saldo)
	}
}
