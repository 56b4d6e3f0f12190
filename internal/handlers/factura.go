package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/HectorEmCode/facturacionjtt/httpx"
	"github.com/HectorEmCode/facturacionjtt/i18n"
	"github.com/HectorEmCode/facturacionjtt/internal/middleware"
	"github.com/HectorEmCode/facturacionjtt/internal/models"
	pdfgen "github.com/HectorEmCode/facturacionjtt/internal/pdf"
	"github.com/HectorEmCode/facturacionjtt/internal/services"
	"github.com/HectorEmCode/facturacionjtt/validation"
	"github.com/HectorEmCode/facturacionjtt/view"
	"gorm.io/gorm"
)

// FacturaHandler serves the invoice views: list, creation, detail, payment
// registration and PDF export. HTML is the canonical surface; list and
// detail also answer JSON under Accept negotiation.
type FacturaHandler struct {
	DB       *gorm.DB
	Svc      *services.FacturaService
	LogoPath string
}

func NewFacturaHandler(db *gorm.DB, svc *services.FacturaService, logoPath string) *FacturaHandler {
	return &FacturaHandler{DB: db, Svc: svc, LogoPath: logoPath}
}

// facturaRow augments an invoice with the derived values the list view shows.
type facturaRow struct {
	models.Factura
	Numero string
	Saldo  float64
}

// List: GET / – HTML or JSON
func (h *FacturaHandler) List(w http.ResponseWriter, r *http.Request) {
	var facturas []models.Factura
	if err := h.DB.Preload("Abonos").Order("id desc").Find(&facturas).Error; err != nil {
		h.serverError(w, r, "failed_to_list_facturas", err)
		return
	}
	if httpx.WantsJSON(r) {
		items := make([]map[string]any, 0, len(facturas))
		for i := range facturas {
			f := &facturas[i]
			items = append(items, map[string]any{
				"id":       f.ID,
				"numero":   h.Svc.NumeroFactura(f.ID),
				"cliente":  f.Cliente,
				"articulo": f.Articulo,
				"total":    f.Total,
				"saldo":    h.Svc.SaldoPendiente(f, f.Abonos),
			})
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
		return
	}
	rows := make([]facturaRow, 0, len(facturas))
	for i := range facturas {
		f := &facturas[i]
		rows = append(rows, facturaRow{
			Factura: *f,
			Numero:  h.Svc.NumeroFactura(f.ID),
			Saldo:   h.Svc.SaldoPendiente(f, f.Abonos),
		})
	}
	data := map[string]any{"Facturas": rows}
	if f := middleware.PopFlash(w, r); f != nil {
		data["Flash"] = f
	}
	if err := view.Render(w, r, "index.html", data); err != nil {
		h.renderError(w, err)
	}
}

// Nueva: GET/POST /factura/nueva – creation view and form submission
func (h *FacturaHandler) Nueva(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.List(w, r)
		return
	}
	lang := middleware.LangFrom(r)

	var (
		cliente, articulo, nota string
		cantidad                = 1
		precio                  float64
	)
	violations := validation.Violations{}
	ct := r.Header.Get("Content-Type")
	wantsJSON := strings.Contains(ct, "application/json")
	if wantsJSON {
		var req struct {
			Cliente  string   `json:"cliente"`
			Articulo string   `json:"articulo"`
			Cantidad *int     `json:"cantidad"`
			Precio   *float64 `json:"precio"`
			Notas    string   `json:"notas"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		cliente, articulo, nota = req.Cliente, req.Articulo, req.Notas
		if req.Cantidad != nil {
			cantidad = *req.Cantidad
		}
		if req.Precio != nil {
			precio = *req.Precio
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		cliente = r.Form.Get("cliente")
		articulo = r.Form.Get("articulo")
		nota = r.Form.Get("nota")
		cantidad = validation.ParseInt("cantidad", r.Form.Get("cantidad"), 1, violations)
		precio = validation.ParseFloat("precio", r.Form.Get("precio"), 0, violations)
	}
	validation.Required("cliente", cliente, violations)
	validation.Required("articulo", articulo, violations)
	validation.MinInt("cantidad", cantidad, 1, violations)
	if precio < 0 {
		violations["precio"] = "must_not_be_negative"
	}
	if !violations.Empty() {
		if wantsJSON {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
			return
		}
		middleware.SetFlash(w, i18n.T(lang, "invalid_values"), "danger")
		http.Redirect(w, r, "/factura/nueva", http.StatusSeeOther)
		return
	}

	factura := models.Factura{
		Cliente:  cliente,
		Articulo: articulo,
		Cantidad: cantidad,
		Precio:   precio,
		Notas:    nota,
		Total:    h.Svc.ComputeTotal(cantidad, precio),
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&factura).Error
	})
	if err != nil {
		if wantsJSON {
			slog.Error("failed_to_create_factura", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_factura", nil)
			return
		}
		h.serverError(w, r, "failed_to_create_factura", err)
		return
	}
	if wantsJSON {
		httpx.JSON(w, http.StatusCreated, map[string]any{
			"id":     factura.ID,
			"numero": h.Svc.NumeroFactura(factura.ID),
			"total":  factura.Total,
		})
		return
	}
	middleware.SetFlash(w, i18n.T(lang, "invoice_created"), "success")
	http.Redirect(w, r, "/factura/nueva", http.StatusSeeOther)
}

// Show: GET /factura/{id} – HTML detail or JSON
func (h *FacturaHandler) Show(w http.ResponseWriter, r *http.Request) {
	factura, abonos, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, h.facturaJSON(factura, abonos))
		return
	}
	data := h.detailData(factura, abonos)
	if f := middleware.PopFlash(w, r); f != nil {
		data["Flash"] = f
	}
	if err := view.Render(w, r, "factura.html", data); err != nil {
		h.renderError(w, err)
	}
}

// Abonar: POST /factura/{id}/abonar – register a payment
func (h *FacturaHandler) Abonar(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	factura, _, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	violations := validation.Violations{}
	monto := validation.ParseFloat("monto", r.Form.Get("monto"), 0, violations)
	validation.PositiveFloat("monto", monto, violations)
	if !violations.Empty() {
		h.rejectAbono(w, r, factura.ID, lang)
		return
	}
	if _, err := h.Svc.RegistrarAbono(h.DB, factura.ID, monto); err != nil {
		if errors.Is(err, services.ErrMontoInvalido) {
			h.rejectAbono(w, r, factura.ID, lang)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "failed_to_register_abono", err)
		return
	}
	if httpx.WantsJSON(r) {
		var abonos []models.Abono
		_ = h.DB.Where("factura_id = ?", factura.ID).Find(&abonos).Error
		httpx.JSON(w, http.StatusCreated, h.facturaJSON(factura, abonos))
		return
	}
	// success renders the detail view directly with the fresh payment list
	var abonos []models.Abono
	if err := h.DB.Where("factura_id = ?", factura.ID).Order("id asc").Find(&abonos).Error; err != nil {
		h.serverError(w, r, "failed_to_load_abonos", err)
		return
	}
	data := h.detailData(factura, abonos)
	data["Flash"] = &middleware.Flash{
		Message: fmt.Sprintf(i18n.T(lang, "payment_registered"), view.FormatMoney(monto)),
		Level:   "success",
	}
	if err := view.Render(w, r, "factura.html", data); err != nil {
		h.renderError(w, err)
	}
}

// PDF: GET /factura/{id}/pdf – regenerate the printable document per request
func (h *FacturaHandler) PDF(w http.ResponseWriter, r *http.Request) {
	factura, abonos, ok := h.fetch(w, r)
	if !ok {
		return
	}
	lines := make([]pdfgen.AbonoLine, 0, len(abonos))
	for _, a := range abonos {
		lines = append(lines, pdfgen.AbonoLine{
			Fecha: a.CreatedAt.Format("02/01/2006 15:04"),
			Monto: view.FormatMoney(a.Monto),
		})
	}
	data := pdfgen.FacturaData{
		Numero:       h.Svc.NumeroFactura(factura.ID),
		Fecha:        factura.CreatedAt.Format("02/01/2006 15:04"),
		Cliente:      factura.Cliente,
		Articulo:     factura.Articulo,
		Cantidad:     factura.Cantidad,
		Precio:       view.FormatMoney(factura.Precio),
		Notas:        factura.Notas,
		Total:        view.FormatMoney(factura.Total),
		TotalAbonado: view.FormatMoney(h.Svc.TotalAbonado(abonos)),
		Saldo:        view.FormatMoney(h.Svc.SaldoPendiente(factura, abonos)),
		Abonos:       lines,
		LogoPath:     h.LogoPath,
	}
	out, err := pdfgen.FacturaPDF(data)
	if err != nil {
		h.serverError(w, r, "pdf_generation_failed", err)
		return
	}
	httpx.PDF(w, fmt.Sprintf("factura_%d.pdf", factura.ID), out)
}

// fetch loads the invoice addressed by the {id} path value plus its
// payments, answering 404 (or a 500 on storage failure) itself when it cannot.
func (h *FacturaHandler) fetch(w http.ResponseWriter, r *http.Request) (*models.Factura, []models.Abono, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.notFound(w, r)
		return nil, nil, false
	}
	var factura models.Factura
	if err := h.DB.First(&factura, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil, nil, false
		}
		h.serverError(w, r, "failed_to_load_factura", err)
		return nil, nil, false
	}
	var abonos []models.Abono
	if err := h.DB.Where("factura_id = ?", factura.ID).Order("id asc").Find(&abonos).Error; err != nil {
		h.serverError(w, r, "failed_to_load_abonos", err)
		return nil, nil, false
	}
	return &factura, abonos, true
}

func (h *FacturaHandler) rejectAbono(w http.ResponseWriter, r *http.Request, facturaID uint, lang string) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_amount", nil)
		return
	}
	middleware.SetFlash(w, i18n.T(lang, "invalid_amount"), "danger")
	http.Redirect(w, r, fmt.Sprintf("/factura/%d", facturaID), http.StatusSeeOther)
}

// serverError logs the failure and answers a generic 500 in the format the
// client negotiates. Internal error detail stays in the log.
func (h *FacturaHandler) serverError(w http.ResponseWriter, r *http.Request, code string, err error) {
	slog.Error(code, "error", err)
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusInternalServerError, code, nil)
		return
	}
	http.Error(w, "error interno del servidor", http.StatusInternalServerError)
}

// renderError covers failures after template execution has started writing;
// the response may be partially sent, so only a plain 500 line is appended.
func (h *FacturaHandler) renderError(w http.ResponseWriter, err error) {
	slog.Error("template_render_failed", "error", err)
	http.Error(w, "error interno del servidor", http.StatusInternalServerError)
}

func (h *FacturaHandler) notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	http.NotFound(w, r)
}

func (h *FacturaHandler) detailData(factura *models.Factura, abonos []models.Abono) map[string]any {
	return map[string]any{
		"Factura":      factura,
		"Abonos":       abonos,
		"Numero":       h.Svc.NumeroFactura(factura.ID),
		"TotalAbonado": h.Svc.TotalAbonado(abonos),
		"Saldo":        h.Svc.SaldoPendiente(factura, abonos),
	}
}

func (h *FacturaHandler) facturaJSON(factura *models.Factura, abonos []models.Abono) map[string]any {
	pagos := make([]map[string]any, 0, len(abonos))
	for _, a := range abonos {
		pagos = append(pagos, map[string]any{"id": a.ID, "monto": a.Monto, "fecha": a.CreatedAt})
	}
	return map[string]any{
		"id":            factura.ID,
		"numero":        h.Svc.NumeroFactura(factura.ID),
		"cliente":       factura.Cliente,
		"articulo":      factura.Articulo,
		"cantidad":      factura.Cantidad,
		"precio":        factura.Precio,
		"notas":         factura.Notas,
		"total":         factura.Total,
		"total_abonado": h.Svc.TotalAbonado(abonos),
		"saldo":         h.Svc.SaldoPendiente(factura, abonos),
		"abonos":        pagos,
	}
}
