// Package i18n holds the message catalog for the application. Spanish is the
// default and fallback language; English is available behind the lang
// preference.
package i18n

import "strings"

var translations = map[string]map[string]string{
	"es": {
		"app_title":          "Facturación JTT",
		"invoices":           "Facturas",
		"new_invoice":        "Nueva factura",
		"client":             "Cliente",
		"item":               "Artículo",
		"quantity":           "Cantidad",
		"price":              "Precio",
		"notes":              "Notas",
		"total":              "Total",
		"date":               "Fecha",
		"amount":             "Monto",
		"paid":               "Total abonado",
		"balance":            "Saldo pendiente",
		"payments":           "Abonos",
		"register_payment":   "Registrar abono",
		"create":             "Crear",
		"view":               "Ver",
		"pdf":                "PDF",
		"no_invoices":        "No hay facturas registradas.",
		"required":           "Requerido",
		"invoice_created":    "Factura creada con éxito.",
		"invalid_values":     "Error en los valores ingresados.",
		"invalid_amount":     "Monto inválido",
		"payment_registered": "Abono de %s registrado con éxito.",
		"not_found":          "No encontrado",
	},
	"en": {
		"app_title":          "JTT Invoicing",
		"invoices":           "Invoices",
		"new_invoice":        "New invoice",
		"client":             "Client",
		"item":               "Item",
		"quantity":           "Quantity",
		"price":              "Price",
		"notes":              "Notes",
		"total":              "Total",
		"date":               "Date",
		"amount":             "Amount",
		"paid":               "Total paid",
		"balance":            "Outstanding balance",
		"payments":           "Payments",
		"register_payment":   "Register payment",
		"create":             "Create",
		"view":               "View",
		"pdf":                "PDF",
		"no_invoices":        "No invoices recorded.",
		"required":           "Required",
		"invoice_created":    "Invoice created successfully.",
		"invalid_values":     "Invalid values entered.",
		"invalid_amount":     "Invalid amount",
		"payment_registered": "Payment of %s registered successfully.",
		"not_found":          "Not found",
	},
}

const defaultLang = "es"

// T translates code for lang. Unknown languages fall back to Spanish;
// unknown codes fall back to the code itself so missing entries are visible.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := translations[defaultLang][code]; ok {
		return msg
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return defaultLang
	}
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := translations[base]; ok {
			return base
		}
	}
	return defaultLang
}
