package view

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "RD$0.00"},
		{30, "RD$30.00"},
		{1234.5, "RD$1,234.50"},
		{1234567.89, "RD$1,234,567.89"},
		{-42.1, "-RD$42.10"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderCachePerLanguage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "list.html"), []byte(`{{ t "invoices" }}`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	ResetForTests()
	SetBaseDir(dir)
	SetLangResolver(func(r *http.Request) string {
		if l := r.URL.Query().Get("lang"); l != "" {
			return l
		}
		return "es"
	})
	t.Cleanup(func() {
		ResetForTests()
		SetLangResolver(func(*http.Request) string { return "es" })
	})

	w := httptest.NewRecorder()
	if err := Render(w, httptest.NewRequest(http.MethodGet, "/", nil), "list.html", nil); err != nil {
		t.Fatalf("render es: %v", err)
	}
	if !strings.Contains(w.Body.String(), "Facturas") {
		t.Fatalf("expected Spanish render, got %q", w.Body.String())
	}

	// second render must not reuse the Spanish-bound template
	w = httptest.NewRecorder()
	if err := Render(w, httptest.NewRequest(http.MethodGet, "/?lang=en", nil), "list.html", nil); err != nil {
		t.Fatalf("render en: %v", err)
	}
	if !strings.Contains(w.Body.String(), "Invoices") {
		t.Fatalf("expected English render after language switch, got %q", w.Body.String())
	}
}
