package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, "Abono de RD$30.00 registrado con éxito.", "success")

	read := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set.Result().Cookies() {
		read.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f := PopFlash(w, read)
	if f == nil {
		t.Fatalf("expected flash")
	}
	if f.Message != "Abono de RD$30.00 registrado con éxito." || f.Level != "success" {
		t.Fatalf("unexpected flash: %#v", f)
	}
	// PopFlash must expire the cookies
	expired := 0
	for _, c := range w.Result().Cookies() {
		if (c.Name == "flash" || c.Name == "flash_level") && c.MaxAge < 0 {
			expired++
		}
	}
	if expired != 2 {
		t.Fatalf("expected both flash cookies expired, got %d", expired)
	}
}

func TestPopFlashAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	if f := PopFlash(w, r); f != nil {
		t.Fatalf("expected nil flash, got %#v", f)
	}
}

func TestPrefsLang(t *testing.T) {
	var got string
	h := Prefs(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = LangFrom(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got != "es" {
		t.Fatalf("expected default es got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got != "en" {
		t.Fatalf("expected en got %q", got)
	}
}
