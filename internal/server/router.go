package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/HectorEmCode/facturacionjtt/httpx"
	"github.com/HectorEmCode/facturacionjtt/internal/handlers"
	"github.com/HectorEmCode/facturacionjtt/internal/middleware"
	"github.com/HectorEmCode/facturacionjtt/internal/services"
	"github.com/HectorEmCode/facturacionjtt/view"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, logoPath string) http.Handler {
	// Inject the language resolver so the view package stays decoupled from
	// the middleware package while still reflecting user preferences.
	view.SetLangResolver(middleware.LangFrom)

	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Invoice endpoints
	svc := services.NewFacturaService()
	fh := handlers.NewFacturaHandler(db, svc, logoPath)
	mux.HandleFunc("GET /{$}", fh.List)
	mux.HandleFunc("GET /factura/nueva", fh.Nueva)
	mux.HandleFunc("POST /factura/nueva", fh.Nueva)
	mux.HandleFunc("GET /factura/{id}", fh.Show)
	mux.HandleFunc("POST /factura/{id}/abonar", fh.Abonar)
	mux.HandleFunc("GET /factura/{id}/pdf", fh.PDF)

	// static assets (logo, CSS)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "path", r.URL.Path, "panic", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
