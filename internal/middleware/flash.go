package middleware

import (
	"net/http"
	"net/url"
	"time"
)

// Flash holds a one-shot user-facing message surviving exactly one redirect.
type Flash struct {
	Message string
	Level   string // "success" or "danger"
}

// SetFlash stores a flash message in short-lived cookies.
func SetFlash(w http.ResponseWriter, message, level string) {
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: url.QueryEscape(message), Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "flash_level", Value: level, Path: "/"})
}

// PopFlash reads and expires the flash cookies, returning nil when absent.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie("flash")
	if err != nil || c.Value == "" {
		return nil
	}
	msg := c.Value
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		msg = dec
	}
	level := "success"
	if lc, lerr := r.Cookie("flash_level"); lerr == nil && lc.Value != "" {
		level = lc.Value
	}
	expire := func(name string) {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	}
	expire("flash")
	expire("flash_level")
	return &Flash{Message: msg, Level: level}
}
