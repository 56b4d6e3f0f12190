package view

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HectorEmCode/facturacionjtt/i18n"
	"github.com/HectorEmCode/facturacionjtt/internal/config"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver = func(_ *http.Request) string { return "es" }
)

// SetLangResolver allows the host app to provide a custom language resolver
// (e.g., reading from middleware context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// FormatMoney renders an amount in the fixed display convention RD$#,##0.00.
func FormatMoney(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := cents / 100
	frac := cents % 100
	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sRD$%s.%02d", sign, b.String(), frac)
}

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	return funcsFor(langResolver(r))
}

func funcsFor(lang string) template.FuncMap {
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"lang":  func() string { return lang },
		"money": FormatMoney,
		"mul":   func(a, b float64) float64 { return a * b },
		"add":   func(a, b float64) float64 { return a + b },
		"year":  func() int { return time.Now().Year() },
		"fecha": func(ts time.Time) string { return ts.Format("02/01/2006 15:04") },
	}
}

// Render parses and executes a single template file with shared funcs,
// wrapping it in layout.html when present. name should be the filename
// (e.g., "index.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	// Templates bake the request language into their func map, so the
	// cache must be keyed per language as well as per file.
	lang := langResolver(r)
	key := name + "|" + lang
	devMode := config.ParseBool("DEV", false)
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		// Attempt dynamic fallback search across relative parent levels
		candidates := []string{
			filepath.Join("templates", name),
			filepath.Join("../templates", name),
			filepath.Join("../../templates", name),
			filepath.Join("../../../templates", name),
		}
		found := false
		for _, c := range candidates {
			if fi, e2 := os.Stat(c); e2 == nil && !fi.IsDir() {
				mainPath = c
				baseDir = filepath.Dir(c)
				found = true
				break
			}
		}
		if !found {
			return err
		}
	}
	funcMap := funcsFor(lang)
	var t *template.Template
	layoutPath := filepath.Join(baseDir, "layout.html")
	if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
		parsed, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, mainPath)
		if err != nil {
			return err
		}
		t = parsed
	} else {
		parsed, err := template.New(name).Funcs(funcMap).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	if t == nil {
		return errors.New("template not cached")
	}
	return t.Execute(w, data)
}
