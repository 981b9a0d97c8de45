package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names; each has a templates/<name>.html file.
const (
	PagePools     = "pools"
	PageTxQueue   = "tx_queue"
	PageAnalytics = "analytics"
	PageSwap      = "swap"
	PageLiquidity = "liquidity"
	PageEarn      = "earn"
	PageAbout     = "about"
)

var pageNames = []string{PagePools, PageTxQueue, PageAnalytics, PageSwap, PageLiquidity, PageEarn, PageAbout}

// Page is the data every template receives. Path marks the active nav link.
type Page struct {
	Title  string
	Path   string
	Data   any
	Errors []string
}

// Renderer implements echo.Renderer over the embedded templates. Each page
// is parsed into its own clone of the layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// RendererOption configures NewRenderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	liveDiagnostics bool
}

// WithLiveDiagnostics adds the script that forwards /ws/diagnostics to the
// browser console.
func WithLiveDiagnostics(enabled bool) RendererOption {
	return func(c *rendererConfig) {
		c.liveDiagnostics = enabled
	}
}

func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	layout, err := template.New("layout.html").Funcs(template.FuncMap{
		"nav":   Navigation,
		"brand": func() string { return Brand },
		"usd":   FormatLiquidity,
		"avg":   FormatAverage,
		"live":  func() bool { return cfg.liveDiagnostics },
	}).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout with the named page's content block.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// FormatLiquidity groups thousands, e.g. 1000000 -> "1,000,000".
func FormatLiquidity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return humanize.Commaf(v)
}

// FormatAverage prints two decimals. NaN prints as "NaN".
func FormatAverage(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
