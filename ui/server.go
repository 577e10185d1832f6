package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"datalens/internal"
	"datalens/internal/cache"
	"datalens/internal/config"
	"datalens/internal/session"
	"datalens/ports"
)

//go:embed templates/*.html templates/fragments/*.html
var embeddedFiles embed.FS

// Server represents the web server for the dataset explorer UI
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	loader   ports.DatasetLoader
	cards    ports.CardFetcher
	cache    *cache.Cache
	sessions *session.Holder
	log      *internal.Logger
}

// NewServer creates a new web server instance wired to a dataset loader
func NewServer(cfg *config.Config, loader ports.DatasetLoader, cards ports.CardFetcher) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.Default()
	router.SetHTMLTemplate(templates)

	s := &Server{
		router:   router,
		cfg:      cfg,
		loader:   loader,
		cards:    cards,
		cache:    cache.New(cfg.Cache.TTL),
		sessions: session.NewHolder(),
		log:      internal.DefaultLogger,
	}
	s.setupRoutes()
	return s, nil
}

// parseTemplates loads the embedded templates with the helper FuncMap the
// chart fragments rely on (CSS bar widths, heatmap colors, canvas data).
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"mul": func(a, b float64) float64 { return a * b },
		"pct": func(value, max float64) float64 {
			if max <= 0 {
				return 0
			}
			return value / max * 100
		},
		"pctOf": func(count, max int) float64 {
			if max <= 0 {
				return 0
			}
			return float64(count) / float64(max) * 100
		},
		"fmt2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"fmt1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"heat": heatColor,
		"json": func(v interface{}) template.JS {
			raw, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(raw)
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles,
		"templates/*.html", "templates/fragments/*.html")
}

// heatColor maps a correlation in [-1, 1] onto a blue/orange scale.
func heatColor(r float64) template.CSS {
	if r < -1 {
		r = -1
	}
	if r > 1 {
		r = 1
	}
	if r >= 0 {
		// white -> blue
		c := int(255 - r*160)
		return template.CSS(fmt.Sprintf("rgb(%d,%d,255)", c, c))
	}
	// white -> orange
	c := int(255 + r*160)
	return template.CSS(fmt.Sprintf("rgb(255,%d,%d)", 255+int(r*90), c))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/load", s.handleLoad)
	s.router.GET("/columns", s.handleColumns)
	s.router.GET("/viz", s.handleViz)
	s.router.GET("/export", s.handleExport)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server on the configured port.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("starting dataset explorer on http://localhost%s", addr)
	return s.router.Run(addr)
}
