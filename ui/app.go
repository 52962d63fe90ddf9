package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"careerflow/adapters/excel"
	"careerflow/app"
	"careerflow/internal/config"
	"careerflow/internal/errors"
	"careerflow/internal/linkedin"
	"careerflow/models"
)

//go:embed templates/*.html templates/fragments/*.html static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	jobs      *app.JobService
	stats     *app.StatsService
	letters   *app.CoverLetterService
	parser    *linkedin.Parser
	exporter  *excel.JobExporter
	templates *template.Template
	importCfg config.ImportConfig
	logger    *slog.Logger
}

// Deps bundles the collaborators the UI needs
type Deps struct {
	Jobs      *app.JobService
	Stats     *app.StatsService
	Letters   *app.CoverLetterService
	Parser    *linkedin.Parser
	Exporter  *excel.JobExporter
	ImportCfg config.ImportConfig
	Logger    *slog.Logger
}

// NewApp creates the UI application
func NewApp(deps Deps) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	funcMap := template.FuncMap{
		"fmtDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"fmt1": func(f float64) string {
			return fmt.Sprintf("%.1f", f)
		},
		"statuses": func() []models.JobStatus {
			return models.AllJobStatuses
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	a := &App{
		router:    chi.NewRouter(),
		jobs:      deps.Jobs,
		stats:     deps.Stats,
		letters:   deps.Letters,
		parser:    deps.Parser,
		exporter:  deps.Exporter,
		templates: templates,
		importCfg: deps.ImportCfg,
		logger:    deps.Logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/jobs/{id}/cover-letter", a.handleCoverLetter)

	// LinkedIn import (JSON swap contract)
	a.router.Post("/upload-linkedin", a.handleUploadLinkedIn)

	// Job mutations; respond with full page HTML for the swap client
	a.router.Post("/jobs/{id}/status", a.handleUpdateStatus)
	a.router.Post("/jobs/{id}/delete", a.handleDeleteJob)

	// Fragment endpoints for click-trigger refreshes
	a.router.Get("/fragments/jobs", a.handleJobsFragment)
	a.router.Get("/fragments/stats", a.handleStatsFragment)

	// Spreadsheet export
	a.router.Get("/export/xlsx", a.handleExport)
}

// Router returns the HTTP handler for mounting or testing.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.logger.Info("starting CareerFlow server", "addr", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate executes a template into a buffer first so a rendering error
// never leaks a half-written page.
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("template render failed", "template", templateName, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Error("response write failed", "template", templateName, "error", err)
	}
}

// renderFragment renders a fragment template to a string, for embedding in
// JSON responses.
func (a *App) renderFragment(templateName string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", errors.Wrap(err, "fragment render failed")
	}
	return buf.String(), nil
}
