package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hierview/internal"
	"hierview/internal/errors"
)

// App is the viewer-only UI: it serves a document that an earlier build already
// cached and never reads the source spreadsheet.
type App struct {
	router *chi.Mux
	store  DocumentReader
	pages  *pageRenderer
	config Config
	logger *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port  string
	Title string
}

// NewApp creates a new UI application
func NewApp(config Config, store DocumentReader, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	logger = logger.With("viewer")

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	app := &App{
		router: chi.NewRouter(),
		store:  store,
		pages:  &pageRenderer{templates: templates, logger: logger},
		config: config,
		logger: logger,
	}

	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := staticFiles()
	if err != nil {
		return errors.Wrap(err, "failed to create static filesystem")
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/data", a.handleData)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves on the configured port until ctx is cancelled
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, a.logger)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.pages.render(w, r, indexTemplate, PageData{
		Title:   a.config.Title,
		DataURL: "/data",
	})
}

func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	root, err := a.store.Read(r.Context())
	if err == nil {
		var body []byte
		if body, err = json.Marshal(root); err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
	}

	a.logger.Error("[API] Failed to read hierarchy document: %v", err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Failed to read hierarchy data",
		"code":  errors.GetCode(err),
	})
}
