package ui

import (
	"context"
	"net/http"
	"time"

	"hierview/internal"
	"hierview/internal/errors"

	"github.com/gin-gonic/gin"
)

// ServerConfig holds the settings the web server needs
type ServerConfig struct {
	GinMode string
	Title   string
}

// Server serves the visualization page and the cached hierarchy document
type Server struct {
	router *gin.Engine
	store  DocumentReader
	pages  *pageRenderer
	title  string
	logger *internal.Logger
}

// NewServer creates a new web server instance. The store is the only source of
// hierarchy data; the server keeps no copy of it between requests.
func NewServer(config ServerConfig, store DocumentReader, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	logger = logger.With("server")

	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		router: gin.New(),
		store:  store,
		pages:  &pageRenderer{templates: templates, logger: logger},
		title:  config.Title,
		logger: logger,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/data", s.handleData)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, s.logger)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.pages.render(c.Writer, c.Request, indexTemplate, PageData{
		Title:   s.title,
		DataURL: "/data",
	})
}

func (s *Server) handleData(c *gin.Context) {
	root, err := s.store.Read(c.Request.Context())
	if err != nil {
		s.logger.Error("[API] Failed to read hierarchy document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read hierarchy data",
			"code":  errors.GetCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, root)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
