// file: internal/server/server.go
// version: 2.0.0
// guid: 6e7f8a9b-0c1d-2e3f-4a5b-6c7d8e9f0a1b

// Package server exposes the collection and the import pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/enrich"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/metrics"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/server/middleware"
)

// Config holds server configuration
type Config struct {
	Addr              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestsPerMinute int
	Burst             int
}

// Deps are the services the handlers delegate to.
type Deps struct {
	Store    database.Store
	Importer *importer.Importer
	Enricher *enrich.Service
	// Discogs is nil when no token is configured; the Discogs routes then
	// return 503.
	Discogs CollectionSource
}

// CollectionSource is the part of the Discogs client the server uses.
type CollectionSource interface {
	enrich.ReleaseSource
	FetchCollection(ctx context.Context, username string) ([]models.Album, error)
}

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       Deps
	username   string
}

// New creates a server with routes and middleware wired.
func New(deps Deps, discogsUsername string, requestsPerMinute, burst int) *Server {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	if requestsPerMinute > 0 {
		router.Use(middleware.NewIPRateLimiter(requestsPerMinute, burst).Middleware())
	}

	metrics.Register()

	s := &Server{
		router:   router,
		deps:     deps,
		username: discogsUsername,
	}
	s.setupRoutes()
	return s
}

// Router exposes the gin engine, used by tests.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/albums", s.listAlbums)
		api.POST("/albums", s.createAlbum)
		api.GET("/albums/:id", s.getAlbum)
		api.PUT("/albums/:id", s.updateAlbum)
		api.DELETE("/albums/:id", s.deleteAlbum)

		api.POST("/import/clz", s.importCLZ)
		api.POST("/import/clz/preview", s.previewCLZ)
		api.POST("/import/discogs", s.importDiscogs)
		api.GET("/imports", s.listImportRuns)

		api.GET("/conflicts", s.listConflicts)
		api.POST("/conflicts/:id/resolve", s.resolveConflict)
		api.DELETE("/conflicts/:id", s.dismissConflict)

		api.POST("/enrich/discogs/:albumId", s.enrichDiscogs)
		api.POST("/enrich/1001/match", s.matchThousand)
		api.POST("/enrich/1001/list", s.loadThousandList)
		api.GET("/enrich/1001/reviews", s.listThousandReviews)
		api.POST("/enrich/1001/reviews", s.saveThousandReview)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Start runs the HTTP server until the context is canceled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context, cfg Config) error {
	s.httpServer = &http.Server{
		Addr:           cfg.Addr,
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] server: listening on %s", cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("[INFO] server: shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
