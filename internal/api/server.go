package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"weatherapp/internal/geocode"
	"weatherapp/internal/storage"
	"weatherapp/internal/weather"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router   *gin.Engine
	server   *http.Server
	db       *storage.Database
	geocoder *geocode.Client
	resolver *geocode.Resolver
	weather  *weather.Client
	port     int
}

type ServerConfig struct {
	Port     int
	Database *storage.Database
	Geocoder *geocode.Client
	Weather  *weather.Client
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:   router,
		db:       cfg.Database,
		geocoder: cfg.Geocoder,
		resolver: geocode.NewResolver(cfg.Geocoder),
		weather:  cfg.Weather,
		port:     cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api")
	{
		api.GET("/autocomplete", s.autocompleteHandler)
		api.GET("/geocode", s.geocodeHandler)
		api.GET("/weather", s.weatherHandler)
		api.GET("/weather/range", s.weatherRangeHandler)

		api.POST("/requests", s.createRequestHandler)
		api.GET("/requests", s.listRequestsHandler)
		api.GET("/requests/:id", s.getRequestHandler)
		api.PUT("/requests/:id", s.updateRequestHandler)
		api.DELETE("/requests/:id", s.deleteRequestHandler)
		api.GET("/requests/:id/weather", s.requestWeatherHandler)

		api.PUT("/locations/:id", s.relabelLocationHandler)
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
