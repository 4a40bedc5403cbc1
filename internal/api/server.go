package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"uv-monitor/internal/feed"
	"uv-monitor/internal/match"
	"uv-monitor/internal/recommend"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router  *gin.Engine
	server  *http.Server
	port    int
	matcher *match.Matcher
	engine  *recommend.Engine
	reg     match.Registry
	cache   *feed.Cache
}

type ServerConfig struct {
	Port     int
	Matcher  *match.Matcher
	Engine   *recommend.Engine
	Registry match.Registry
	Cache    *feed.Cache
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		port:    cfg.Port,
		matcher: cfg.Matcher,
		engine:  cfg.Engine,
		reg:     cfg.Registry,
		cache:   cfg.Cache,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api/v1")
	{
		api.GET("/uv-index", s.uvIndexHandler)
		api.GET("/uv-index/city", s.cityHandler)
		api.GET("/uv-index/coordinates", s.coordinatesHandler)
		api.GET("/recommendation", s.recommendationHandler)
		api.GET("/cities", s.citiesHandler)
		api.GET("/cities/search", s.citySearchHandler)
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	slog.Info("API server starting", "port", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthHandler(c *gin.Context) {
	resp := gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	}
	if s.cache != nil {
		if snap := s.cache.Current(); snap != nil {
			resp["feed_fetched_at"] = snap.FetchedAt
			resp["feed_synthetic"] = snap.Synthetic
			resp["feed_stations"] = len(snap.Readings)
		} else {
			resp["feed_fetched_at"] = nil
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) uvIndexHandler(c *gin.Context) {
	listing, err := s.matcher.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) cityHandler(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'name' parameter"})
		return
	}

	result, err := s.matcher.ByName(c.Request.Context(), name)
	if errors.Is(err, match.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No match found for city '%s'", name)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) coordinatesHandler(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	result, err := s.matcher.ByLocation(c.Request.Context(), lat, lng)
	if errors.Is(err, match.ErrNoCity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No nearby city found"})
		return
	}
	if errors.Is(err, match.ErrNoReading) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No UV index data found: %s", err)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) recommendationHandler(c *gin.Context) {
	skinStr := c.DefaultQuery("skin_type", "1")
	skinType, err := strconv.Atoi(skinStr)
	if err != nil || skinType < 1 || skinType > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skin_type must be an integer between 1 and 6"})
		return
	}

	summary := s.engine.Recommend(c.Request.Context(), skinType)
	c.JSON(http.StatusOK, gin.H{"recommendation": summary})
}

func (s *Server) citiesHandler(c *gin.Context) {
	cities, err := s.reg.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (s *Server) citySearchHandler(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	city, err := s.reg.FindByName(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if city == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No city matching '%s'", name)})
		return
	}
	c.JSON(http.StatusOK, city)
}
