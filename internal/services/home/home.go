package home

import (
	"context"
	"net/http"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
)

const recentLimit = 10

type Store interface {
	RecentVenues(ctx context.Context, limit int) ([]store.Choice, error)
	RecentArtists(ctx context.Context, limit int) ([]store.Choice, error)
	Ping(ctx context.Context) error
}

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

func (s *Service) SetupRoutes(r gin.IRouter) {
	r.GET("/", s.Index)
	r.GET("/health", s.HealthCheck)
}

func (s *Service) Index(c *gin.Context) {
	ctx := c.Request.Context()
	venues, err := s.store.RecentVenues(ctx, recentLimit)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	artists, err := s.store.RecentArtists(ctx, recentLimit)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/home", gin.H{
		"recent_venues":  venues,
		"recent_artists": artists,
	})
}

func (s *Service) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "fyyur",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fyyur",
	})
}
