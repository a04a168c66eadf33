package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/artist"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/home"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/show"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/venue"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// New wires every page service onto one gin engine.
func New(cfg *config.Config, st *store.Store, flashes web.FlashStore, log zerolog.Logger) (*gin.Engine, error) {
	if err := forms.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(logger.Gin(log), web.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(web.Sessions(flashes), web.SanitizeForm())

	home.NewService(st).SetupRoutes(r)
	venue.NewService(st).SetupRoutes(r)
	artist.NewService(st).SetupRoutes(r)
	show.NewService(st).SetupRoutes(r)

	r.NoRoute(web.NotFound)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Run serves handler until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Fyyur starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received, draining requests")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("Shutdown complete")
	return nil
}
