package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/JonasLeetTheWay/fyyur-go/internal/server"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	log, logFile, err := logger.New(cfg)
	if err != nil {
		stdlog.Fatal("Failed to set up logging:", err)
	}
	defer logFile.Close()

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if cfg.SeedOnStart {
		if err := database.SeedData(db, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed data")
		}
	}

	// Flash messages go to redis when it is reachable
	var flashes web.FlashStore = web.NewMemoryFlashStore(cfg.FlashTTL)
	rdb := redis.NewClient(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rdb.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr()).Msg("Redis unavailable, keeping flash messages in memory")
		_ = rdb.Close()
	} else {
		flashes = rdb
		defer rdb.Close()
	}
	cancelPing()

	router, err := server.New(cfg, store.New(db), flashes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, router, log); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
}
