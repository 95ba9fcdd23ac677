package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/server"
	"github.com/platewise/backend/pkg/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.L.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.L.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.L.Fatal("failed to run migrations", zap.Error(err))
	}

	pinger, err := database.NewPinger(cfg)
	if err != nil {
		log.L.Warn("health check pinger unavailable", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.L.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.L.Warn("object storage unavailable, image uploads disabled", zap.Error(err))
		s3Config = nil
	}

	srv := server.New(cfg, db, redisClient, s3Config, pinger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.L.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.L.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.L.Fatal("server shutdown error", zap.Error(err))
	}
	if pinger != nil {
		_ = pinger.Close()
	}
	log.L.Info("server stopped")
}
