package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/pkg/log"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	pinger *database.Pinger
	redis  *redis.Client
	cfg    *config.Config
}

// New builds a fully wired server. The Redis client, S3 config, and pinger
// are optional; missing pieces only disable the features that need them.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, pinger *database.Pinger) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	s := &Server{
		router: router,
		db:     db,
		pinger: pinger,
		redis:  redisClient,
		cfg:    cfg,
	}

	router.GET("/health", s.health)
	api.SetupAPI(router, db, redisClient, s3Config, cfg)

	return s
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "ok"}

	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.HealthCheck(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(status, gin.H{"status": statusLabel(status), "checks": checks})
}

func statusLabel(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}

// Start begins serving and blocks until the listener fails or is shut down
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.L.Info("starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
