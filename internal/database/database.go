package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/pkg/log"
)

// New opens the gorm connection used by services
func New(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.L.Info("connected to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("name", cfg.DBName),
	)
	return db, nil
}

// Pinger checks database reachability for the health endpoint
type Pinger struct {
	db *sql.DB
}

// NewPinger opens a plain database/sql connection for health checks
func NewPinger(cfg *config.Config) (*Pinger, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	return &Pinger{db: db}, nil
}

// HealthCheck pings the database
func (p *Pinger) HealthCheck(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close releases the health-check connection
func (p *Pinger) Close() error {
	return p.db.Close()
}
