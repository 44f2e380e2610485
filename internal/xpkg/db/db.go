package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/logger"
)

type DB struct {
	pool *pgxpool.Pool
}

// Start opens a pgx connection pool and verifies it with a ping.
func Start(ctx context.Context, dbCfg *config.Postgres, mylog logger.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dbCfg.DSN())
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(pingCtx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	mylog.Action("db_connected").Info("Connected to PostgreSQL database", "database", dbCfg.Database)
	return &DB{pool: pool}, nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) IsAlive(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}
