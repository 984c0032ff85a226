// Package mysql implementa el adapter MySQL para el store.
// Usa database/sql con github.com/go-sql-driver/mysql.
//
// Requisitos:
//   - MySQL 8.0+
//   - DSN format: user:password@tcp(host:port)/database
//     (parseTime y loc=UTC se fuerzan al conectar)
//
// La tabla usa collation utf8mb4_bin para que el nick sea case-sensitive.
package mysql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	store "github.com/dropDatabas3/socialauth/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func init() {
	store.RegisterAdapter(&mysqlAdapter{})
}

type mysqlAdapter struct{}

func (a *mysqlAdapter) Name() string { return "mysql" }

func (a *mysqlAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mysql: empty dsn")
	}
	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	// Configurar pool de conexiones
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(10)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(2)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping failed: %w", err)
	}
	return &mysqlConnection{db: db}, nil
}

// normalizeDSN fuerza parseTime=true y loc=UTC.
func normalizeDSN(dsn string) (string, error) {
	mc, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql: parse dsn: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN(), nil
}

type mysqlConnection struct {
	db *sql.DB
}

func (c *mysqlConnection) Name() string { return "mysql" }

func (c *mysqlConnection) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *mysqlConnection) Close() error { return c.db.Close() }

func (c *mysqlConnection) Users() repository.UserRepository { return &userRepo{db: c.db} }

func (c *mysqlConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	return store.NewMigrator(migrationsFS, "migrations").Run(ctx, dbExecutor{c.db}, store.DialectMySQL)
}

// dbExecutor adapta *sql.DB a store.SQLExecutor.
type dbExecutor struct{ db *sql.DB }

func (e dbExecutor) Exec(ctx context.Context, query string, args ...any) error {
	_, err := e.db.ExecContext(ctx, query, args...)
	return err
}

func (e dbExecutor) Versions(ctx context.Context, query string) ([]int, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
