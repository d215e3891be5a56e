package main

import (
	"database/sql"
	"fmt"

	"blogapi/internal/config"
	"blogapi/internal/database/migration"
	"blogapi/internal/repository"
	"blogapi/internal/repository/postgres"
	"blogapi/internal/repository/sqlite"
	"blogapi/internal/storage"
)

func dialectOf(c config.DatabaseConfig) migration.Dialect {
	if c.Driver == config.DriverSQLite {
		return migration.SQLite
	}
	return migration.Postgres
}

// dbHostOf names the database in logs without leaking credentials.
func dbHostOf(c config.DatabaseConfig) string {
	if c.Driver == config.DriverSQLite {
		return c.SQLitePath
	}
	return c.Host
}

func newArticleRepository(c config.DatabaseConfig, db *sql.DB) (repository.ArticleRepository, error) {
	switch c.Driver {
	case "", config.DriverPostgres:
		return postgres.NewArticlePostgres(db), nil
	case config.DriverSQLite:
		return sqlite.NewArticleSQLite(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func openImageStore(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Images.Backend {
	case "", config.ImageBackendLocal:
		return storage.NewLocal(cfg.Images.Dir)
	case config.ImageBackendMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unsupported image backend %q", cfg.Images.Backend)
	}
}
