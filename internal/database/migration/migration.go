package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dialect selects the schema flavour to apply.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type migrationStep struct {
	Name string
	SQL  string
}

var postgresSteps = []migrationStep{
	{
		Name: "create_table_articulos",
		SQL: `CREATE TABLE IF NOT EXISTS articulos (
  id        UUID        PRIMARY KEY,
  titulo    TEXT        NOT NULL CHECK (char_length(titulo) >= 5),
  contenido TEXT        NOT NULL CHECK (char_length(contenido) >= 5),
  fecha     TIMESTAMPTZ NOT NULL DEFAULT now(),
  imagen    TEXT        NOT NULL DEFAULT 'default.png'
);`,
	},
	{
		Name: "create_index_articulos_fecha",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articulos_fecha ON articulos (fecha DESC, id DESC);`,
	},
	{
		Name: "create_index_articulos_imagen",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articulos_imagen ON articulos (imagen);`,
	},
}

var sqliteSteps = []migrationStep{
	{
		Name: "create_table_articulos",
		SQL: `CREATE TABLE IF NOT EXISTS articulos (
  id        TEXT    PRIMARY KEY,
  titulo    TEXT    NOT NULL CHECK (length(titulo) >= 5),
  contenido TEXT    NOT NULL CHECK (length(contenido) >= 5),
  fecha     INTEGER NOT NULL,
  imagen    TEXT    NOT NULL DEFAULT 'default.png'
);`,
	},
	{
		Name: "create_index_articulos_fecha",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articulos_fecha ON articulos (fecha DESC, id DESC);`,
	},
	{
		Name: "create_index_articulos_imagen",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articulos_imagen ON articulos (imagen);`,
	},
}

func plan(d Dialect) (sentinel string, steps []migrationStep, err error) {
	switch d {
	case Postgres:
		return "SELECT to_regclass('public.articulos') IS NOT NULL", postgresSteps, nil
	case SQLite:
		return "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'articulos')", sqliteSteps, nil
	default:
		return "", nil, fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// EnsureMigrated checks if the 'articulos' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, d Dialect, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(
		zap.String("component", "database"),
		zap.String("dialect", string(d)),
		zap.String("db_host", dbHost),
	)

	sentinel, steps, err := plan(d)
	if err != nil {
		return err
	}

	log.Info("db migration check", zap.String("event", "db_migration_check"), zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		log.Error("db migration failed",
			zap.String("event", "db_migration_failed"),
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.String("event", "db_migration_skip"),
			zap.String("status", "success"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db migration start", zap.String("event", "db_migration_start"), zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db migration failed",
				zap.String("event", "db_migration_failed"),
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db migration step",
			zap.String("event", "db_migration_step"),
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db migration success",
		zap.String("event", "db_migration_success"),
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
