// Package migration creates the backend schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_pieces_justificatives",
		SQL: `CREATE TABLE IF NOT EXISTS pieces_justificatives (
  id               BIGSERIAL   PRIMARY KEY,
  collaborateur_id BIGINT      NOT NULL CHECK (collaborateur_id > 0),
  nom              TEXT        NOT NULL,
  type             TEXT        NOT NULL,
  description      TEXT        NOT NULL DEFAULT '',
  fichier          TEXT        NOT NULL DEFAULT '',
  nom_fichier      TEXT        NOT NULL DEFAULT '',
  content_type     TEXT        NOT NULL DEFAULT '',
  taille           BIGINT      NOT NULL DEFAULT 0 CHECK (taille >= 0),
  statut           TEXT        NOT NULL DEFAULT 'PENDING'
                   CHECK (statut IN ('PENDING', 'VALIDATED', 'REJECTED')),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_pieces_collaborateur_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pieces_collaborateur_id ON pieces_justificatives (collaborateur_id);`,
	},
	{
		Name: "create_index_pieces_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pieces_created_at ON pieces_justificatives (created_at DESC, id DESC);`,
	},
}

// EnsureMigrated runs every schema step. Steps are idempotent, so a step that
// failed on an earlier start is retried on the next one.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
