package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created last; its presence means every step ran.
const sentinelTable = "public.notifications"

// Companies, users and employees are owned by the surrounding application. Only the
// columns the compliance engine joins on are declared here.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_companies",
		SQL: `CREATE TABLE IF NOT EXISTS companies (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  company_id UUID        REFERENCES companies (id) ON DELETE SET NULL,
  email      TEXT        NOT NULL UNIQUE,
  role       TEXT        NOT NULL DEFAULT 'member',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_employees",
		SQL: `CREATE TABLE IF NOT EXISTS employees (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  company_id UUID        REFERENCES companies (id) ON DELETE SET NULL,
  full_name  TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// grace_period_days, fine_per_day, fine_type and fine_cap are deprecated
		// per-document rule columns kept only as a fallback.
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  employee_id       UUID          NOT NULL REFERENCES employees (id) ON DELETE CASCADE,
  document_type     TEXT          NOT NULL,
  document_number   TEXT,
  issue_date        DATE,
  expiry_date       DATE,
  file_url          TEXT,
  grace_period_days INTEGER,
  fine_per_day      NUMERIC(12,2),
  fine_type         TEXT,
  fine_cap          NUMERIC(12,2),
  created_at        TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_employee_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_employee_id ON documents (employee_id);`,
	},
	{
		Name: "create_index_documents_expiry_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_expiry_date ON documents (expiry_date) WHERE expiry_date IS NOT NULL;`,
	},
	{
		Name: "create_table_compliance_rules",
		SQL: `CREATE TABLE IF NOT EXISTS compliance_rules (
  id                UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  company_id        UUID          REFERENCES companies (id) ON DELETE CASCADE,
  document_type     TEXT          NOT NULL,
  grace_period_days INTEGER       NOT NULL DEFAULT 0 CHECK (grace_period_days >= 0),
  fine_per_day      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (fine_per_day >= 0),
  fine_type         TEXT          NOT NULL DEFAULT 'daily' CHECK (fine_type IN ('daily', 'monthly', 'one_time')),
  fine_cap          NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (fine_cap >= 0),
  created_at        TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_unique_index_compliance_rules_global",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_compliance_rules_global ON compliance_rules (document_type) WHERE company_id IS NULL;`,
	},
	{
		Name: "create_unique_index_compliance_rules_company",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_compliance_rules_company ON compliance_rules (company_id, document_type) WHERE company_id IS NOT NULL;`,
	},
	{
		Name: "create_table_document_dependencies",
		SQL: `CREATE TABLE IF NOT EXISTS document_dependencies (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  blocking_type TEXT        NOT NULL,
  blocked_type  TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (blocking_type, blocked_type)
);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id          UUID        PRIMARY KEY,
  user_id     UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  title       TEXT        NOT NULL,
  message     TEXT        NOT NULL,
  category    TEXT        NOT NULL,
  entity_type TEXT        NOT NULL,
  entity_id   TEXT        NOT NULL,
  is_read     BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_on  DATE        NOT NULL
);`,
	},
	{
		// Backs ON CONFLICT in the notification insert: one row per recipient, entity and day
		// even when several replicas run the cycle at once.
		Name: "create_unique_index_notifications_daily",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_notifications_daily ON notifications (user_id, entity_type, entity_id, created_on);`,
	},
	{
		Name: "create_index_notifications_user_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_user_created_at ON notifications (user_id, created_at DESC);`,
	},
}

// EnsureMigrated checks if the sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("database")

	log.Info("db_migration_check", map[string]any{
		"status":  "starting",
		"db_host": dbHost,
	})

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed", fmt.Errorf("failed to check sentinel table: %w", err), map[string]any{
			"status":      "error",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", map[string]any{
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Info("db_migration_start", map[string]any{
		"status":  "in_progress",
		"db_host": dbHost,
		"steps":   len(steps),
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed", err, map[string]any{
				"status":           "error",
				"migration_step":   step.Name,
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step", map[string]any{
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Info("db_migration_success", map[string]any{
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
