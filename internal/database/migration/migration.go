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

// sentinelTable is created by the last step, so a partially applied schema
// is migrated again on the next start.
const sentinelTable = "public.site_branding"

var steps = []migrationStep{
	{
		Name: "create_extension_postgis",
		SQL:  `CREATE EXTENSION IF NOT EXISTS postgis;`,
	},
	{
		Name: "create_table_location_countries",
		SQL: `CREATE TABLE IF NOT EXISTS location_countries (
  id   BIGSERIAL    PRIMARY KEY,
  name VARCHAR(64)  NOT NULL,
  slug VARCHAR(128) NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_location_states",
		SQL: `CREATE TABLE IF NOT EXISTS location_states (
  id         BIGSERIAL    PRIMARY KEY,
  country_id BIGINT       NOT NULL REFERENCES location_countries (id) ON DELETE CASCADE,
  name       VARCHAR(64)  NOT NULL,
  full_name  VARCHAR(64)  NOT NULL,
  slug       VARCHAR(128) NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_location_cities",
		SQL: `CREATE TABLE IF NOT EXISTS location_cities (
  id       BIGSERIAL              PRIMARY KEY,
  state_id BIGINT                 NOT NULL REFERENCES location_states (id) ON DELETE CASCADE,
  name     VARCHAR(64)            NOT NULL,
  slug     VARCHAR(128)           NOT NULL UNIQUE,
  location geography(Point, 4326) NULL
);`,
	},
	{
		Name: "create_table_location_zip_codes",
		SQL: `CREATE TABLE IF NOT EXISTS location_zip_codes (
  id          BIGSERIAL              PRIMARY KEY,
  city_id     BIGINT                 NOT NULL REFERENCES location_cities (id) ON DELETE CASCADE,
  name        VARCHAR(64)            NOT NULL,
  slug        VARCHAR(128)           NOT NULL UNIQUE,
  system_name VARCHAR(64)            NOT NULL DEFAULT '',
  location    geography(Point, 4326) NULL
);`,
	},
	{
		Name: "create_index_location_states_country_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_location_states_country_id ON location_states (country_id);`,
	},
	{
		Name: "create_index_location_cities_state_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_location_cities_state_id ON location_cities (state_id);`,
	},
	{
		Name: "create_index_location_zip_codes_city_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_location_zip_codes_city_id ON location_zip_codes (city_id);`,
	},
	{
		Name: "create_index_location_zip_codes_location",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_location_zip_codes_location ON location_zip_codes USING GIST (location);`,
	},
	{
		Name: "create_table_testimonials",
		SQL: `CREATE TABLE IF NOT EXISTS testimonials (
  id          BIGSERIAL   PRIMARY KEY,
  author_name VARCHAR(32) NOT NULL,
  body        TEXT        NOT NULL,
  position    INTEGER     NOT NULL DEFAULT 0 CHECK (position >= 0)
);`,
	},
	{
		Name: "create_table_faqs",
		SQL: `CREATE TABLE IF NOT EXISTS faqs (
  id       BIGSERIAL    PRIMARY KEY,
  question VARCHAR(256) NOT NULL,
  answer   TEXT         NOT NULL,
  position INTEGER      NOT NULL DEFAULT 0 CHECK (position >= 0)
);`,
	},
	{
		Name: "create_table_team_members",
		SQL: `CREATE TABLE IF NOT EXISTS team_members (
  id         BIGSERIAL    PRIMARY KEY,
  first_name VARCHAR(128) NOT NULL,
  last_name  VARCHAR(128) NOT NULL,
  image      TEXT         NOT NULL DEFAULT '',
  job_title  VARCHAR(128) NOT NULL,
  position   INTEGER      NOT NULL DEFAULT 0 CHECK (position >= 0)
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGSERIAL    PRIMARY KEY,
  email         VARCHAR(254) NOT NULL UNIQUE,
  first_name    VARCHAR(150) NOT NULL DEFAULT '',
  last_name     VARCHAR(150) NOT NULL DEFAULT '',
  password_hash TEXT         NOT NULL,
  is_staff      BOOLEAN      NOT NULL DEFAULT FALSE,
  created_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_site_branding",
		SQL: `CREATE TABLE IF NOT EXISTS site_branding (
  id                      SMALLINT     PRIMARY KEY DEFAULT 1 CHECK (id = 1),
  site_name               VARCHAR(128) NOT NULL,
  tagline                 VARCHAR(256) NOT NULL,
  site_description        TEXT         NOT NULL,
  primary_color           VARCHAR(7)   NOT NULL,
  color_scheme            VARCHAR(16)  NOT NULL DEFAULT 'classic',
  custom_primary          VARCHAR(7)   NOT NULL DEFAULT '',
  custom_primary_dark     VARCHAR(7)   NOT NULL DEFAULT '',
  custom_background       VARCHAR(7)   NOT NULL DEFAULT '',
  custom_background_light VARCHAR(7)   NOT NULL DEFAULT '',
  custom_text             VARCHAR(7)   NOT NULL DEFAULT '',
  logo                    TEXT         NOT NULL DEFAULT '',
  favicon                 TEXT         NOT NULL DEFAULT '',
  copyright_text          VARCHAR(256) NOT NULL,
  cta_text                VARCHAR(256) NOT NULL,
  updated_at              TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks for the sentinel table and applies every step when it is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

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
