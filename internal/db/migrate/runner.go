// Package migrate applies the embedded SQL migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/db"
)

// ErrNoChange is returned by migrate when already at the target version. Run treats it as success.
var ErrNoChange = migrate.ErrNoChange

// Run applies migrations in direction "up" or "down" against dsn.
func Run(dsn string, direction string) error {
	if strings.TrimSpace(dsn) == "" {
		return db.ErrEmptyDSN
	}
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, pgxToPostgresScheme(dsn))
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Str("direction", direction).Msg("migrations already applied")
		return nil
	}
	if err != nil {
		return err
	}
	version, dirty, verr := m.Version()
	if verr == nil {
		log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	}
	return nil
}

// pgxToPostgresScheme lets DATABASE_URL use the pgx scheme shared with the application pool.
func pgxToPostgresScheme(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "pgx://"); ok {
		return "postgres://" + rest
	}
	return dsn
}
