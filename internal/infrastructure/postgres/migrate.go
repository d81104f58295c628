package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// RunMigrations applies every pending migration found in migrationsDir.
// Having nothing to apply is not an error.
func RunMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	logger.WithField("dir", migrationsDir).Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	if err != nil {
		return err
	}
	version, dirty, _ := m.Version()
	logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("migrations applied")
	return nil
}
