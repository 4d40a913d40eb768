package main

import (
	"errors"
	"fmt"
	"inhouse/internal/config"
	"log"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// migrateUp applies every pending migration to the configured database.
func migrateUp(conf *config.Config) error {
	if conf.SQLDSN == "" {
		return errors.New("no SQL DSN configured")
	}

	db, err := sqlx.Connect(conf.SQLDriver, conf.SQLDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrateDB(db, conf)
}

func migrateDB(db *sqlx.DB, conf *config.Config) error {
	var (
		driver database.Driver
		err    error
	)
	switch conf.SQLDriver {
	case "postgres":
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("unable to create migration driver: %w", err)
	}

	source := "file://" + filepath.ToSlash(filepath.Join(conf.ResourcesDir, "migrations", conf.SQLDriver))
	migrator, err := migrate.NewWithDatabaseInstance(source, conf.SQLDriver, driver)
	if err != nil {
		return fmt.Errorf("unable to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("info: database already up to date")
			return nil
		}
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	version, _, _ := migrator.Version()
	log.Printf("info: database migrated to version %d", version)

	return nil
}
