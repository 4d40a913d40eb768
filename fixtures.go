package main

import (
	"context"
	"errors"
	"inhouse/internal/back"
	"inhouse/internal/config"
	"log"

	"github.com/jmoiron/sqlx"
)

const devDatabasePath = "./inhouse.db"

// loadFixtures fills a development SQLite database with sample players and
// matches, render it with INHOUSE_SQL_DSN=./inhouse.db.
func loadFixtures(ctx context.Context, conf *config.Config) error {
	if conf.SQLDriver != "sqlite3" {
		return errors.New("fixtures can only be loaded in a SQLite database")
	}

	dsn := conf.SQLDSN
	if dsn == "" {
		dsn = devDatabasePath
	}

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if err := migrateDB(db, conf); err != nil {
		return err
	}

	if err := back.LoadFixtures(ctx, db); err != nil {
		return err
	}

	log.Printf("info: fixtures loaded in %s", dsn)
	return nil
}
