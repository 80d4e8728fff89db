package database

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open creates and configures the MySQL connection pool for the given DSN
// and verifies it with a ping before returning.
func Open(dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// normalizeDSN forces clientFoundRows so UPDATE reports matched rows rather
// than changed rows. Without it, re-submitting an update with values
// identical to the stored row reports zero affected rows and the stores
// would read that as a missing record.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}
