package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"fincontrol/api/logger"
)

var DB *sql.DB

var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// another user. Handlers map it to 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates entity state, for
	// example paying an open invoice. Handlers map it to 409.
	ErrConflict = errors.New("conflict")
)

// InitDB opens the Postgres connection pool from DATABASE_URL.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %v", err)
	}

	logger.Get().Info("successfully connected to Postgres")
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
