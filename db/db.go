package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var ErrNotFound = errors.New("token not found")

type DB struct {
	Conn *sql.DB
}

// New opens a MySQL pool. parseTime is forced on so created_at scans into time.Time.
func New(dsn string) (*DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MYSQL_DSN: %w", err)
	}
	cfg.ParseTime = true

	conn, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	return &DB{Conn: conn}, nil
}

func (db *DB) ConnectionCheck(ctx context.Context) error {
	if err := db.Conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func (db *DB) InitializeDB(ctx context.Context) error {
	if err := db.ConnectionCheck(ctx); err != nil {
		return err
	}

	createTableSQL := `
    CREATE TABLE IF NOT EXISTS user_tokens (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        label VARCHAR(255) NOT NULL,
        token_enc TEXT NOT NULL,
        created_at DATETIME(6) NOT NULL
    );`

	if _, err := db.Conn.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}
