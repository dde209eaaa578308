package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &DB{sqlDB}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nova_transactions (
		id BIGSERIAL PRIMARY KEY,
		account_id VARCHAR(100) NOT NULL,
		tx_id VARCHAR(100) NOT NULL,
		tx_type VARCHAR(20) NOT NULL,
		currency VARCHAR(20) NOT NULL,
		amount DECIMAL(30, 8) NOT NULL,
		fee DECIMAL(30, 8) NOT NULL,
		address VARCHAR(200),
		tx_hash VARCHAR(200),
		status VARCHAR(20) NOT NULL,
		tx_time BIGINT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT unique_nova_transaction UNIQUE (account_id, tx_id)
	);

	CREATE INDEX IF NOT EXISTS idx_nova_tx_account ON nova_transactions(account_id);
	CREATE INDEX IF NOT EXISTS idx_nova_tx_currency ON nova_transactions(currency);
	CREATE INDEX IF NOT EXISTS idx_nova_tx_time ON nova_transactions(tx_time);
	CREATE INDEX IF NOT EXISTS idx_nova_tx_account_currency_time ON nova_transactions(account_id, currency, tx_time DESC);

	CREATE TABLE IF NOT EXISTS sync_status (
		id SERIAL PRIMARY KEY,
		account_id VARCHAR(100) NOT NULL,
		currency VARCHAR(20) NOT NULL,
		last_sync_time TIMESTAMP NOT NULL,
		last_tx_time BIGINT,
		records_count INT DEFAULT 0,
		status VARCHAR(20) DEFAULT 'success',
		error_message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sync_status_account_currency ON sync_status(account_id, currency);
	CREATE INDEX IF NOT EXISTS idx_sync_status_last_sync_time ON sync_status(last_sync_time DESC);
	`

	_, err := db.Exec(schema)
	return err
}
