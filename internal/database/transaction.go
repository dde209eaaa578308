package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/novahq/nova-go/internal/api"
)

// TransactionRecord represents a ledger transaction row in the database
type TransactionRecord struct {
	ID        int64
	AccountID string
	TxID      string
	TxType    string
	Currency  string
	Amount    string
	Fee       string
	Address   string
	TxHash    string
	Status    string
	TxTime    int64
	CreatedAt time.Time
}

// SaveTransaction saves a single transaction to the ledger
func (db *DB) SaveTransaction(accountID string, tx *api.Transaction) error {
	query := `
		INSERT INTO nova_transactions (
			account_id, tx_id, tx_type, currency, amount,
			fee, address, tx_hash, status, tx_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id, tx_id)
		DO NOTHING
	`

	_, err := db.Exec(
		query,
		accountID,
		tx.ID,
		string(tx.Type),
		tx.Currency,
		tx.Amount.String(),
		tx.Fee.String(),
		tx.Address,
		tx.TxHash,
		tx.Status,
		tx.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// SaveTransactions saves multiple transactions in one database transaction.
// Rows that fail to insert are skipped so one bad record does not block the
// rest of the batch.
func (db *DB) SaveTransactions(accountID string, txs []api.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	dbTx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
		INSERT INTO nova_transactions (
			account_id, tx_id, tx_type, currency, amount,
			fee, address, tx_hash, status, tx_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id, tx_id)
		DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	savedCount := 0
	for _, tx := range txs {
		result, err := stmt.Exec(
			accountID,
			tx.ID,
			string(tx.Type),
			tx.Currency,
			tx.Amount.String(),
			tx.Fee.String(),
			tx.Address,
			tx.TxHash,
			tx.Status,
			tx.CreatedAt,
		)
		if err != nil {
			continue // Skip this record and continue
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected > 0 {
			savedCount++
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return savedCount, nil
}

// GetLastTransactionTime gets the newest stored transaction time for an
// account and currency. Returns 0 when nothing has been synced yet.
func (db *DB) GetLastTransactionTime(accountID, currency string) (int64, error) {
	var lastTxTime sql.NullInt64
	query := `
		SELECT MAX(tx_time)
		FROM nova_transactions
		WHERE account_id = $1 AND currency = $2
	`

	err := db.QueryRow(query, accountID, currency).Scan(&lastTxTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get last transaction time: %w", err)
	}

	if !lastTxTime.Valid {
		return 0, nil
	}

	return lastTxTime.Int64, nil
}

// SaveSyncStatus saves the outcome of one sync pass
func (db *DB) SaveSyncStatus(accountID, currency string, lastTxTime int64, recordsCount int, status, errorMsg string) error {
	query := `
		INSERT INTO sync_status (
			account_id, currency, last_sync_time, last_tx_time,
			records_count, status, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.Exec(
		query,
		accountID,
		currency,
		time.Now(),
		lastTxTime,
		recordsCount,
		status,
		errorMsg,
	)

	return err
}

// GetTransactions queries stored transactions with filters
func (db *DB) GetTransactions(accountID, currency string, startTime, endTime int64, limit int) ([]TransactionRecord, error) {
	query := `
		SELECT id, account_id, tx_id, tx_type, currency, amount,
		       fee, COALESCE(address, ''), COALESCE(tx_hash, ''), status, tx_time, created_at
		FROM nova_transactions
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if accountID != "" {
		query += fmt.Sprintf(" AND account_id = $%d", argIndex)
		args = append(args, accountID)
		argIndex++
	}

	if currency != "" {
		query += fmt.Sprintf(" AND currency = $%d", argIndex)
		args = append(args, currency)
		argIndex++
	}

	if startTime > 0 {
		query += fmt.Sprintf(" AND tx_time >= $%d", argIndex)
		args = append(args, startTime)
		argIndex++
	}

	if endTime > 0 {
		query += fmt.Sprintf(" AND tx_time <= $%d", argIndex)
		args = append(args, endTime)
		argIndex++
	}

	query += " ORDER BY tx_time DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.TxID,
			&rec.TxType,
			&rec.Currency,
			&rec.Amount,
			&rec.Fee,
			&rec.Address,
			&rec.TxHash,
			&rec.Status,
			&rec.TxTime,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
