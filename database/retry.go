package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ==================== TRANSACTIONS & RETRY ====================

const (
	maxTxAttempts  = 5
	retryBaseDelay = 50 * time.Millisecond
)

// isTransient reports whether an error is a storage-level conflict worth
// retrying: SQLITE_BUSY and SQLITE_LOCKED come from writer contention and
// clear on their own.
func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// isUniqueViolation reports whether an error is a unique-constraint
// conflict. During category resolution this is the signal to re-read the
// winner row, not an error to surface.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// execTx runs fn inside a transaction. The whole transaction is retried
// with backoff when it fails transiently; any other error rolls back and
// propagates, so a request commits fully-resolved state or nothing.
func (r *Repository) execTx(fn func(tx *sql.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBaseDelay << (attempt - 1))
		}

		tx, err := r.db.Begin()
		if err != nil {
			if isTransient(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("begin transaction: %w", err)
		}

		if err := fn(tx); err != nil {
			tx.Rollback()
			if isTransient(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isTransient(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("commit transaction: %w", err)
		}

		return nil
	}

	return fmt.Errorf("transaction failed after %d attempts: %w", maxTxAttempts, lastErr)
}
