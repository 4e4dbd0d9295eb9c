package repository

import (
	"context"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// withLockRetry runs fn with backoff, retrying only on SQLite lock errors.
// Any other error stops retries and is returned as is.
func withLockRetry(ctx context.Context, fn func() error) error {
	var critical error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		if err := fn(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			critical = err
		}
		return nil
	})
	if critical != nil {
		return critical
	}
	return err
}
