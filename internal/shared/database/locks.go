package database

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Advisory locks give the seating allocator named mutual exclusion scoped to
// the enclosing transaction: pg_advisory_xact_lock releases automatically on
// commit or rollback, so lock lifetime always equals transaction lifetime.

// LockKey builds the canonical advisory lock name for one slot of one table.
// tableID is "ANY" for venue-wide slot locks.
func LockKey(venueID, tableID, localDate, localTime string) string {
	return fmt.Sprintf("seating:%s:%s:%s:%s", venueID, tableID, localDate, localTime)
}

// SortLockKeys orders lock keys deterministically. Every caller must acquire
// in this order or two overlapping requests can deadlock.
func SortLockKeys(keys []string) []string {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)
	return sorted
}

// AcquireTxAdvisoryLocks takes a transaction-scoped advisory lock for each
// key, in the order given. The caller passes keys through SortLockKeys
// first; tx must be an open transaction handle.
func AcquireTxAdvisoryLocks(ctx context.Context, tx *gorm.DB, keys []string) error {
	for _, key := range keys {
		err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
		if err != nil {
			return fmt.Errorf("failed to acquire advisory lock %q: %w", key, err)
		}
	}
	return nil
}
