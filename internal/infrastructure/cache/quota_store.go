// Package cache tracks per-user daily chat quotas. Counters are keyed
// by UTC date so every user's allowance resets at midnight UTC.
package cache

import (
	"context"
	"fmt"
	"time"
)

// QuotaStore counts daily chat messages per user
type QuotaStore interface {
	// Take consumes one unit of the user's daily quota. It returns the
	// count after consumption and whether the request was within the
	// limit. When the limit is already reached the count is not
	// incremented further.
	Take(ctx context.Context, userID string, limit int) (int, bool, error)

	// Used returns the number of units consumed today
	Used(ctx context.Context, userID string) (int, error)

	// Close releases any underlying connections
	Close() error
}

// quotaKey builds the storage key for a user on a given day
func quotaKey(userID string, now time.Time) string {
	return fmt.Sprintf("chat:quota:%s:%s", now.UTC().Format("2006-01-02"), userID)
}

// untilMidnightUTC returns the duration until the next midnight UTC,
// used as the expiry for daily counters.
func untilMidnightUTC(now time.Time) time.Duration {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return midnight.Sub(now)
}
