package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// View keys invalidated after mutations. Page handlers cache rendered
// aggregates under these keys; deleting them forces a recompute on read.
func KeyAdminDashboard() string       { return "views:admin:dashboard" }
func KeyApplication(appID int) string { return fmt.Sprintf("views:application:%d", appID) }
func KeyStudentDashboard(userID int) string {
	return fmt.Sprintf("views:student:%d:dashboard", userID)
}

// Cache signals stale views after lifecycle, document and payment
// mutations. The signal is fire-and-forget; a nil client disables it.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Invalidate deletes the given view keys in the background. Failures are
// logged, never returned: a stale cache entry must not fail a mutation.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Printf("cache invalidation failed for %v: %v", keys, err)
		}
	}()
}

// InvalidateApplicationViews drops every view touched by a change to the
// given application: the admin dashboard, the application detail and the
// owning student's dashboard.
func (c *Cache) InvalidateApplicationViews(appID, userID int) {
	c.Invalidate(
		KeyAdminDashboard(),
		KeyApplication(appID),
		KeyStudentDashboard(userID),
	)
}
