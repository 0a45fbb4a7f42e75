// Package cache is the tenant-scoped read-through cache behind list,
// detail and stats reads. Keys always embed the tenant id; writes
// evict eagerly and broadly rather than letting stats go stale.
package cache

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the cache contract the services depend on. An expired entry
// and a missing entry are indistinguishable to callers; both read as a
// miss and trigger a fresh fetch.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Invalidate(key string)
	InvalidatePrefix(prefix string)
}

// TenantCache wraps an in-process TTL store. Safe for concurrent use;
// per-key operations are atomic and keys do not block each other.
type TenantCache struct {
	store *gocache.Cache
	log   *slog.Logger
}

func New(defaultTTL time.Duration, log *slog.Logger) *TenantCache {
	return &TenantCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
		log:   log,
	}
}

func (c *TenantCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

func (c *TenantCache) Set(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *TenantCache) Invalidate(key string) {
	c.store.Delete(key)
}

// InvalidatePrefix evicts every key under prefix. Linear in the number
// of live entries, which is fine for an in-process cache with short
// TTLs.
func (c *TenantCache) InvalidatePrefix(prefix string) {
	n := 0
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
			n++
		}
	}
	if n > 0 {
		c.log.Debug("cache prefix invalidated", "prefix", prefix, "evicted", n)
	}
}

// InvalidateEntity is the write-path fan-out: the record's own key,
// every cached list page of the resource, and all of the tenant's
// stats. Conservative on purpose — wrong dashboards are a worse
// failure than a cache miss.
func InvalidateEntity(c Store, tenantID uint, resource string, id uint) {
	if id != 0 {
		c.Invalidate(RecordKey(tenantID, resource, id))
	}
	c.InvalidatePrefix(listPrefix(tenantID, resource))
	c.InvalidatePrefix(StatsPrefix(tenantID))
}

// GetOrCompute is the cache-aside helper: return the cached value for
// key, or run compute, cache its result for ttl and return it. A
// cached value of the wrong type reads as a miss.
func GetOrCompute[T any](c Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if raw, ok := c.Get(key); ok {
		if v, ok := raw.(T); ok {
			return v, nil
		}
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Key layout: t:<tenant>:<resource>:id:<id>
//             t:<tenant>:<resource>:list:<query hash>
//             t:<tenant>:stats:<rest...>

func RecordKey(tenantID uint, resource string, id uint) string {
	return fmt.Sprintf("t:%d:%s:id:%d", tenantID, resource, id)
}

func ListKey(tenantID uint, resource string, queryHash string) string {
	return fmt.Sprintf("t:%d:%s:list:%s", tenantID, resource, queryHash)
}

func StatsKey(tenantID uint, parts ...string) string {
	return fmt.Sprintf("t:%d:stats:%s", tenantID, strings.Join(parts, ":"))
}

func StatsPrefix(tenantID uint) string {
	return fmt.Sprintf("t:%d:stats:", tenantID)
}

func listPrefix(tenantID uint, resource string) string {
	return fmt.Sprintf("t:%d:%s:list:", tenantID, resource)
}
