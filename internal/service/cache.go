// internal/service/cache.go
package service

import (
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

// CacheConfig holds configuration for the primary organization cache
type CacheConfig struct {
	TTL  time.Duration
	Size int
}

// OrgCache remembers each user's primary organization. Entries expire after
// TTL and are dropped whenever one of the user's memberships changes.
type OrgCache struct {
	lru     *expirable.LRU[uuid.UUID, model.Organization]
	metrics *metrics.Metrics
}

// NewOrgCache creates a new primary organization cache
func NewOrgCache(config CacheConfig, m *metrics.Metrics) *OrgCache {
	if config.Size <= 0 {
		config.Size = 1024
	}
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}

	return &OrgCache{
		lru:     expirable.NewLRU[uuid.UUID, model.Organization](config.Size, nil, config.TTL),
		metrics: m,
	}
}

// Get returns a copy of the cached organization for userID
func (c *OrgCache) Get(userID uuid.UUID) (*model.Organization, bool) {
	org, ok := c.lru.Get(userID)
	if c.metrics != nil {
		result := cacheMiss
		if ok {
			result = cacheHit
		}
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
	if !ok {
		return nil, false
	}
	return &org, true
}

// Set stores a copy of org so callers cannot mutate the cached value
func (c *OrgCache) Set(userID uuid.UUID, org *model.Organization) {
	if org == nil {
		return
	}
	c.lru.Add(userID, *org)
}

// Invalidate drops the entry for userID
func (c *OrgCache) Invalidate(userID uuid.UUID) {
	c.lru.Remove(userID)
}

// Len returns the number of live entries
func (c *OrgCache) Len() int {
	return c.lru.Len()
}
