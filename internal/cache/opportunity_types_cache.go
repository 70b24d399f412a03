package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
)

const (
	opportunityTypesCacheKey  = "opportunity_types:active"
	opportunityTypesCacheName = "opportunity_types"
	defaultOpportunityTypeTTL = 5 * time.Minute
)

// OpportunityTypeLoader fetches the active opportunity types from the store.
type OpportunityTypeLoader func(ctx context.Context) ([]*models.OpportunityType, error)

// OpportunityTypesCacheInterface is the read-through cache for active opportunity types.
type OpportunityTypesCacheInterface interface {
	GetActive(ctx context.Context) ([]*models.OpportunityType, error)
	Invalidate()
}

// OpportunityTypesCache keeps the active opportunity types in memory. Admin
// writes invalidate it; the TTL bounds staleness across replicas.
type OpportunityTypesCache struct {
	cache *gocache.Cache
	load  OpportunityTypeLoader
	ttl   time.Duration
}

// NewOpportunityTypesCache creates a new opportunity types cache
func NewOpportunityTypesCache(load OpportunityTypeLoader, ttl time.Duration) *OpportunityTypesCache {
	if ttl <= 0 {
		ttl = defaultOpportunityTypeTTL
	}
	return &OpportunityTypesCache{
		cache: gocache.New(ttl, 2*ttl),
		load:  load,
		ttl:   ttl,
	}
}

// GetActive returns cached types or loads them on a miss.
func (c *OpportunityTypesCache) GetActive(ctx context.Context) ([]*models.OpportunityType, error) {
	if data, found := c.cache.Get(opportunityTypesCacheKey); found {
		types, ok := data.([]*models.OpportunityType)
		if ok {
			metrics.CacheHits.WithLabelValues(opportunityTypesCacheName).Inc()
			return types, nil
		}
		logger.Error("Invalid opportunity types cache data type")
		c.cache.Delete(opportunityTypesCacheKey)
	}

	metrics.CacheMisses.WithLabelValues(opportunityTypesCacheName).Inc()
	logger.Debug("Opportunity types cache miss, loading from database")

	types, err := c.load(ctx)
	if err != nil {
		logger.LogError(err, "Failed to refresh opportunity types cache")
		return nil, fmt.Errorf("failed to load opportunity types: %w", err)
	}

	c.cache.Set(opportunityTypesCacheKey, types, c.ttl)
	logger.Debug("Opportunity types cache refreshed", zap.Int("count", len(types)))

	return types, nil
}

// Invalidate drops the cached list so the next read reloads it.
func (c *OpportunityTypesCache) Invalidate() {
	c.cache.Delete(opportunityTypesCacheKey)
	logger.Info("Opportunity types cache invalidated")
}

var _ OpportunityTypesCacheInterface = (*OpportunityTypesCache)(nil)
