package avro

import (
	"time"

	arc "github.com/hashicorp/golang-lru/arc/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PlanCache memoizes Plans by a caller-chosen key — typically a fingerprint
// of the (writer schema, expected schema, constants) triple, since that's
// everything BuildReadPlan's output depends on. An ARC cache holds the
// built plans; singleflight collapses concurrent cache misses for the same
// key into a single BuildReadPlan call, so a burst of readers opening the
// same manifest don't each pay to resolve the same schema pair.
type PlanCache struct {
	cache   *arc.ARCCache[string, *Plan]
	group   singleflight.Group
	metrics *Metrics
	logger  *zap.Logger
}

// NewPlanCache returns a PlanCache holding at most size plans. metrics may
// be nil to skip instrumentation; logger may be nil, in which case the
// cache logs nothing (zap.NewNop()).
func NewPlanCache(size int, metrics *Metrics, logger *zap.Logger) (*PlanCache, error) {
	cache, err := arc.NewARC[string, *Plan](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanCache{cache: cache, metrics: metrics, logger: logger}, nil
}

// GetOrBuild returns the cached plan for key, building it with build and
// caching the result on a miss. Concurrent calls for the same key share
// one build.
func (c *PlanCache) GetOrBuild(key string, build func() (*Plan, error)) (*Plan, error) {
	if p, ok := c.cache.Get(key); ok {
		c.metrics.hit()
		c.logger.Debug("avro: plan cache hit", zap.String("key", key))
		return p, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if p, ok := c.cache.Get(key); ok {
			return p, nil
		}
		c.metrics.miss()
		c.logger.Debug("avro: plan cache miss, building plan", zap.String("key", key))
		start := time.Now()
		p, err := build()
		c.metrics.observeBuild(time.Since(start).Seconds())
		if err != nil {
			c.logger.Warn("avro: building plan failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}
		c.cache.Add(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// Purge evicts every cached plan, for callers that rotate catalogs or
// otherwise know a whole batch of cached keys is stale.
func (c *PlanCache) Purge() {
	c.cache.Purge()
}
