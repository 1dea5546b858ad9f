package framegraph

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// PlanCache holds built graphs keyed by an opaque caller-chosen signature,
// typically a hash of whatever inputs shaped the frame's pass list. The cache
// never inspects a graph; evicted graphs are closed.
type PlanCache struct {
	cache *lru.Cache[string, *FrameGraph]
}

// NewPlanCache creates a cache holding up to size built graphs.
func NewPlanCache(size int) (*PlanCache, error) {
	c, err := lru.NewWithEvict(size, func(_ string, g *FrameGraph) {
		g.Close()
	})
	if err != nil {
		return nil, err
	}
	return &PlanCache{cache: c}, nil
}

// GetOrBuild returns the cached graph for key, building and inserting it on a
// miss.
func (self *PlanCache) GetOrBuild(key string, build func() *FrameGraph) *FrameGraph {
	if g, ok := self.cache.Get(key); ok {
		return g
	}
	g := build()
	self.cache.Add(key, g)
	return g
}

// Purge closes and drops every cached graph.
func (self *PlanCache) Purge() {
	self.cache.Purge()
}

// Len returns the number of cached graphs.
func (self *PlanCache) Len() int {
	return self.cache.Len()
}
