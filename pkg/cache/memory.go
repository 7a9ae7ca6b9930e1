package cache

import (
	"sync"

	"github.com/mchmarny/trustmeter/pkg/scorer"
)

// Memory is an in-process Cache. Safe for concurrent use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]*scorer.Rating
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		m: make(map[string]*scorer.Rating),
	}
}

func (c *Memory) Get(id string) (*scorer.Rating, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[id]
	return r, ok, nil
}

func (c *Memory) Put(id string, r *scorer.Rating) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = r
	return nil
}

func (c *Memory) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]*scorer.Rating)
	return nil
}
