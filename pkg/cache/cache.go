// Package cache persists assembled ratings keyed by artifact identity.
package cache

import "github.com/mchmarny/trustmeter/pkg/scorer"

// Cache stores ratings keyed by resource ID. Ratings are immutable after
// assembly, so implementations may hand back shared pointers. Writes are
// last-writer-wins.
type Cache interface {
	Get(id string) (*scorer.Rating, bool, error)
	Put(id string, r *scorer.Rating) error
	Clear() error
}
