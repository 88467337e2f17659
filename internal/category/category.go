package category

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Category groups questions under a display name.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Store lists the persisted categories.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// Cache holds the id -> type mapping between store reads.
// Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context) (map[int]string, error)
	Set(ctx context.Context, types map[int]string) error
}

// Catalog serves the id -> type mapping, reading through an optional cache.
type Catalog struct {
	store  Store
	cache  Cache
	logger zerolog.Logger
}

// NewCatalog builds a catalog. cache may be nil.
func NewCatalog(store Store, cache Cache, logger zerolog.Logger) *Catalog {
	return &Catalog{
		store:  store,
		cache:  cache,
		logger: logger.With().Str("component", "category_catalog").Logger(),
	}
}

// All returns every category keyed by id.
func (c *Catalog) All(ctx context.Context) (map[int]string, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := c.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	types := make(map[int]string, len(rows))
	for _, row := range rows {
		types[row.ID] = row.Type
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, types); err != nil {
			c.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return types, nil
}

// Count returns the number of categories.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	types, err := c.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(types), nil
}
