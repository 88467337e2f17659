package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
}

// CategoryRepository implements category.Store on top of Postgres queries.
type CategoryRepository struct {
	store categoryStore
}

var _ category.Store = (*CategoryRepository)(nil)

// NewCategoryRepository constructs a new category repository.
func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListCategories returns every category ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]category.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]category.Category, len(rows))
	for i, row := range rows {
		out[i] = category.Category{ID: int(row.ID), Type: row.Type}
	}
	return out, nil
}
