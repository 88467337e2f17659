// Package memory provides an in-process question bank for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// DefaultCategories matches the seed applied by the SQL migrations.
var DefaultCategories = []category.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// Store keeps questions and categories in maps guarded by a RWMutex.
type Store struct {
	mu         sync.RWMutex
	questions  map[int]question.Question
	categories []category.Category
	nextID     int
}

var (
	_ question.Repository = (*Store)(nil)
	_ category.Store      = (*Store)(nil)
)

// NewStore returns a store holding categories and no questions.
func NewStore(categories []category.Category) *Store {
	cats := make([]category.Category, len(categories))
	copy(cats, categories)
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return &Store{
		questions:  make(map[int]question.Question),
		categories: cats,
		nextID:     1,
	}
}

func (s *Store) List(_ context.Context, order question.Order) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(order, func(question.Question) bool { return true }), nil
}

func (s *Store) FilterByCategory(_ context.Context, categoryID int) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(question.OrderByID, func(q question.Question) bool {
		return q.CategoryID == categoryID
	}), nil
}

func (s *Store) Search(_ context.Context, term string) ([]question.Question, error) {
	needle := strings.ToLower(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(question.OrderByID, func(q question.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *Store) Insert(_ context.Context, q question.Question) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return q, nil
}

func (s *Store) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return false, nil
	}
	delete(s.questions, id)
	return true, nil
}

func (s *Store) ListCategories(_ context.Context) ([]category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]category.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// sorted must be called with s.mu held.
func (s *Store) sorted(order question.Order, keep func(question.Question) bool) []question.Question {
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == question.OrderByCategory && out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].ID < out[j].ID
	})
	return out
}
