package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// ErrPoolExhausted means every question in scope has already been asked.
// It ends a quiz session; it is not a server fault.
var ErrPoolExhausted = errors.New("no questions left in scope")

// Scope restricts a quiz to one category or to the whole bank.
type Scope struct {
	all        bool
	categoryID int
}

// AllCategories scopes a quiz to every question.
func AllCategories() Scope {
	return Scope{all: true}
}

// InCategory scopes a quiz to a single category.
func InCategory(id int) Scope {
	return Scope{categoryID: id}
}

// All reports whether the scope covers every category.
func (s Scope) All() bool { return s.all }

// CategoryID returns the scoped category; meaningless when All is true.
func (s Scope) CategoryID() int { return s.categoryID }

func (s Scope) String() string {
	if s.all {
		return "all"
	}
	return fmt.Sprintf("category:%d", s.categoryID)
}

// SelectorOptions tunes a Selector.
type SelectorOptions struct {
	// Rand returns a uniform int in [0, n). Defaults to math/rand/v2 IntN.
	Rand func(n int) int
}

// Selector picks the next quiz question. It keeps no state between calls:
// the caller passes every id asked so far on each turn.
type Selector struct {
	repo question.Repository
	intn func(n int) int
}

func NewSelector(repo question.Repository, opts SelectorOptions) *Selector {
	intn := opts.Rand
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{repo: repo, intn: intn}
}

// Next returns a question in scope whose id is not in asked, drawn uniformly
// from the remaining pool. An unknown category behaves like an empty one.
func (s *Selector) Next(ctx context.Context, scope Scope, asked []int) (question.Question, error) {
	pool, err := s.pool(ctx, scope)
	if err != nil {
		return question.Question{}, err
	}

	excluded := make(map[int]struct{}, len(asked))
	for _, id := range asked {
		excluded[id] = struct{}{}
	}

	remaining := make([]question.Question, 0, len(pool))
	for _, q := range pool {
		if _, seen := excluded[q.ID]; !seen {
			remaining = append(remaining, q)
		}
	}

	if len(remaining) == 0 {
		return question.Question{}, fmt.Errorf("%s: %w", scope, ErrPoolExhausted)
	}
	return remaining[s.intn(len(remaining))], nil
}

func (s *Selector) pool(ctx context.Context, scope Scope) ([]question.Question, error) {
	if scope.All() {
		all, err := s.repo.List(ctx, question.OrderByID)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		return all, nil
	}
	inCategory, err := s.repo.FilterByCategory(ctx, scope.CategoryID())
	if err != nil {
		return nil, fmt.Errorf("filter questions by category %d: %w", scope.CategoryID(), err)
	}
	return inCategory, nil
}
