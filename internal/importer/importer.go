// Package importer loads questions from the Open Trivia DB into the bank.
package importer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Source yields remote questions.
type Source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]RemoteQuestion, error)
}

type categoryLister interface {
	All(ctx context.Context) (map[int]string, error)
}

type questionCreator interface {
	Create(ctx context.Context, q question.Question, page int) (question.Question, question.Page, error)
}

// Summary reports the outcome of one import run.
type Summary struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Importer maps remote questions onto local categories and stores them.
type Importer struct {
	source     Source
	categories categoryLister
	questions  questionCreator
	difficulty string
	logger     zerolog.Logger
}

// Options tune an Importer.
type Options struct {
	// Difficulty filters the remote request: easy, medium, hard or empty for any.
	Difficulty string
}

func New(source Source, categories categoryLister, questions questionCreator, opts Options, logger zerolog.Logger) *Importer {
	return &Importer{
		source:     source,
		categories: categories,
		questions:  questions,
		difficulty: opts.Difficulty,
		logger:     logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount questions and stores every one whose category maps onto
// a local category. Validation failures skip the question; any other store
// error aborts the run.
func (im *Importer) Run(ctx context.Context, amount int) (Summary, error) {
	var summary Summary
	if amount < 1 {
		return summary, fmt.Errorf("amount must be positive, got %d", amount)
	}

	types, err := im.categories.All(ctx)
	if err != nil {
		return summary, fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]int, len(types))
	for id, name := range types {
		byName[strings.ToLower(name)] = id
	}

	remote, err := im.source.Fetch(ctx, amount, im.difficulty)
	if err != nil {
		return summary, fmt.Errorf("fetch questions: %w", err)
	}
	summary.Fetched = len(remote)

	for _, rq := range remote {
		categoryID, ok := byName[categoryKey(rq.Category)]
		if !ok {
			im.logger.Debug().Str("category", rq.Category).Msg("no local category; skipping")
			summary.Skipped++
			continue
		}

		_, _, err := im.questions.Create(ctx, question.Question{
			Question:   html.UnescapeString(rq.Question),
			Answer:     html.UnescapeString(rq.CorrectAnswer),
			CategoryID: categoryID,
			Difficulty: difficultyScore(rq.Difficulty),
		}, 1)
		if errors.Is(err, question.ErrValidation) {
			im.logger.Warn().Err(err).Msg("invalid remote question; skipping")
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("store question: %w", err)
		}
		summary.Imported++
	}

	im.logger.Info().
		Int("fetched", summary.Fetched).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Msg("import finished")
	return summary, nil
}

// categoryKey reduces "Science: Computers" to "science".
func categoryKey(remote string) string {
	name, _, _ := strings.Cut(html.UnescapeString(remote), ":")
	return strings.ToLower(strings.TrimSpace(name))
}

func difficultyScore(level string) int {
	switch strings.ToLower(level) {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}
