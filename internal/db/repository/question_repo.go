package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type questionStore interface {
	ListQuestionsByID(ctx context.Context) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context) ([]queries.Question, error)
	ListQuestionsInCategory(ctx context.Context, category int32) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository implements question.Repository on top of Postgres queries.
type QuestionRepository struct {
	store questionStore
}

var _ question.Repository = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns the whole bank in the requested order.
func (r *QuestionRepository) List(ctx context.Context, order question.Order) ([]question.Question, error) {
	var (
		rows []queries.Question
		err  error
	)
	switch order {
	case question.OrderByCategory:
		rows, err = r.store.ListQuestionsByCategory(ctx)
	default:
		rows, err = r.store.ListQuestionsByID(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return toDomain(rows), nil
}

// FilterByCategory returns the questions filed under categoryID, ordered by id.
func (r *QuestionRepository) FilterByCategory(ctx context.Context, categoryID int) ([]question.Question, error) {
	key, ok := toInt32(categoryID)
	if !ok {
		return []question.Question{}, nil
	}
	rows, err := r.store.ListQuestionsInCategory(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("query questions in category: %w", err)
	}
	return toDomain(rows), nil
}

// Search matches term as a case-insensitive substring of the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]question.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, escapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomain(rows), nil
}

// Insert stores q and returns it with the id assigned by the database.
func (r *QuestionRepository) Insert(ctx context.Context, q question.Question) (question.Question, error) {
	categoryID, ok := toInt32(q.CategoryID)
	if !ok {
		return question.Question{}, fmt.Errorf("insert question: %w: category %d out of range", question.ErrPersistence, q.CategoryID)
	}
	difficulty, ok := toInt32(q.Difficulty)
	if !ok {
		return question.Question{}, fmt.Errorf("insert question: %w: difficulty %d out of range", question.ErrPersistence, q.Difficulty)
	}
	row, err := r.store.InsertQuestion(ctx, queries.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   categoryID,
		Difficulty: difficulty,
	})
	if err != nil {
		return question.Question{}, persistenceError("insert question", err)
	}
	return fromRow(row), nil
}

// Delete removes the question with id and reports whether it existed.
func (r *QuestionRepository) Delete(ctx context.Context, id int) (bool, error) {
	key, ok := toInt32(id)
	if !ok {
		return false, nil
	}
	affected, err := r.store.DeleteQuestion(ctx, key)
	if err != nil {
		return false, persistenceError("delete question", err)
	}
	return affected > 0, nil
}

func persistenceError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %s (%s)", op, question.ErrPersistence, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%s: %w: %w", op, question.ErrPersistence, err)
}

// toInt32 narrows v to the column type; ok is false when v does not fit.
func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func toDomain(rows []queries.Question) []question.Question {
	out := make([]question.Question, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out
}

func fromRow(row queries.Question) question.Question {
	return question.Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		CategoryID: int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}
