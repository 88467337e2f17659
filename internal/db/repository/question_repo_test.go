package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListQuestionsByID(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuestionsByCategory(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuestionsInCategory(ctx context.Context, category int32) ([]queries.Question, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) SearchQuestions(ctx context.Context, pattern string) ([]queries.Question, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestQuestionRepository_ListOrder(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	byID := []queries.Question{questionRow(1, 5), questionRow(2, 2)}
	byCategory := []queries.Question{questionRow(2, 2), questionRow(1, 5)}
	store.On("ListQuestionsByID", mock.Anything).Return(byID, nil)
	store.On("ListQuestionsByCategory", mock.Anything).Return(byCategory, nil)

	got, err := repo.List(context.Background(), question.OrderByID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))

	got, err = repo.List(context.Background(), question.OrderByCategory)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
	assert.Equal(t, 2, got[0].CategoryID)
	store.AssertExpectations(t)
}

func TestQuestionRepository_FilterByCategory(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("ListQuestionsInCategory", mock.Anything, int32(2)).
		Return([]queries.Question{questionRow(1, 2), questionRow(2, 2)}, nil)

	got, err := repo.FilterByCategory(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))
	store.AssertExpectations(t)
}

func TestQuestionRepository_SearchEscapesWildcards(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("SearchQuestions", mock.Anything, `100\% of a\_b \\ c`).Return([]queries.Question{}, nil)

	got, err := repo.Search(context.Background(), `100% of a_b \ c`)
	require.NoError(t, err)
	assert.Empty(t, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_Insert(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{
		Question:   "What is Rachel's surname in FRIENDS?",
		Answer:     "Green",
		Category:   5,
		Difficulty: 1,
	}
	store.On("InsertQuestion", mock.Anything, params).Return(queries.Question{
		ID: 24, Question: params.Question, Answer: params.Answer, Category: 5, Difficulty: 1,
	}, nil)

	got, err := repo.Insert(context.Background(), question.Question{
		Question:   params.Question,
		Answer:     params.Answer,
		CategoryID: 5,
		Difficulty: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, got.ID)
	assert.Equal(t, 5, got.CategoryID)
	store.AssertExpectations(t)
}

func TestQuestionRepository_InsertConstraintViolation(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	pgErr := &pgconn.PgError{Code: "23514", Message: "new row violates check constraint"}
	store.On("InsertQuestion", mock.Anything, mock.Anything).Return(queries.Question{}, pgErr)

	_, err := repo.Insert(context.Background(), question.Question{Question: "q", Answer: "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, question.ErrPersistence)
	assert.Contains(t, err.Error(), "23514")
}

func TestQuestionRepository_Delete(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestion", mock.Anything, int32(23)).Return(int64(1), nil).Once()
	store.On("DeleteQuestion", mock.Anything, int32(23)).Return(int64(0), nil).Once()
	store.On("DeleteQuestion", mock.Anything, int32(99)).Return(int64(0), errors.New("conn reset"))

	removed, err := repo.Delete(context.Background(), 23)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), 23)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, question.ErrPersistence)
	store.AssertExpectations(t)
}

func TestQuestionRepository_OutOfRangeIDs(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)
	tooBig := int(math.MaxInt32) + 2

	removed, err := repo.Delete(context.Background(), tooBig)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := repo.FilterByCategory(context.Background(), tooBig)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.Insert(context.Background(), question.Question{
		Question: "q", Answer: "a", CategoryID: tooBig, Difficulty: 1,
	})
	assert.ErrorIs(t, err, question.ErrPersistence)

	_, err = repo.Insert(context.Background(), question.Question{
		Question: "q", Answer: "a", CategoryID: 1, Difficulty: math.MinInt32 - 1,
	})
	assert.ErrorIs(t, err, question.ErrPersistence)

	store.AssertNotCalled(t, "DeleteQuestion", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "ListQuestionsInCategory", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertQuestion", mock.Anything, mock.Anything)
}

func ids(qs []question.Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
