package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

const samplePayload = `{
  "response_code": 0,
  "results": [
    {"category": "Science: Computers", "type": "multiple", "difficulty": "easy",
     "question": "What does &quot;CPU&quot; stand for?", "correct_answer": "Central Processing Unit",
     "incorrect_answers": ["a", "b", "c"]},
    {"category": "General Knowledge", "type": "boolean", "difficulty": "medium",
     "question": "Is water wet?", "correct_answer": "True", "incorrect_answers": ["False"]},
    {"category": "Geography", "type": "multiple", "difficulty": "hard",
     "question": "Capital of C&ocirc;te d&#039;Ivoire?", "correct_answer": "Yamoussoukro",
     "incorrect_answers": ["x", "y", "z"]}
  ]
}`

func TestOpenTDBClientFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	client := NewOpenTDBClient(srv.URL+"/", srv.Client())
	results, err := client.Fetch(context.Background(), 3, "easy")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "amount=3&difficulty=easy", gotQuery)
	assert.Equal(t, "Science: Computers", results[0].Category)
}

func TestOpenTDBClientFetchErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 1, "")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("response code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response_code": 1, "results": []}`))
		}))
		defer srv.Close()

		_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 1, "")
		assert.ErrorContains(t, err, "response code 1")
	})
}

type stubSource struct {
	results []RemoteQuestion
	err     error
}

func (s stubSource) Fetch(context.Context, int, string) ([]RemoteQuestion, error) {
	return s.results, s.err
}

func newImporter(t *testing.T, source Source) (*Importer, *memory.Store) {
	t.Helper()
	store := memory.NewStore(memory.DefaultCategories)
	logger := zerolog.Nop()
	return New(
		source,
		category.NewCatalog(store, nil, logger),
		question.NewService(store, logger),
		Options{},
		logger,
	), store
}

func TestRunImportsMatchingCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	im, store := newImporter(t, NewOpenTDBClient(srv.URL, srv.Client()))

	summary, err := im.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Summary{Fetched: 3, Imported: 2, Skipped: 1}, summary)

	stored, err := store.List(context.Background(), question.OrderByID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, `What does "CPU" stand for?`, stored[0].Question)
	assert.Equal(t, 1, stored[0].CategoryID)
	assert.Equal(t, 1, stored[0].Difficulty)

	assert.Equal(t, "Capital of Côte d'Ivoire?", stored[1].Question)
	assert.Equal(t, 3, stored[1].CategoryID)
	assert.Equal(t, 5, stored[1].Difficulty)
}

func TestRunSkipsBlankQuestions(t *testing.T) {
	im, _ := newImporter(t, stubSource{results: []RemoteQuestion{
		{Category: "History", Difficulty: "medium", Question: "   ", CorrectAnswer: "x"},
		{Category: "history", Difficulty: "medium", Question: "Who?", CorrectAnswer: "Them"},
	}})

	summary, err := im.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Summary{Fetched: 2, Imported: 1, Skipped: 1}, summary)
}

func TestRunErrors(t *testing.T) {
	im, _ := newImporter(t, stubSource{err: errors.New("boom")})

	_, err := im.Run(context.Background(), 0)
	assert.ErrorContains(t, err, "amount must be positive")

	_, err = im.Run(context.Background(), 5)
	assert.ErrorContains(t, err, "fetch questions: boom")
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "entertainment", categoryKey("Entertainment: Japanese Anime &amp; Manga"))
	assert.Equal(t, "sports", categoryKey(" Sports "))
	assert.Equal(t, "general knowledge", categoryKey("General Knowledge"))
}
