package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	categories []Category
	err        error
	calls      int
}

func (s *stubStore) ListCategories(context.Context) ([]Category, error) {
	s.calls++
	return s.categories, s.err
}

type memoryCache struct {
	data   map[int]string
	getErr error
	sets   int
}

func (c *memoryCache) Get(context.Context) (map[int]string, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.data, nil
}

func (c *memoryCache) Set(_ context.Context, types map[int]string) error {
	c.sets++
	c.data = types
	return nil
}

func sampleStore() *stubStore {
	return &stubStore{categories: []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
	}}
}

func TestCatalogAllWithoutCache(t *testing.T) {
	store := sampleStore()
	catalog := NewCatalog(store, nil, zerolog.Nop())

	types, err := catalog.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, types)

	count, err := catalog.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.calls)
}

func TestCatalogReadsThroughCache(t *testing.T) {
	store := sampleStore()
	cache := &memoryCache{}
	catalog := NewCatalog(store, cache, zerolog.Nop())

	for i := 0; i < 3; i++ {
		types, err := catalog.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, types, 2)
	}
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestCatalogFallsBackOnCacheError(t *testing.T) {
	store := sampleStore()
	catalog := NewCatalog(store, &memoryCache{getErr: errors.New("redis down")}, zerolog.Nop())

	types, err := catalog.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Art", types[2])
	assert.Equal(t, 1, store.calls)
}

func TestCatalogStoreError(t *testing.T) {
	catalog := NewCatalog(&stubStore{err: errors.New("boom")}, nil, zerolog.Nop())

	_, err := catalog.All(context.Background())
	assert.ErrorContains(t, err, "list categories: boom")
}

func TestCatalogWithUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := sampleStore()
	catalog := NewCatalog(store, NewRedisCache(client, 0), zerolog.Nop())

	types, err := catalog.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestHandleList(t *testing.T) {
	h := NewHTTPHandler(NewCatalog(sampleStore(), nil, zerolog.Nop()), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success       bool              `json:"success"`
		Categories    map[string]string `json:"categories"`
		TotalCategory int               `json:"total_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, map[string]string{"1": "Science", "2": "Art"}, body.Categories)
	assert.Equal(t, 2, body.TotalCategory)
}

func TestHandleListFailures(t *testing.T) {
	h := NewHTTPHandler(NewCatalog(&stubStore{err: errors.New("boom")}, nil, zerolog.Nop()), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodPost, "/categories", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
