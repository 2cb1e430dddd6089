package rag

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory VectorStore for tests.
type fakeStore struct {
	collections map[string]string // name -> id
	records     map[string][]Record
	queryDocs   []string
	createCalls int
	failGet     bool
	failCreate  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[string]string),
		records:     make(map[string][]Record),
	}
}

func (s *fakeStore) GetCollection(_ context.Context, name string) (string, error) {
	if s.failGet {
		return "", errors.New("store unavailable")
	}
	id, ok := s.collections[name]
	if !ok {
		return "", errors.New("collection does not exist")
	}
	return id, nil
}

func (s *fakeStore) CreateCollection(_ context.Context, name string) (string, error) {
	if s.failCreate {
		return "", errors.New("store unavailable")
	}
	s.createCalls++
	id := fmt.Sprintf("col-%d", len(s.collections)+1)
	s.collections[name] = id
	return id, nil
}

func (s *fakeStore) AddRecords(_ context.Context, collectionID string, records []Record) error {
	s.records[collectionID] = append(s.records[collectionID], records...)
	return nil
}

func (s *fakeStore) QueryDocuments(_ context.Context, _ string, _ []float32, topK int) ([]string, error) {
	if len(s.queryDocs) > topK {
		return s.queryDocs[:topK], nil
	}
	return s.queryDocs, nil
}

func TestCollectionNameIsPure(t *testing.T) {
	first := CollectionName("ABC", "tok1")
	second := CollectionName("ABC", "tok1")

	assert.Equal(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^project_ABC_[0-9a-f]{8}$`), first)
}

func TestCollectionNameSeparatesTenants(t *testing.T) {
	assert.NotEqual(t, CollectionName("ABC", "tok1"), CollectionName("ABC", "tok2"))
	assert.NotEqual(t, CollectionName("ABC", "tok1"), CollectionName("XYZ", "tok1"))
}

func TestResolveCreatesOnMissing(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store, zap.NewNop())

	col, err := r.Resolve(context.Background(), "tok1", "ABC")
	require.NoError(t, err)
	assert.Equal(t, CollectionName("ABC", "tok1"), col.Name)
	assert.Equal(t, "tok1", col.AccessToken)
	assert.Equal(t, 1, store.createCalls)
}

func TestResolveReusesExisting(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store, zap.NewNop())

	first, err := r.Resolve(context.Background(), "tok1", "ABC")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "tok1", "ABC")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.createCalls)
}

func TestResolveFailsWhenStoreDown(t *testing.T) {
	store := newFakeStore()
	store.failGet = true
	store.failCreate = true
	r := NewResolver(store, zap.NewNop())

	_, err := r.Resolve(context.Background(), "tok1", "ABC")
	assert.Error(t, err)
}

func TestDefaultIsResolvedOncePerProcess(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store, zap.NewNop())

	first, err := r.Default(context.Background())
	require.NoError(t, err)
	second, err := r.Default(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.createCalls)
	assert.Empty(t, first.AccessToken)
}

func TestDefaultRetriesAfterFailure(t *testing.T) {
	store := newFakeStore()
	store.failGet = true
	store.failCreate = true
	r := NewResolver(store, zap.NewNop())

	_, err := r.Default(context.Background())
	require.Error(t, err)

	store.failGet = false
	store.failCreate = false
	col, err := r.Default(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, col)
}
