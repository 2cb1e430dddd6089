package rag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const defaultCollectionName = "sprint_default"

// CollectionName derives the tenant collection name for a project. The name
// is a pure function of (project key, access token): the same pair always
// maps to the same collection, different tokens never share one.
func CollectionName(projectKey, accessToken string) string {
	return fmt.Sprintf("project_%s_%s", projectKey, hash8(accessToken))
}

// Collection is a resolved handle to a vector collection. AccessToken is
// empty for the shared default collection and carries the tenant salt
// otherwise.
type Collection struct {
	ID          string
	Name        string
	AccessToken string
}

// Resolver maps tenant credentials to vector collections with get-or-create
// semantics. Concurrent resolution of the same tenant may race on create;
// last writer wins, which the store tolerates.
type Resolver struct {
	store  VectorStore
	cache  *gocache.Cache
	logger *zap.Logger

	mu         sync.Mutex
	defaultCol *Collection
}

func NewResolver(store VectorStore, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		cache:  gocache.New(30*time.Minute, 10*time.Minute),
		logger: logger,
	}
}

// Resolve returns the tenant collection for (accessToken, projectKey),
// creating it on first use.
func (r *Resolver) Resolve(ctx context.Context, accessToken, projectKey string) (*Collection, error) {
	name := CollectionName(projectKey, accessToken)

	if cached, ok := r.cache.Get(name); ok {
		return cached.(*Collection), nil
	}

	id, err := r.store.GetCollection(ctx, name)
	if err != nil {
		ctxzap.Debug(ctx, "collection not found, creating",
			zap.String("collection", name),
			zap.Error(err),
		)
		id, err = r.store.CreateCollection(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	col := &Collection{ID: id, Name: name, AccessToken: accessToken}
	r.cache.Set(name, col, gocache.DefaultExpiration)
	return col, nil
}

// Default returns the shared tenant-less collection, resolving it lazily.
// A successful resolution is reused for the process lifetime; a failed one
// is retried on the next call.
func (r *Resolver) Default(ctx context.Context) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaultCol != nil {
		return r.defaultCol, nil
	}

	id, err := r.store.GetCollection(ctx, defaultCollectionName)
	if err != nil {
		ctxzap.Info(ctx, "default collection missing, creating",
			zap.String("collection", defaultCollectionName),
		)
		id, err = r.store.CreateCollection(ctx, defaultCollectionName)
		if err != nil {
			return nil, fmt.Errorf("create default collection: %w", err)
		}
	}

	r.defaultCol = &Collection{ID: id, Name: defaultCollectionName}
	return r.defaultCol, nil
}
