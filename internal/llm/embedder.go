package llm

import (
	"context"
	"time"

	"github.com/solhealth/consulta/internal/cache"
)

// CachedEmbedder wraps a Provider's embedding capability with a TTL
// cache keyed by the hashed input text. Embeddings are deterministic
// for a fixed model, so cached vectors stay valid until evicted.
type CachedEmbedder struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
}

// NewCachedEmbedder creates an embedding cache around the provider.
func NewCachedEmbedder(provider Provider, c cache.Cache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{provider: provider, cache: c, ttl: ttl}
}

// Embed returns the cached vector for text, computing and storing it on
// a miss.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(text)
	if vec, found := e.cache.Get(key); found {
		return vec, nil
	}

	vec, err := e.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, vec, e.ttl)
	return vec, nil
}
