package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solhealth/consulta/internal/cache"
)

type countingProvider struct {
	embedCalls int
	err        error
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	return "", nil
}

func (c *countingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	c.embedCalls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text))}, nil
}

func (c *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func TestCachedEmbedder_CachesByText(t *testing.T) {
	provider := &countingProvider{}
	embedder := NewCachedEmbedder(provider, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	ctx := context.Background()
	first, err := embedder.Embed(ctx, "texto")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	second, err := embedder.Embed(ctx, "texto")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if provider.embedCalls != 1 {
		t.Errorf("embed calls = %d, want 1", provider.embedCalls)
	}
	if first[0] != second[0] {
		t.Errorf("cached vector differs: %v vs %v", first, second)
	}

	if _, err := embedder.Embed(ctx, "otro texto"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if provider.embedCalls != 2 {
		t.Errorf("embed calls = %d, want 2 after new text", provider.embedCalls)
	}
}

func TestCachedEmbedder_ErrorsAreNotCached(t *testing.T) {
	provider := &countingProvider{err: errors.New("quota")}
	embedder := NewCachedEmbedder(provider, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	ctx := context.Background()
	if _, err := embedder.Embed(ctx, "texto"); err == nil {
		t.Fatal("expected error")
	}

	provider.err = nil
	if _, err := embedder.Embed(ctx, "texto"); err != nil {
		t.Fatalf("Embed after recovery: %v", err)
	}
	if provider.embedCalls != 2 {
		t.Errorf("embed calls = %d, want 2", provider.embedCalls)
	}
}
