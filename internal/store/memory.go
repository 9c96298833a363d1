// Package store provides a brute-force in-memory semantic store. The
// durable vector index is an external collaborator in production; this
// implementation backs the CLI and tests.
package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/solhealth/consulta/internal/model"
)

// Item is one stored conversation fragment with its embedding.
type Item struct {
	ID       string
	Content  string
	Metadata map[string]string
	Vector   []float32
}

// MemoryStore keeps items in memory and answers nearest-neighbor
// queries by exhaustive cosine similarity.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends an item. Vectors of differing dimensions are rejected.
func (s *MemoryStore) Add(item Item) error {
	if len(item.Vector) == 0 {
		return fmt.Errorf("item %s: empty vector", item.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 && len(item.Vector) != len(s.items[0].Vector) {
		return fmt.Errorf("item %s: vector dimension %d, store has %d",
			item.ID, len(item.Vector), len(s.items[0].Vector))
	}
	s.items = append(s.items, item)
	return nil
}

// Count returns the number of stored items.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Query returns the k nearest items to the embedding, as distances
// (1 - cosine similarity), filtered by metadata.
func (s *MemoryStore) Query(ctx context.Context, embedding []float32, k int, filters map[string]model.Filter) ([]model.StoreHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]model.StoreHit, 0, len(s.items))
	for _, it := range s.items {
		if !matches(it.Metadata, filters) {
			continue
		}
		hits = append(hits, model.StoreHit{
			ID:       it.ID,
			Content:  it.Content,
			Metadata: it.Metadata,
			Distance: 1 - cosine(embedding, it.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Get scans items by metadata only. limit <= 0 returns all matches.
func (s *MemoryStore) Get(ctx context.Context, filters map[string]model.Filter, limit int) ([]model.StoredItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.StoredItem
	for _, it := range s.items {
		if !matches(it.Metadata, filters) {
			continue
		}
		out = append(out, model.StoredItem{
			ID:       it.ID,
			Content:  it.Content,
			Metadata: it.Metadata,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matches(metadata map[string]string, filters map[string]model.Filter) bool {
	for key, f := range filters {
		value, ok := metadata[key]
		if !ok {
			return false
		}
		switch f.Op {
		case model.FilterEq:
			if value != f.Value {
				return false
			}
		case model.FilterContains:
			if !strings.Contains(strings.ToLower(value), strings.ToLower(f.Value)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
