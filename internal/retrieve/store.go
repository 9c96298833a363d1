package retrieve

import (
	"context"

	"github.com/solhealth/consulta/internal/model"
)

// Embedder computes a vector representation of text. Deterministic for
// a fixed model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticStore is the external vector index capability. Query performs
// nearest-neighbor search with optional metadata filters; Get scans by
// metadata only, used for the full-scan fuzzy patient lookup.
type SemanticStore interface {
	Query(ctx context.Context, embedding []float32, k int, filters map[string]model.Filter) ([]model.StoreHit, error)
	Get(ctx context.Context, filters map[string]model.Filter, limit int) ([]model.StoredItem, error)
}
