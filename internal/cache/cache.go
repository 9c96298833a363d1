package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching embedding vectors.
type Cache interface {
	Get(key string) ([]float32, bool)
	Set(key string, vector []float32, ttl time.Duration)
	Clear()
}

// Key generates a cache key from the embedded text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "consulta:v1:" + hex.EncodeToString(hash[:])
}
