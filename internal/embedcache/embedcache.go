// Package embedcache wraps an Embedder with an in-memory LRU so repeated
// queries do not pay for a second embedding round trip.
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"hrassist/internal/contextutil"
	"hrassist/internal/llm"
)

// Wrap decorates next with an expiring LRU cache. A nil embedder, a
// non-positive size, or a non-positive ttl disables caching and returns
// next unchanged.
func Wrap(next llm.Embedder, size int, ttl time.Duration) llm.Embedder {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruEmbedder{
		next:  next,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  llm.Embedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	logger := contextutil.LoggerFromContext(ctx)

	results := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if cached, ok := l.cache.Get(cacheKey(text)); ok {
			results[i] = cloneEmbedding(cached)
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		logger.DebugContext(ctx, "embedding cache hit", "texts", len(texts))
		return results, nil
	}

	embedded, err := l.next.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, idx := range missingIdx {
		results[idx] = embedded[j]
		l.cache.Add(cacheKey(missing[j]), cloneEmbedding(embedded[j]))
	}

	logger.DebugContext(ctx, "embedding cache filled",
		"texts", len(texts),
		"misses", len(missing),
	)
	return results, nil
}

func (l *lruEmbedder) Dimensions() int {
	return l.next.Dimensions()
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
