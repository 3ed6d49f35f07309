package vectorstore

import (
	"context"
	"errors"

	"hrassist/internal/storage"
)

var (
	// ErrEmptyInput is returned when Build is called with no chunks.
	ErrEmptyInput = errors.New("no chunks to index")
	// ErrNotLoaded is returned when Search is called before Build or Load.
	ErrNotLoaded = errors.New("index not built or loaded")
	// ErrCorruptIndex is returned when an index directory exists but lacks
	// required files or its files cannot be decoded.
	ErrCorruptIndex = errors.New("corrupt index")
	// ErrDimensionMismatch is returned when a vector's dimension does not
	// match the dimension of the index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// EmbeddedChunk pairs a stored chunk with its embedding vector.
// All vectors in one index must share the same dimension.
type EmbeddedChunk struct {
	Chunk  storage.Chunk
	Vector []float32
}

// Match is one nearest-neighbor search result. Distance is cosine distance
// (1 - cosine similarity), so 0 means identical direction and 2 opposite.
type Match struct {
	Chunk    storage.Chunk
	Distance float32
}

// Searcher is the read side of a vector index. Both the in-process flat
// index and the Qdrant-backed store implement it.
type Searcher interface {
	// Search returns up to k nearest neighbors for the query vector,
	// closest first. Returns fewer than k if the index holds fewer chunks.
	Search(ctx context.Context, vector []float32, k int) ([]Match, error)
}
