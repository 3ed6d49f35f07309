package vectorstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"hrassist/internal/storage"
)

const (
	// VectorsFile holds the raw vector payload inside an index directory.
	VectorsFile = "vectors.bin"
	// ChunksFile holds the chunk document store inside an index directory.
	ChunksFile = "chunks.db"

	vectorsMagic   = uint32(0x48524153)
	vectorsVersion = uint32(1)
)

type flatItem struct {
	chunk storage.Chunk
	vec   []float32 // L2-normalized at build time
}

// FlatIndex is an in-process nearest-neighbor index over L2-normalized
// vectors using cosine distance. It persists to a directory holding
// vectors.bin (vector payload) and chunks.db (chunk store).
//
// Safe for concurrent use: searches take a read lock, and Build/Load
// construct the new state aside before swapping it in, so in-flight
// searches never observe a partially written index.
type FlatIndex struct {
	mu     sync.RWMutex
	dim    int
	items  []flatItem
	loaded bool
}

// NewFlatIndex creates an empty, unloaded index. Search fails with
// ErrNotLoaded until Build or Load succeeds.
func NewFlatIndex() *FlatIndex {
	return &FlatIndex{}
}

// Build replaces the index contents with the given chunks.
// Fails with ErrEmptyInput on an empty slice and ErrDimensionMismatch if
// the vectors do not all share one dimension.
func (f *FlatIndex) Build(chunks []EmbeddedChunk) error {
	if len(chunks) == 0 {
		return ErrEmptyInput
	}

	dim := len(chunks[0].Vector)
	if dim == 0 {
		return fmt.Errorf("%w: zero-length vector for chunk %s", ErrDimensionMismatch, chunks[0].Chunk.ID)
	}

	items := make([]flatItem, 0, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if len(c.Vector) != dim {
			return fmt.Errorf("%w: chunk %s has dimension %d, index has %d", ErrDimensionMismatch, c.Chunk.ID, len(c.Vector), dim)
		}
		items = append(items, flatItem{chunk: c.Chunk, vec: normalize(c.Vector)})
	}

	f.mu.Lock()
	f.dim = dim
	f.items = items
	f.loaded = true
	f.mu.Unlock()
	return nil
}

// Search returns up to k nearest neighbors by cosine distance, closest first.
func (f *FlatIndex) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.loaded {
		return nil, ErrNotLoaded
	}
	if len(vector) != f.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(vector), f.dim)
	}

	q := normalize(vector)
	matches := make([]Match, 0, len(f.items))
	for i := range f.items {
		sim := dot(q, f.items[i].vec)
		matches = append(matches, Match{Chunk: f.items[i].chunk, Distance: 1 - sim})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Len returns the number of indexed chunks.
func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// Dim returns the vector dimension, 0 if the index is empty.
func (f *FlatIndex) Dim() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dim
}

// Count reports the number of indexed chunks. It mirrors the qdrant
// store's signature so either backend can serve the status endpoint.
func (f *FlatIndex) Count(_ context.Context) (int, error) {
	return f.Len(), nil
}

// Save writes the index to dir as vectors.bin plus chunks.db.
// The vector payload is written to a temp file and renamed so a crashed
// save never leaves a truncated vectors.bin behind.
func (f *FlatIndex) Save(ctx context.Context, dir string) error {
	f.mu.RLock()
	dim := f.dim
	items := f.items
	loaded := f.loaded
	f.mu.RUnlock()

	if !loaded {
		return ErrNotLoaded
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	if err := writeVectors(filepath.Join(dir, VectorsFile), dim, items); err != nil {
		return err
	}

	db, err := storage.New(filepath.Join(dir, ChunksFile))
	if err != nil {
		return fmt.Errorf("failed to open chunk store: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate chunk store: %w", err)
	}

	repo := storage.NewChunkRepo(db)
	if err := repo.DeleteAll(ctx); err != nil {
		return err
	}
	chunks := make([]storage.Chunk, 0, len(items))
	for i := range items {
		chunks = append(chunks, items[i].chunk)
	}
	if err := repo.InsertBatch(ctx, chunks); err != nil {
		return err
	}
	return nil
}

// Load reads an index directory written by Save and swaps it in.
// A directory missing either file fails with ErrCorruptIndex, never a
// silently empty index.
func (f *FlatIndex) Load(ctx context.Context, dir string) error {
	vecPath := filepath.Join(dir, VectorsFile)
	dbPath := filepath.Join(dir, ChunksFile)

	for _, p := range []string{vecPath, dbPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: missing %s", ErrCorruptIndex, filepath.Base(p))
		}
	}

	dim, vecs, err := readVectors(vecPath)
	if err != nil {
		return err
	}

	db, err := storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	defer func() {
		_ = db.Close()
	}()

	chunks, err := storage.NewChunkRepo(db).ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	items := make([]flatItem, 0, len(chunks))
	for i := range chunks {
		vec, ok := vecs[chunks[i].ID]
		if !ok {
			return fmt.Errorf("%w: chunk %s has no vector", ErrCorruptIndex, chunks[i].ID)
		}
		items = append(items, flatItem{chunk: chunks[i], vec: vec})
	}
	if len(items) != len(vecs) {
		return fmt.Errorf("%w: vector payload has %d entries, chunk store has %d", ErrCorruptIndex, len(vecs), len(items))
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: index is empty", ErrCorruptIndex)
	}

	f.mu.Lock()
	f.dim = dim
	f.items = items
	f.loaded = true
	f.mu.Unlock()
	return nil
}

func writeVectors(path string, dim int, items []flatItem) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create vector payload: %w", err)
	}

	write := func() error {
		header := []uint32{vectorsMagic, vectorsVersion, uint32(dim), uint32(len(items))}
		for _, v := range header {
			if err := binary.Write(file, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		for i := range items {
			id := []byte(items[i].chunk.ID)
			if err := binary.Write(file, binary.LittleEndian, uint16(len(id))); err != nil {
				return err
			}
			if _, err := file.Write(id); err != nil {
				return err
			}
			if err := binary.Write(file, binary.LittleEndian, items[i].vec); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write vector payload: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close vector payload: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize vector payload: %w", err)
	}
	return nil
}

func readVectors(path string) (int, map[string][]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var magic, version, dim, count uint32
	for _, v := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(file, binary.LittleEndian, v); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated header", ErrCorruptIndex)
		}
	}
	if magic != vectorsMagic {
		return 0, nil, fmt.Errorf("%w: bad magic in %s", ErrCorruptIndex, VectorsFile)
	}
	if version != vectorsVersion {
		return 0, nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptIndex, version)
	}
	if dim == 0 {
		return 0, nil, fmt.Errorf("%w: zero vector dimension", ErrCorruptIndex)
	}

	vecs := make(map[string][]float32, count)
	for i := uint32(0); i < count; i++ {
		var idLen uint16
		if err := binary.Read(file, binary.LittleEndian, &idLen); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated record %d", ErrCorruptIndex, i)
		}
		id := make([]byte, idLen)
		if _, err := io.ReadFull(file, id); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated record %d", ErrCorruptIndex, i)
		}
		vec := make([]float32, dim)
		if err := binary.Read(file, binary.LittleEndian, vec); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated record %d", ErrCorruptIndex, i)
		}
		vecs[string(id)] = vec
	}
	return int(dim), vecs, nil
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	if norm == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}
