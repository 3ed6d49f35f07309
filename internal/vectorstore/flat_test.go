package vectorstore

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"hrassist/internal/storage"
)

func embeddedChunk(id string, vec []float32) EmbeddedChunk {
	return EmbeddedChunk{
		Chunk: storage.Chunk{
			ID:          id,
			Content:     "content for " + id,
			SourcePath:  "/docs/" + id + ".txt",
			Filename:    id + ".txt",
			FileType:    storage.FileTypeTXT,
			Category:    "General",
			ChunkIndex:  0,
			TotalChunks: 1,
		},
		Vector: vec,
	}
}

func testIndex(t *testing.T) *FlatIndex {
	t.Helper()

	idx := NewFlatIndex()
	chunks := []EmbeddedChunk{
		embeddedChunk("a", []float32{1, 0, 0}),
		embeddedChunk("b", []float32{0.9, 0.1, 0}),
		embeddedChunk("c", []float32{0, 1, 0}),
		embeddedChunk("d", []float32{0, 0, 1}),
	}
	if err := idx.Build(chunks); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return idx
}

func TestFlatIndex_BuildEmpty(t *testing.T) {
	idx := NewFlatIndex()
	if err := idx.Build(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Build(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestFlatIndex_BuildDimensionMismatch(t *testing.T) {
	idx := NewFlatIndex()
	chunks := []EmbeddedChunk{
		embeddedChunk("a", []float32{1, 0, 0}),
		embeddedChunk("b", []float32{1, 0}),
	}
	if err := idx.Build(chunks); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Build() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestFlatIndex_SearchBeforeBuild(t *testing.T) {
	idx := NewFlatIndex()
	if _, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Search() error = %v, want ErrNotLoaded", err)
	}
}

func TestFlatIndex_SearchOrdering(t *testing.T) {
	idx := testIndex(t)

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Search() returned %d matches, want 3", len(matches))
	}
	if matches[0].Chunk.ID != "a" {
		t.Errorf("closest chunk = %q, want a", matches[0].Chunk.ID)
	}
	if matches[1].Chunk.ID != "b" {
		t.Errorf("second chunk = %q, want b", matches[1].Chunk.ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("distances not non-decreasing at %d: %v then %v", i, matches[i-1].Distance, matches[i].Distance)
		}
	}
	if matches[0].Distance > 1e-6 {
		t.Errorf("identical direction should have distance ~0, got %v", matches[0].Distance)
	}
}

func TestFlatIndex_SearchFewerThanK(t *testing.T) {
	idx := testIndex(t)

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 50)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("Search() returned %d matches, want all 4", len(matches))
	}
}

func TestFlatIndex_SearchQueryDimensionMismatch(t *testing.T) {
	idx := testIndex(t)

	if _, err := idx.Search(context.Background(), []float32{1, 0}, 3); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Search() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestFlatIndex_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)
	dir := t.TempDir()

	query := []float32{0.7, 0.3, 0.1}
	before, err := idx.Search(ctx, query, 4)
	if err != nil {
		t.Fatalf("Search() before save error = %v", err)
	}

	if err := idx.Save(ctx, dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewFlatIndex()
	if err := loaded.Load(ctx, dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 4 {
		t.Fatalf("loaded index has %d chunks, want 4", loaded.Len())
	}
	if loaded.Dim() != 3 {
		t.Fatalf("loaded index dimension = %d, want 3", loaded.Dim())
	}

	after, err := loaded.Search(ctx, query, 4)
	if err != nil {
		t.Fatalf("Search() after load error = %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("result count changed: %d before, %d after", len(before), len(after))
	}
	for i := range before {
		if before[i].Chunk.ID != after[i].Chunk.ID {
			t.Errorf("result %d: chunk %q before, %q after", i, before[i].Chunk.ID, after[i].Chunk.ID)
		}
		if diff := math.Abs(float64(before[i].Distance - after[i].Distance)); diff > 1e-6 {
			t.Errorf("result %d: distance drifted by %v", i, diff)
		}
		if before[i].Chunk.Content != after[i].Chunk.Content {
			t.Errorf("result %d: chunk content changed across round trip", i)
		}
	}
}

func TestFlatIndex_LoadMissingDirectory(t *testing.T) {
	idx := NewFlatIndex()
	err := idx.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load() error = %v, want ErrCorruptIndex", err)
	}
}

func TestFlatIndex_LoadMissingVectorsFile(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)
	dir := t.TempDir()

	if err := idx.Save(ctx, dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.Remove(filepath.Join(dir, VectorsFile)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	err := NewFlatIndex().Load(ctx, dir)
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load() error = %v, want ErrCorruptIndex", err)
	}
}

func TestFlatIndex_LoadMissingChunkStore(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)
	dir := t.TempDir()

	if err := idx.Save(ctx, dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.Remove(filepath.Join(dir, ChunksFile)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	err := NewFlatIndex().Load(ctx, dir)
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load() error = %v, want ErrCorruptIndex", err)
	}
}

func TestFlatIndex_LoadGarbageVectorsFile(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)
	dir := t.TempDir()

	if err := idx.Save(ctx, dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, VectorsFile), []byte("not an index"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := NewFlatIndex().Load(ctx, dir)
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load() error = %v, want ErrCorruptIndex", err)
	}
}

func TestFlatIndex_SaveBeforeBuild(t *testing.T) {
	idx := NewFlatIndex()
	if err := idx.Save(context.Background(), t.TempDir()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Save() error = %v, want ErrNotLoaded", err)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	out := normalize([]float32{0, 0, 0})
	for i, v := range out {
		if v != 0 {
			t.Errorf("normalize(zero)[%d] = %v, want 0", i, v)
		}
	}
}
