package storage

import (
	"context"
	"errors"
	"testing"
)

func newTestRepo(t *testing.T) *ChunkRepo {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := tmpDir + "/test.db"

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewChunkRepo(db)
}

func testChunk(id, filename string, index int) Chunk {
	return Chunk{
		ID:          id,
		Content:     "Paid time off requests must be submitted via the HR portal.",
		SourcePath:  "/docs/" + filename,
		Filename:    filename,
		FileType:    FileTypePDF,
		Category:    "Policy",
		ChunkIndex:  index,
		TotalChunks: 2,
	}
}

func TestChunkRepo_InsertBatchAndListAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunks := []Chunk{
		testChunk("id-1", "leave-policy.pdf", 0),
		testChunk("id-2", "leave-policy.pdf", 1),
		testChunk("id-3", "benefits.html", 0),
	}
	if err := repo.InsertBatch(ctx, chunks); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListAll() returned %d chunks, want 3", len(got))
	}
	// Ordered by filename then chunk_index
	if got[0].Filename != "benefits.html" {
		t.Errorf("first chunk filename = %q, want benefits.html", got[0].Filename)
	}
	if got[1].ID != "id-1" || got[2].ID != "id-2" {
		t.Errorf("leave-policy chunks out of order: %q, %q", got[1].ID, got[2].ID)
	}
}

func TestChunkRepo_InsertBatchEmpty(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.InsertBatch(context.Background(), nil); err != nil {
		t.Fatalf("InsertBatch(nil) error = %v", err)
	}
}

func TestChunkRepo_GetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := testChunk("id-1", "leave-policy.pdf", 0)
	if err := repo.InsertBatch(ctx, []Chunk{want}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Content != want.Content {
		t.Errorf("content = %q, want %q", got.Content, want.Content)
	}
	if got.FileType != FileTypePDF {
		t.Errorf("file type = %q, want %q", got.FileType, FileTypePDF)
	}
	if got.TotalChunks != 2 {
		t.Errorf("total chunks = %d, want 2", got.TotalChunks)
	}
}

func TestChunkRepo_GetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestChunkRepo_CountAndDeleteAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunks := []Chunk{
		testChunk("id-1", "a.txt", 0),
		testChunk("id-2", "b.txt", 0),
	}
	if err := repo.InsertBatch(ctx, chunks); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("Count() after DeleteAll = %d, want 0", n)
	}
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		ext  string
		want FileType
	}{
		{".pdf", FileTypePDF},
		{"pdf", FileTypePDF},
		{".csv", FileTypeCSV},
		{".html", FileTypeHTML},
		{".htm", FileTypeHTML},
		{".txt", FileTypeTXT},
		{".md", FileTypeTXT},
		{"", FileTypeTXT},
	}

	for _, tt := range tests {
		if got := ParseFileType(tt.ext); got != tt.want {
			t.Errorf("ParseFileType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
