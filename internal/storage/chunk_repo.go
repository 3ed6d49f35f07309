package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks hrassist/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// InsertBatch inserts chunks in a single transaction.
	// Every chunk.ID must be set (UUID) before calling this method.
	InsertBatch(ctx context.Context, chunks []Chunk) error
	// ListAll returns every chunk ordered by filename then chunk_index.
	ListAll(ctx context.Context) ([]Chunk, error)
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Chunk, error)
	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)
	// DeleteAll removes every chunk. Used by full reindex.
	DeleteAll(ctx context.Context) error
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// InsertBatch inserts chunks in a single transaction so a failed reindex
// never leaves a half-written store behind.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (id, content, source_path, filename, file_type, category, chunk_index, total_chunks) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range chunks {
		c := &chunks[i]
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.Content, c.SourcePath, c.Filename, string(c.FileType), c.Category, c.ChunkIndex, c.TotalChunks,
		); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk batch: %w", err)
	}
	return nil
}

// ListAll returns every chunk ordered by filename then chunk_index.
// Returns an empty slice if no chunks exist (not an error).
func (r *ChunkRepo) ListAll(ctx context.Context) ([]Chunk, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, content, source_path, filename, file_type, category, chunk_index, total_chunks FROM chunks ORDER BY filename, chunk_index",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		var fileType string
		if err := rows.Scan(&c.ID, &c.Content, &c.SourcePath, &c.Filename, &fileType, &c.Category, &c.ChunkIndex, &c.TotalChunks); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c.FileType = FileType(fileType)
		chunks = append(chunks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*Chunk, error) {
	var c Chunk
	var fileType string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, content, source_path, filename, file_type, category, chunk_index, total_chunks FROM chunks WHERE id = ?",
		id,
	).Scan(&c.ID, &c.Content, &c.SourcePath, &c.Filename, &fileType, &c.Category, &c.ChunkIndex, &c.TotalChunks)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}

	c.FileType = FileType(fileType)
	return &c, nil
}

// Count returns the number of stored chunks.
func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// DeleteAll removes every chunk. Used by full reindex.
func (r *ChunkRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}
