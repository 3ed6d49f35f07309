package ingest

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"hrassist/internal/contextutil"
	"hrassist/internal/llm"
	"hrassist/internal/storage"
	"hrassist/internal/vectorstore"
)

// embedBatchSize bounds how many chunk texts go to the embedder per call.
const embedBatchSize = 32

// Options tunes the pipeline. Zero values take the chunker defaults.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Pipeline orchestrates a full reindex: extract every source, chunk and
// categorize, embed in batches, then build and save the flat index (which
// persists both vectors and chunk rows). A Qdrant mirror, when configured,
// is reset and filled with the same embedded chunks.
type Pipeline struct {
	extractor *Extractor
	chunker   *Chunker
	embedder  llm.Embedder
	mirror    *vectorstore.QdrantStore
}

// NewPipeline creates a pipeline. mirror may be nil when only the local
// flat index is wanted.
func NewPipeline(embedder llm.Embedder, mirror *vectorstore.QdrantStore, opts Options) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(),
		chunker:   NewChunker(opts.ChunkSize, opts.ChunkOverlap),
		embedder:  embedder,
		mirror:    mirror,
	}
}

// Report summarizes one pipeline run.
type Report struct {
	Sources       int            // sources that produced chunks
	SourcesFailed int            // sources skipped after an extraction error
	Chunks        int
	Categories    map[string]int // chunk count per content category
	Dim           int            // embedding dimension of the built index
	Sizes         SizeStats
	Duration      time.Duration
}

// SizeStats describes chunk sizes in runes.
type SizeStats struct {
	Min  int
	Max  int
	Mean float64
	P95  int
}

// Run ingests sources and writes the index to indexDir. Individual source
// failures are logged and skipped; producing no chunks at all is an error,
// as are embedding and persistence failures.
func (p *Pipeline) Run(ctx context.Context, sources []Source, indexDir string) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	started := time.Now()
	logger.InfoContext(ctx, "starting ingestion", "sources", len(sources))

	report := &Report{Categories: make(map[string]int)}
	var all []storage.Chunk
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		chunks, err := p.processSource(ctx, src)
		if err != nil {
			report.SourcesFailed++
			logger.ErrorContext(ctx, "failed to process source",
				"type", string(src.Type),
				"path", src.Path,
				"error", err,
			)
			continue
		}
		if len(chunks) == 0 {
			logger.WarnContext(ctx, "no text extracted", "type", string(src.Type), "path", src.Path)
			continue
		}

		report.Sources++
		for _, chunk := range chunks {
			report.Categories[chunk.Category]++
		}
		all = append(all, chunks...)
		logger.InfoContext(ctx, "processed source", "path", src.Path, "chunks", len(chunks))
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no chunks extracted from %d sources", len(sources))
	}

	embedded, err := p.embedAll(ctx, all)
	if err != nil {
		return nil, err
	}

	index := vectorstore.NewFlatIndex()
	if err := index.Build(embedded); err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	if err := index.Save(ctx, indexDir); err != nil {
		return nil, fmt.Errorf("failed to save index: %w", err)
	}

	if p.mirror != nil {
		if err := p.mirrorChunks(ctx, embedded, index.Dim()); err != nil {
			return nil, err
		}
	}

	report.Chunks = len(all)
	report.Dim = index.Dim()
	report.Sizes = sizeStats(all)
	report.Duration = time.Since(started)

	logger.InfoContext(ctx, "ingestion completed",
		"sources", report.Sources,
		"failed", report.SourcesFailed,
		"chunks", report.Chunks,
		"dim", report.Dim,
	)
	return report, nil
}

// processSource extracts one source into categorized chunks. CSV files
// yield one chunk per row; everything else goes through the chunker.
func (p *Pipeline) processSource(ctx context.Context, src Source) ([]storage.Chunk, error) {
	filename := sourceFilename(src)

	var pieces []string
	fileType := storage.FileTypeHTML
	if src.Type == SourceFile {
		fileType = storage.ParseFileType(filepath.Ext(src.Path))
	}

	if src.Type == SourceFile && fileType == storage.FileTypeCSV {
		entities, err := p.extractor.Entities(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		pieces = entities
	} else {
		text, err := p.extractor.Extract(ctx, src)
		if err != nil {
			return nil, err
		}
		pieces = p.chunker.Split(text)
	}

	chunks := make([]storage.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, storage.Chunk{
			ID:          uuid.New().String(),
			Content:     piece,
			SourcePath:  src.Path,
			Filename:    filename,
			FileType:    fileType,
			Category:    Categorize(piece, filename),
			ChunkIndex:  i,
			TotalChunks: len(pieces),
		})
	}
	return chunks, nil
}

// embedAll embeds chunk contents in batches and pairs them with their
// chunks, failing fast on count or dimension mismatches.
func (p *Pipeline) embedAll(ctx context.Context, chunks []storage.Chunk) ([]vectorstore.EmbeddedChunk, error) {
	dim := p.embedder.Dimensions()
	embedded := make([]vectorstore.EmbeddedChunk, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
		}

		for i, vec := range vectors {
			if dim > 0 && len(vec) != dim {
				return nil, fmt.Errorf("%w: expected %d, got %d", vectorstore.ErrDimensionMismatch, dim, len(vec))
			}
			embedded = append(embedded, vectorstore.EmbeddedChunk{Chunk: batch[i], Vector: vec})
		}
	}
	return embedded, nil
}

// mirrorChunks resets the Qdrant collection and upserts every embedded
// chunk in batches.
func (p *Pipeline) mirrorChunks(ctx context.Context, embedded []vectorstore.EmbeddedChunk, dim int) error {
	if err := p.mirror.Reset(ctx, dim); err != nil {
		return fmt.Errorf("failed to reset qdrant collection: %w", err)
	}
	for start := 0; start < len(embedded); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(embedded) {
			end = len(embedded)
		}
		if err := p.mirror.Upsert(ctx, embedded[start:end]); err != nil {
			return fmt.Errorf("failed to upsert chunks %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}

// sizeStats computes min/max/mean/p95 chunk sizes in runes.
func sizeStats(chunks []storage.Chunk) SizeStats {
	if len(chunks) == 0 {
		return SizeStats{}
	}

	sizes := make([]int, len(chunks))
	for i, chunk := range chunks {
		sizes[i] = utf8.RuneCountInString(chunk.Content)
	}
	sort.Ints(sizes)

	sum := 0
	for _, n := range sizes {
		sum += n
	}
	mean := float64(sum) / float64(len(sizes))

	p95Index := int(math.Ceil(float64(len(sizes)) * 0.95))
	if p95Index >= len(sizes) {
		p95Index = len(sizes) - 1
	}

	return SizeStats{
		Min:  sizes[0],
		Max:  sizes[len(sizes)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sizes[p95Index],
	}
}
