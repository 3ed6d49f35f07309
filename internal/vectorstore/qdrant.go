package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"hrassist/internal/contextutil"
	"hrassist/internal/storage"
)

// QdrantStore implements Searcher against a running Qdrant instance.
// Persistence is server-side, so Save/Load do not apply; reindexing
// recreates the collection instead.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) will be derived from the HTTP port.
func NewQdrantStore(urlStr, collection string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// Extract port from URL, default to 6333 for HTTP
	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		collection: collection,
	}, nil
}

// Upsert inserts or updates embedded chunks in the collection.
func (s *QdrantStore) Upsert(ctx context.Context, chunks []EmbeddedChunk) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(c.Chunk.ID),
			Vectors: qdrant.NewVectors(c.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":      c.Chunk.Content,
				"source_path":  c.Chunk.SourcePath,
				"filename":     c.Chunk.Filename,
				"file_type":    string(c.Chunk.FileType),
				"category":     c.Chunk.Category,
				"chunk_index":  c.Chunk.ChunkIndex,
				"total_chunks": c.Chunk.TotalChunks,
			}),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", s.collection, "count", len(chunks), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", s.collection, "count", len(chunks))
	return nil
}

// Search performs a similarity search and maps payloads back to chunks.
// Qdrant returns cosine similarity; Match carries cosine distance, so the
// score is converted before returning.
func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	limit := uint64(k)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", s.collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	matches := make([]Match, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		chunk := payloadToChunk(point.Payload)
		if point.Id != nil {
			chunk.ID = point.Id.GetUuid()
		}
		matches = append(matches, Match{
			Chunk:    chunk,
			Distance: 1 - point.Score,
		})
	}

	logger.DebugContext(ctx, "search completed", "collection", s.collection, "k", k, "results", len(matches))
	return matches, nil
}

// EnsureCollection ensures the collection exists with the specified vector size.
// If the collection exists, validates that the vector size matches.
// If it doesn't exist, creates it with cosine distance.
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}
	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}
	params := vectorsConfig.GetParams()
	if params == nil {
		return fmt.Errorf("collection vector params are invalid")
	}

	if int(params.Size) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, params.Size)
	}

	logger.InfoContext(ctx, "collection validated", "collection", s.collection, "vector_size", vectorSize)
	return nil
}

// Reset drops and recreates the collection. Used by full reindex so stale
// points from removed documents do not linger.
func (s *QdrantStore) Reset(ctx context.Context, vectorSize int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}
	return s.EnsureCollection(ctx, vectorSize)
}

// Count returns the number of points in the collection.
func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection info: %w", err)
	}
	if info.PointsCount == nil {
		return 0, nil
	}
	return int(*info.PointsCount), nil
}

// payloadToChunk maps a Qdrant payload back into a chunk.
func payloadToChunk(payload map[string]*qdrant.Value) storage.Chunk {
	return storage.Chunk{
		Content:     payloadString(payload, "content"),
		SourcePath:  payloadString(payload, "source_path"),
		Filename:    payloadString(payload, "filename"),
		FileType:    storage.FileType(payloadString(payload, "file_type")),
		Category:    payloadString(payload, "category"),
		ChunkIndex:  payloadInt(payload, "chunk_index"),
		TotalChunks: payloadInt(payload, "total_chunks"),
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	return v.GetStringValue()
}

func payloadInt(payload map[string]*qdrant.Value, key string) int {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0
	}
	return int(v.GetIntegerValue())
}
