package vectorstore

import (
	"context"
	"net/url"
	"strconv"
	"testing"
)

// TestNewQdrantStore_URLParsing tests URL parsing logic without creating a real client.
func TestNewQdrantStore_URLParsing(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantHost string
		wantPort int
	}{
		{
			name:     "valid URL",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "URL with custom port",
			urlStr:   "http://localhost:9000",
			wantHost: "localhost",
			wantPort: 9001,
		},
		{
			name:     "URL without port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334, // Default
		},
		{
			name:     "URL without hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost", // Defaults to localhost
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := url.Parse(tt.urlStr)
			if err != nil {
				t.Fatalf("Failed to parse URL: %v", err)
			}

			// Mirror the URL parsing logic NewQdrantStore uses
			host := parsedURL.Hostname()
			if host == "" {
				host = "localhost"
			}

			port := 6334 // Default gRPC port
			if parsedURL.Port() != "" {
				httpPort, err := strconv.Atoi(parsedURL.Port())
				if err == nil {
					port = httpPort + 1
				}
			}

			if host != tt.wantHost {
				t.Errorf("Host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("Port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore("://invalid", "hr_documents")
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestQdrantStore_Upsert_EmptyChunks(t *testing.T) {
	// Upsert returns early before touching the client
	store := &QdrantStore{collection: "test-collection"}

	if err := store.Upsert(context.Background(), nil); err != nil {
		t.Errorf("Upsert() with no chunks should return early without error, got: %v", err)
	}
}

func TestQdrantStore_Search_InvalidK(t *testing.T) {
	// k validation fails before the client is used
	store := &QdrantStore{collection: "test-collection"}

	ctx := context.Background()
	if _, err := store.Search(ctx, []float32{1.0, 2.0}, 0); err == nil {
		t.Error("Search() with k=0 should return error")
	}
	if _, err := store.Search(ctx, []float32{1.0, 2.0}, -1); err == nil {
		t.Error("Search() with k=-1 should return error")
	}
}

func TestPayloadToChunk_Empty(t *testing.T) {
	chunk := payloadToChunk(nil)
	if chunk.Content != "" || chunk.Filename != "" {
		t.Errorf("payloadToChunk(nil) should produce zero chunk, got %+v", chunk)
	}
}
