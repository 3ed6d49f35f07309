// Package ingest turns configured document sources into embedded, categorized
// chunks and persists them as a searchable index: parse the sources file,
// extract text per format, split into overlapping chunks, embed in batches,
// then build and save the vector index.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"hrassist/internal/contextutil"
)

// SourceType says how a source path is fetched.
type SourceType string

const (
	SourceFile SourceType = "file"
	SourceURL  SourceType = "url"
)

// Source is one line of the sources file: a type and a path or URL.
type Source struct {
	Type SourceType
	Path string
}

// LoadSources reads a sources file from disk. See ParseSources for the
// format.
func LoadSources(ctx context.Context, path string) ([]Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sources file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return ParseSources(ctx, file)
}

// ParseSources parses the line-oriented sources format: `type, path` per
// line with type being file or url. Blank lines and # comments are
// ignored. Lines with an unknown type or no path are skipped with a
// warning rather than failing the whole file.
func ParseSources(ctx context.Context, r io.Reader) ([]Source, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var sources []Source
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ",", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			logger.WarnContext(ctx, "invalid source line", "line", lineNum, "text", line)
			continue
		}

		sourceType := SourceType(strings.TrimSpace(parts[0]))
		path := strings.TrimSpace(parts[1])
		if sourceType != SourceFile && sourceType != SourceURL {
			logger.WarnContext(ctx, "unsupported source type", "line", lineNum, "type", string(sourceType))
			continue
		}

		sources = append(sources, Source{Type: sourceType, Path: path})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	return sources, nil
}
