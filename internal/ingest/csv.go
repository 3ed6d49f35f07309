package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"hrassist/internal/contextutil"
)

const (
	// maxCSVRows caps entity extraction so a huge export cannot flood the
	// index with row chunks.
	maxCSVRows = 500
	// maxCSVValueLen truncates very long cell values.
	maxCSVValueLen = 500
)

// Columns that make a good entity title, checked in order.
var primaryColumns = []string{"name", "title", "document name", "document_name", "filename"}

// Entities extracts one text document per CSV row so row-level records
// (directory entries, contact lists) stay whole instead of being split
// mid-row by the chunker. Each document reads as
//
//	Entity: <title>
//	Source: <filename>
//	<header>: <value>
//	...
func (e *Extractor) Entities(ctx context.Context, filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header in %s: %w", filePath, err)
	}
	primary := primaryColumn(header)
	filename := filepath.Base(filePath)

	logger := contextutil.LoggerFromContext(ctx)
	var entities []string
	for i := 0; ; i++ {
		if i >= maxCSVRows {
			logger.InfoContext(ctx, "csv row limit reached", "path", filePath, "limit", maxCSVRows)
			break
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row in %s: %w", filePath, err)
		}

		entity := formatEntity(header, row, primary, filename, i)
		if entity != "" {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

// formatEntity renders one row. Rows with no non-empty values produce "".
func formatEntity(header, row []string, primary int, filename string, rowIndex int) string {
	title := ""
	if primary < len(row) {
		title = strings.TrimSpace(row[primary])
	}
	if title == "" {
		title = fmt.Sprintf("Entity %d", rowIndex+1)
	}

	lines := []string{"Entity: " + title, "Source: " + filename}
	for j, name := range header {
		if j >= len(row) {
			break
		}
		value := strings.TrimSpace(row[j])
		if value == "" {
			continue
		}
		if utf8.RuneCountInString(value) > maxCSVValueLen {
			value = string([]rune(value)[:maxCSVValueLen]) + "..."
		}
		lines = append(lines, strings.TrimSpace(name)+": "+value)
	}
	if len(lines) == 2 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// primaryColumn finds the column to title entities with, falling back to
// the first column.
func primaryColumn(header []string) int {
	for _, want := range primaryColumns {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}
	return 0
}

// detectDelimiter picks the candidate delimiter that splits the first line
// into the most fields. Comma wins ties.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best := ','
	bestFields := 0
	for _, cand := range []rune{',', ';', '\t', '|'} {
		r := csv.NewReader(bytes.NewReader(line))
		r.Comma = cand
		fields, err := r.Read()
		if err != nil {
			continue
		}
		if len(fields) > bestFields {
			bestFields = len(fields)
			best = cand
		}
	}
	return best
}
