package ingest

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Separator ladder, coarsest first: paragraphs, lines, sentences, clauses,
// words. Text with none of these gets a hard rune split.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " "}

// Chunker splits extracted text into overlapping chunks. It prefers the
// coarsest boundary that keeps pieces under the size limit, recursing down
// the separator ladder only for pieces that are still too large. Sizes are
// measured in runes.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker builds a chunker. Non-positive or inconsistent values fall
// back to the defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split returns the chunks of text, each at most the configured size, with
// consecutive chunks sharing an overlap tail so context spanning a boundary
// survives retrieval. Chunks are trimmed and never empty.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return c.split(text, separators)
}

func (c *Chunker) split(text string, seps []string) []string {
	if utf8.RuneCountInString(text) <= c.size {
		return []string{text}
	}

	sep := ""
	var rest []string
	for i, s := range seps {
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return c.hardSplit(text)
	}

	parts := strings.SplitAfter(text, sep)
	pieces := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) > c.size {
			pieces = append(pieces, c.split(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return c.merge(pieces)
}

// merge greedily packs pieces into chunks up to the size limit, seeding
// each new chunk with the tail of the previous one.
func (c *Chunker) merge(pieces []string) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		chunk := strings.TrimSpace(cur.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		tail := overlapTail(cur.String(), c.overlap)
		cur.Reset()
		cur.WriteString(tail)
		curLen = utf8.RuneCountInString(tail)
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if curLen > 0 && curLen+pieceLen > c.size {
			flush()
			if curLen+pieceLen > c.size {
				// the overlap tail plus this piece would overflow again
				cur.Reset()
				curLen = 0
			}
		}
		cur.WriteString(piece)
		curLen += pieceLen
	}
	if chunk := strings.TrimSpace(cur.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// hardSplit windows over runes when no separator exists at all, stepping by
// size minus overlap so windows still share context.
func (c *Chunker) hardSplit(text string) []string {
	runes := []rune(text)
	step := c.size - c.overlap
	if step <= 0 {
		step = c.size
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// overlapTail returns the last n runes of s, advanced to the next word
// boundary so chunks do not open mid-word.
func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[len(runes)-n:]
	}
	tail := string(runes)
	if i := strings.IndexByte(tail, ' '); i >= 0 && i+1 < len(tail) {
		tail = tail[i+1:]
	}
	return tail
}
