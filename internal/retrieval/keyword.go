package retrieval

import (
	"math"
	"sort"

	"hrassist/internal/storage"
)

// BM25 parameters, standard values.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// KeywordMatch is one lexical search hit with its raw BM25 score.
type KeywordMatch struct {
	Chunk storage.Chunk
	Score float64
}

// KeywordIndex is an in-memory BM25 index over chunk contents. It is built
// once after ingestion and is safe for concurrent reads.
type KeywordIndex struct {
	chunks    []storage.Chunk
	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgDocLen float64
}

// NewKeywordIndex builds the index. A nil or empty chunk list yields an
// index that returns no matches.
func NewKeywordIndex(chunks []storage.Chunk) *KeywordIndex {
	idx := &KeywordIndex{
		chunks:    chunks,
		termFreqs: make([]map[string]int, len(chunks)),
		docLens:   make([]int, len(chunks)),
		docFreq:   make(map[string]int),
	}

	var totalLen int
	for i, chunk := range chunks {
		tokens := filterStopwords(tokenize(chunk.Content))
		freq := make(map[string]int, len(tokens))
		for _, token := range tokens {
			freq[token]++
		}
		for token := range freq {
			idx.docFreq[token]++
		}
		idx.termFreqs[i] = freq
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)
	}
	if len(chunks) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(chunks))
	}
	return idx
}

// Len returns the number of indexed chunks.
func (idx *KeywordIndex) Len() int {
	return len(idx.chunks)
}

// Search scores every chunk sharing at least one query term and returns the
// top k by BM25 score, highest first. Ties keep index order.
func (idx *KeywordIndex) Search(queryText string, k int) []KeywordMatch {
	if k <= 0 || len(idx.chunks) == 0 {
		return nil
	}

	terms := filterStopwords(tokenize(queryText))
	if len(terms) == 0 {
		return nil
	}

	n := float64(len(idx.chunks))
	matches := make([]KeywordMatch, 0, len(idx.chunks))
	for i, chunk := range idx.chunks {
		var score float64
		for _, term := range terms {
			tf := idx.termFreqs[i][term]
			if tf == 0 {
				continue
			}
			df := float64(idx.docFreq[term])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - bm25B + bm25B*float64(idx.docLens[i])/idx.avgDocLen
			score += idf * float64(tf) * (bm25K1 + 1) / (float64(tf) + bm25K1*norm)
		}
		if score > 0 {
			matches = append(matches, KeywordMatch{Chunk: chunk, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
