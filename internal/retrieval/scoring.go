package retrieval

import (
	"math"
	"strings"

	"hrassist/internal/query"
	"hrassist/internal/storage"
)

// Result is one scored retrieval hit. Confidence is the final blended score;
// result lists are ordered non-increasing on it and every component stays
// within [0,1].
type Result struct {
	Chunk             storage.Chunk
	Relevance         float64
	Confidence        float64
	Method            Strategy
	ChunkQuality      float64
	SourceReliability float64
	ContextMatch      float64
}

// Content vocabularies that raise the content confidence score.
var (
	policyVocabulary = []string{"policy", "procedure", "guideline", "requirement"}
	africaVocabulary = []string{"cmu-africa", "kigali", "rwanda", "africa campus"}
)

func (w Weights) blend(relevance, confidence, quality, reliability, contextScore float64) float64 {
	return relevance*w.Relevance +
		confidence*w.Confidence +
		quality*w.ChunkQuality +
		reliability*w.SourceReliability +
		contextScore*w.ContextMatch
}

// contentConfidence scores how strongly the chunk text answers the query:
// word overlap, priority keyword hits, entity mentions and two vocabulary
// bonuses, each term individually capped.
func contentConfidence(qc *query.Context, content string) float64 {
	contentLower := strings.ToLower(content)
	var score float64

	queryWords := fieldSet(qc.ProcessedQuery)
	if len(queryWords) > 0 {
		contentWords := fieldSet(content)
		overlap := 0
		for word := range queryWords {
			if _, ok := contentWords[word]; ok {
				overlap++
			}
		}
		score += math.Min(float64(overlap)/float64(len(queryWords)), 0.3)
	}

	priorityMatches := 0
	for _, kw := range qc.PriorityKeywords {
		if strings.Contains(contentLower, strings.ToLower(kw)) {
			priorityMatches++
		}
	}
	score += math.Min(float64(priorityMatches)*0.1, 0.2)

	for _, entities := range qc.Entities {
		if len(entities) == 0 {
			continue
		}
		matches := 0
		for _, entity := range entities {
			if strings.Contains(contentLower, strings.ToLower(entity)) {
				matches++
			}
		}
		score += math.Min(float64(matches)*0.05, 0.15)
	}

	if containsAnyTerm(contentLower, policyVocabulary) {
		score += 0.1
	}
	if containsAnyTerm(contentLower, africaVocabulary) {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

// chunkQuality averages three heuristics: length appropriateness, sentence
// completeness, and the presence of structural markers.
func chunkQuality(content string) float64 {
	length := len(content)
	var lengthScore float64
	switch {
	case length >= 100 && length <= 1000:
		lengthScore = 1.0
	case length < 100:
		lengthScore = float64(length) / 100
	default:
		lengthScore = math.Max(0.5, 1000/float64(length))
	}

	completeness := 0.5
	if strings.HasSuffix(content, ".") || strings.HasSuffix(content, "!") || strings.HasSuffix(content, "?") {
		completeness += 0.2
	}
	if content != strings.ToLower(content) {
		completeness += 0.1
	}
	if !strings.HasPrefix(content, " ") {
		completeness += 0.1
	}

	structure := 0.5
	if strings.ContainsAny(content, ":•") || strings.Contains(content, "1.") {
		structure += 0.2
	}
	if strings.Contains(content, "\n") {
		structure += 0.1
	}

	return (lengthScore + completeness + structure) / 3
}

// sourceReliability looks the filename up against the weight table, first
// match wins.
func sourceReliability(filename string, weights []SourceWeight) float64 {
	lower := strings.ToLower(filename)
	for _, sw := range weights {
		if strings.Contains(lower, sw.Pattern) {
			return sw.Weight
		}
	}
	return defaultSourceWeight
}

// contextMatch measures overlap between the chunk and the words of the last
// two conversation turns. Neutral 0.5 when there is no history to match.
func contextMatch(qc *query.Context, contentLower string) float64 {
	if len(qc.History) == 0 {
		return 0.5
	}

	turns := qc.History
	if len(turns) > 2 {
		turns = turns[len(turns)-2:]
	}
	var topics []string
	for _, turn := range turns {
		topics = append(topics, strings.Fields(strings.ToLower(turn.Question))...)
	}
	if len(topics) == 0 {
		return 0.5
	}

	matches := 0
	for _, topic := range topics {
		if strings.Contains(contentLower, topic) {
			matches++
		}
	}
	return math.Min(float64(matches)/float64(len(topics)), 1.0)
}

func containsAnyTerm(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
