// Package retrieval finds and ranks document chunks for a processed query.
// Candidates come from a semantic leg (vector search) and an optional
// keyword leg (BM25); each candidate is then rescored with a weighted blend
// of five component signals before thresholding and truncation.
package retrieval

import (
	"context"
	"sort"
	"strings"
	"sync"

	"hrassist/internal/contextutil"
	"hrassist/internal/llm"
	"hrassist/internal/query"
	"hrassist/internal/storage"
	"hrassist/internal/vectorstore"
)

// candidate is a raw search hit before reranking. relevance is the
// normalized search-leg similarity.
type candidate struct {
	chunk     storage.Chunk
	relevance float64
}

// Engine runs strategy selection, candidate gathering and reranking.
// Safe for concurrent use; the keyword index may be nil when not built.
type Engine struct {
	embedder llm.Embedder
	searcher vectorstore.Searcher
	keyword  *KeywordIndex
	opts     Options
}

// NewEngine builds an engine. Zero-valued option fields take defaults.
func NewEngine(embedder llm.Embedder, searcher vectorstore.Searcher, keyword *KeywordIndex, opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.DefaultK <= 0 {
		opts.DefaultK = defaults.DefaultK
	}
	if opts.MaxK <= 0 {
		opts.MaxK = defaults.MaxK
	}
	if opts.MinScore <= 0 {
		opts.MinScore = defaults.MinScore
	}
	if opts.RerankTopK <= 0 {
		opts.RerankTopK = defaults.RerankTopK
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = defaults.Weights
	}
	if opts.SourceWeights == nil {
		opts.SourceWeights = defaults.SourceWeights
	}
	if opts.Strategies == nil {
		opts.Strategies = defaults.Strategies
	}

	return &Engine{
		embedder: embedder,
		searcher: searcher,
		keyword:  keyword,
		opts:     opts,
	}
}

// Retrieve gathers candidates with the strategy for the query type, scores
// them concurrently, and returns up to k results sorted by descending
// confidence. Backend failures degrade to whatever leg still works; an
// empty result list is a valid outcome, not an error. Only context
// cancellation is returned as an error.
func (e *Engine) Retrieve(ctx context.Context, qc *query.Context) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	cfg := e.opts.strategyFor(qc)

	candidates, method := e.gather(ctx, qc, cfg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		logger.InfoContext(ctx, "retrieval found no candidates",
			"strategy", string(method),
			"query_type", string(qc.Type),
		)
		return nil, nil
	}
	if len(candidates) > e.opts.RerankTopK {
		candidates = candidates[:e.opts.RerankTopK]
	}

	results := make([]Result, len(candidates))
	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand candidate) {
			defer wg.Done()
			results[i] = e.score(qc, cand, method)
		}(i, cand)
	}
	wg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Confidence > results[b].Confidence
	})

	kept := results[:0]
	for _, r := range results {
		if r.Confidence >= e.opts.MinScore {
			kept = append(kept, r)
		}
	}
	if len(kept) > cfg.K {
		kept = kept[:cfg.K]
	}

	logger.InfoContext(ctx, "retrieval completed",
		"strategy", string(method),
		"candidates", len(candidates),
		"results", len(kept),
	)
	return kept, nil
}

func (e *Engine) score(qc *query.Context, cand candidate, method Strategy) Result {
	content := cand.chunk.Content
	contentLower := strings.ToLower(content)

	relevance := clamp01(cand.relevance)
	confidence := contentConfidence(qc, content)
	quality := chunkQuality(content)
	reliability := sourceReliability(cand.chunk.Filename, e.opts.SourceWeights)
	contextScore := contextMatch(qc, contentLower)

	final := clamp01(e.opts.Weights.blend(relevance, confidence, quality, reliability, contextScore))

	return Result{
		Chunk:             cand.chunk,
		Relevance:         relevance,
		Confidence:        final,
		Method:            method,
		ChunkQuality:      quality,
		SourceReliability: reliability,
		ContextMatch:      contextScore,
	}
}

// gather dispatches to the strategy's search path, fetching 2k raw
// candidates so reranking has headroom over the final cut.
func (e *Engine) gather(ctx context.Context, qc *query.Context, cfg StrategyConfig) ([]candidate, Strategy) {
	fetch := cfg.K * 2

	switch cfg.Strategy {
	case StrategySemanticOnly:
		return e.semanticCandidates(ctx, qc.ProcessedQuery, fetch), StrategySemanticOnly

	case StrategyKeywordOnly:
		return e.keywordOrSemantic(ctx, qc.ProcessedQuery, fetch), StrategyKeywordOnly

	case StrategyPersonFocused:
		people := qc.Entities[query.EntityPeople]
		if len(people) == 0 {
			return e.keywordOrSemantic(ctx, qc.ProcessedQuery, fetch), StrategyPersonFocused
		}
		augmented := qc.ProcessedQuery + " " + strings.Join(people, " ") + " faculty staff professor"
		return e.hybridCandidates(ctx, augmented, cfg.SemanticWeight, cfg.KeywordWeight, fetch), StrategyPersonFocused

	case StrategyPolicyFocused:
		augmented := qc.ProcessedQuery + " policy procedure guideline handbook manual"
		return e.semanticCandidates(ctx, augmented, fetch), StrategyPolicyFocused

	case StrategyAfricaFocused:
		augmented := qc.ProcessedQuery + " CMU-Africa Kigali Rwanda africa campus"
		return e.hybridCandidates(ctx, augmented, cfg.SemanticWeight, cfg.KeywordWeight, fetch), StrategyAfricaFocused

	default:
		return e.hybridCandidates(ctx, qc.ProcessedQuery, cfg.SemanticWeight, cfg.KeywordWeight, fetch), StrategyHybrid
	}
}

// semanticCandidates embeds the query and searches the vector index.
// Failures are logged and yield no candidates rather than an error.
func (e *Engine) semanticCandidates(ctx context.Context, queryText string, n int) []candidate {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := e.embedder.EmbedTexts(ctx, []string{queryText})
	if err != nil {
		logger.WarnContext(ctx, "failed to embed query", "error", err)
		return nil
	}
	if len(vectors) == 0 {
		logger.WarnContext(ctx, "embedder returned no vector for query")
		return nil
	}

	matches, err := e.searcher.Search(ctx, vectors[0], n)
	if err != nil {
		logger.WarnContext(ctx, "vector search failed", "error", err)
		return nil
	}

	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, candidate{
			chunk:     m.Chunk,
			relevance: clamp01(1 - float64(m.Distance)/2),
		})
	}
	return candidates
}

// keywordCandidates searches the BM25 index and max-normalizes scores so
// relevance lands in [0,1].
func (e *Engine) keywordCandidates(queryText string, n int) []candidate {
	matches := e.keyword.Search(queryText, n)
	if len(matches) == 0 {
		return nil
	}

	maxScore := matches[0].Score
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		var relevance float64
		if maxScore > 0 {
			relevance = m.Score / maxScore
		}
		candidates = append(candidates, candidate{chunk: m.Chunk, relevance: relevance})
	}
	return candidates
}

// keywordOrSemantic serves keyword-biased strategies. Without a keyword
// index it degrades to semantic search instead of returning nothing.
func (e *Engine) keywordOrSemantic(ctx context.Context, queryText string, n int) []candidate {
	if e.keyword == nil || e.keyword.Len() == 0 {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "keyword index unavailable, degrading to semantic search")
		return e.semanticCandidates(ctx, queryText, n)
	}
	return e.keywordCandidates(queryText, n)
}

// hybridCandidates runs both legs concurrently and fuses the ranked lists.
// A missing keyword index degrades to the semantic leg alone; a failed leg
// leaves the other leg's candidates as the result.
func (e *Engine) hybridCandidates(ctx context.Context, queryText string, semWeight, kwWeight float64, n int) []candidate {
	if e.keyword == nil || e.keyword.Len() == 0 {
		return e.semanticCandidates(ctx, queryText, n)
	}

	var semantic, keyword []candidate
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		semantic = e.semanticCandidates(ctx, queryText, n)
	}()
	go func() {
		defer wg.Done()
		keyword = e.keywordCandidates(queryText, n)
	}()
	wg.Wait()

	if len(semantic) == 0 {
		return keyword
	}
	if len(keyword) == 0 {
		return semantic
	}

	merged := fuse(semantic, keyword, semWeight, kwWeight)
	if len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

// fuse max-normalizes each leg's scores and merges them into one weighted
// list keyed by chunk ID. Ties keep semantic-leg order.
func fuse(semantic, keyword []candidate, semWeight, kwWeight float64) []candidate {
	if semWeight+kwWeight <= 0 {
		semWeight, kwWeight = 0.5, 0.5
	}

	maxRelevance := func(candidates []candidate) float64 {
		var m float64
		for _, c := range candidates {
			if c.relevance > m {
				m = c.relevance
			}
		}
		return m
	}
	semMax := maxRelevance(semantic)
	kwMax := maxRelevance(keyword)

	index := make(map[string]int, len(semantic)+len(keyword))
	merged := make([]candidate, 0, len(semantic)+len(keyword))
	add := func(c candidate, weight, legMax float64) {
		var score float64
		if legMax > 0 {
			score = weight * (c.relevance / legMax)
		}
		if i, ok := index[c.chunk.ID]; ok {
			merged[i].relevance += score
			return
		}
		index[c.chunk.ID] = len(merged)
		merged = append(merged, candidate{chunk: c.chunk, relevance: score})
	}
	for _, c := range semantic {
		add(c, semWeight, semMax)
	}
	for _, c := range keyword {
		add(c, kwWeight, kwMax)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].relevance > merged[b].relevance
	})
	return merged
}
