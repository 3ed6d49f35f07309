package retrieval

import "hrassist/internal/query"

// Strategy selects how candidates are gathered before reranking.
type Strategy string

const (
	StrategySemanticOnly  Strategy = "semantic"
	StrategyKeywordOnly   Strategy = "keyword"
	StrategyHybrid        Strategy = "hybrid"
	StrategyPersonFocused Strategy = "person_focused"
	StrategyPolicyFocused Strategy = "policy_focused"
	StrategyAfricaFocused Strategy = "africa_focused"
)

// StrategyConfig is the per-query-type retrieval tuning.
type StrategyConfig struct {
	Strategy       Strategy
	K              int
	SemanticWeight float64
	KeywordWeight  float64
}

// Weights are the blend coefficients for the five component scores.
// They are tunables, not derived values; override via configuration.
type Weights struct {
	Relevance         float64
	Confidence        float64
	ChunkQuality      float64
	SourceReliability float64
	ContextMatch      float64
}

// DefaultWeights returns the blend used unless configuration overrides it.
func DefaultWeights() Weights {
	return Weights{
		Relevance:         0.30,
		Confidence:        0.25,
		ChunkQuality:      0.15,
		SourceReliability: 0.15,
		ContextMatch:      0.15,
	}
}

// SourceWeight maps a filename substring to a reliability score.
// Patterns are checked in order, so more specific entries come first.
type SourceWeight struct {
	Pattern string
	Weight  float64
}

// DefaultSourceWeights returns the reliability table for known document
// families. Filenames matching no pattern score defaultSourceWeight.
func DefaultSourceWeights() []SourceWeight {
	return []SourceWeight{
		{Pattern: "hiring-process-2024", Weight: 1.0},
		{Pattern: "cmu-africa", Weight: 0.95},
		{Pattern: "africa", Weight: 0.9},
		{Pattern: "kigali", Weight: 0.9},
		{Pattern: "rwanda", Weight: 0.9},
		{Pattern: "travel", Weight: 0.85},
		{Pattern: "benefits", Weight: 0.8},
		{Pattern: "general", Weight: 0.7},
	}
}

const defaultSourceWeight = 0.7

// Options tunes the engine. Zero values fall back to the defaults below.
type Options struct {
	DefaultK      int
	MaxK          int
	MinScore      float64
	RerankTopK    int
	Weights       Weights
	SourceWeights []SourceWeight
	Strategies    map[query.Type]StrategyConfig
}

// DefaultOptions returns the engine tuning used unless configuration
// overrides individual fields.
func DefaultOptions() Options {
	return Options{
		DefaultK:      8,
		MaxK:          12,
		MinScore:      0.3,
		RerankTopK:    20,
		Weights:       DefaultWeights(),
		SourceWeights: DefaultSourceWeights(),
		Strategies:    DefaultStrategyConfigs(),
	}
}

// DefaultStrategyConfigs maps each query type to its retrieval tuning.
// Types not present here (greeting, unclear) use the general_info entry.
func DefaultStrategyConfigs() map[query.Type]StrategyConfig {
	return map[query.Type]StrategyConfig{
		query.TypePersonLookup: {
			Strategy:       StrategyPersonFocused,
			K:              6,
			SemanticWeight: 0.3,
			KeywordWeight:  0.7,
		},
		query.TypePolicyInquiry: {
			Strategy:       StrategyPolicyFocused,
			K:              8,
			SemanticWeight: 0.6,
			KeywordWeight:  0.4,
		},
		query.TypeProcedureInquiry: {
			Strategy:       StrategyHybrid,
			K:              10,
			SemanticWeight: 0.5,
			KeywordWeight:  0.5,
		},
		query.TypeTravelRelated: {
			Strategy:       StrategyHybrid,
			K:              8,
			SemanticWeight: 0.6,
			KeywordWeight:  0.4,
		},
		query.TypeBenefitsRelated: {
			Strategy:       StrategySemanticOnly,
			K:              8,
			SemanticWeight: 0.8,
			KeywordWeight:  0.2,
		},
		query.TypeGeneralInfo: {
			Strategy:       StrategyHybrid,
			K:              8,
			SemanticWeight: 0.5,
			KeywordWeight:  0.5,
		},
	}
}

// Location terms that steer a general query toward campus-specific content.
var africaTriggerTerms = map[string]struct{}{
	"africa":     {},
	"cmu africa": {},
	"cmu-africa": {},
	"kigali":     {},
	"rwanda":     {},
	"campus":     {},
}

// strategyFor picks the config for a query. General questions that carry a
// location keyword switch to the africa_focused strategy so campus documents
// outrank the generic handbook material.
func (o Options) strategyFor(qc *query.Context) StrategyConfig {
	cfg, ok := o.Strategies[qc.Type]
	if !ok {
		cfg = o.Strategies[query.TypeGeneralInfo]
	}

	if qc.Type == query.TypeGeneralInfo {
		for _, kw := range qc.PriorityKeywords {
			if _, ok := africaTriggerTerms[kw]; ok {
				cfg.Strategy = StrategyAfricaFocused
				cfg.SemanticWeight = 0.6
				cfg.KeywordWeight = 0.4
				break
			}
		}
	}

	if cfg.K <= 0 {
		cfg.K = o.DefaultK
	}
	if o.MaxK > 0 && cfg.K > o.MaxK {
		cfg.K = o.MaxK
	}
	return cfg
}
