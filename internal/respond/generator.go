// Package respond turns a processed query and its retrieved chunks into
// the final user-facing answer: prompt assembly, model calls with
// rate-limit backoff, the verification gate, and platform rendering.
package respond

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrassist/internal/contextutil"
	"hrassist/internal/format"
	"hrassist/internal/guard"
	"hrassist/internal/llm"
	"hrassist/internal/query"
	"hrassist/internal/retrieval"
)

const (
	maxGenerationAttempts = 3

	// Context window sent to the model: top results, capped per chunk.
	contextResultLimit  = 5
	contextContentLimit = 800
)

// Outcome discriminates which path produced a Response.
type Outcome string

const (
	OutcomeAnswered           Outcome = "answered"
	OutcomeGreeting           Outcome = "greeting"
	OutcomeInsufficientInfo   Outcome = "insufficient_info"
	OutcomeNoInformation      Outcome = "no_information"
	OutcomeVerificationFailed Outcome = "verification_failed"
	OutcomeGenerationFailed   Outcome = "generation_failed"
)

// Quality tiers a response can earn.
type Quality string

const (
	QualityExcellent  Quality = "excellent"
	QualityGood       Quality = "good"
	QualityAcceptable Quality = "acceptable"
	QualityPoor       Quality = "poor"
)

func qualityFor(score float64) Quality {
	switch {
	case score >= 0.9:
		return QualityExcellent
	case score >= 0.75:
		return QualityGood
	case score >= 0.6:
		return QualityAcceptable
	default:
		return QualityPoor
	}
}

func confidenceLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

// Response is the fully rendered answer plus its quality metadata.
type Response struct {
	Content         string
	Sources         []format.SourceRef
	Outcome         Outcome
	QualityScore    float64
	Quality         Quality
	ConfidenceLevel string
	Verification    *guard.Result
	Recommendations []string
	Duration        time.Duration
}

// Generator produces verified, platform-rendered answers.
type Generator struct {
	model      llm.Generator
	guard      *guard.Guard
	urls       *format.URLMap
	retryDelay time.Duration
}

// NewGenerator wires the model, the verification gate and the source URL
// map together.
func NewGenerator(model llm.Generator, g *guard.Guard, urls *format.URLMap) *Generator {
	return &Generator{
		model:      model,
		guard:      g,
		urls:       urls,
		retryDelay: time.Second,
	}
}

// Generate runs the full pipeline for one query. Greetings and empty
// retrieval short-circuit to fixed templates without touching the model.
// Generated drafts must pass the verification gate before any user sees
// them; a failed draft is replaced by the safe fallback and never
// surfaced. The returned error is non-nil only when ctx is done.
func (gen *Generator) Generate(ctx context.Context, qc *query.Context, results []retrieval.Result) (*Response, error) {
	started := time.Now()
	logger := contextutil.LoggerFromContext(ctx)

	if qc.Type == query.TypeGreeting {
		return finish(&Response{
			Content:         greetingText,
			Outcome:         OutcomeGreeting,
			QualityScore:    0.9,
			Quality:         QualityGood,
			ConfidenceLevel: "high",
		}, started), nil
	}

	if len(results) == 0 {
		logger.InfoContext(ctx, "no retrieval results, returning insufficient info response")
		return finish(&Response{
			Content:         fmt.Sprintf(insufficientInfoFormat, qc.OriginalQuery),
			Outcome:         OutcomeInsufficientInfo,
			QualityScore:    0.6,
			Quality:         QualityAcceptable,
			ConfidenceLevel: "low",
			Recommendations: []string{"Query could be more specific", "Try alternative keywords"},
		}, started), nil
	}

	draft, err := gen.draft(ctx, qc, results)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		content := generationErrorText
		if llm.IsRateLimit(err) {
			content = highDemandText
		}
		return finish(&Response{
			Content:         content,
			Outcome:         OutcomeGenerationFailed,
			Quality:         QualityPoor,
			ConfidenceLevel: "low",
		}, started), nil
	}

	if strings.Contains(draft, noInformationMarker) {
		logger.InfoContext(ctx, "draft reports no information, skipping verification")
		return finish(&Response{
			Content:         draft,
			Outcome:         OutcomeNoInformation,
			QualityScore:    0.6,
			Quality:         QualityAcceptable,
			ConfidenceLevel: "low",
		}, started), nil
	}

	verification := gen.guard.Verify(ctx, draft, results)
	if !verification.Verified {
		logger.WarnContext(ctx, "draft failed verification",
			"confidence", verification.Confidence,
			"risk", verification.Risk,
		)
		return finish(&Response{
			Content:         fmt.Sprintf(verificationFailedFormat, qc.OriginalQuery),
			Outcome:         OutcomeVerificationFailed,
			QualityScore:    0.3,
			Quality:         QualityPoor,
			ConfidenceLevel: "low",
			Verification:    &verification,
			Recommendations: verification.Recommendations,
		}, started), nil
	}

	refs := format.BuildSourceRefs(sourceFilenames(results), gen.urls)
	score := qualityScore(qc, results, verification)
	resp := &Response{
		Content:         format.ForPlatform(qc.Platform).Format(draft, refs),
		Sources:         refs,
		Outcome:         OutcomeAnswered,
		QualityScore:    score,
		Quality:         qualityFor(score),
		ConfidenceLevel: confidenceLevel(verification.Confidence),
		Verification:    &verification,
		Recommendations: verification.Recommendations,
	}

	logger.InfoContext(ctx, "response generated",
		"quality", resp.Quality,
		"quality_score", resp.QualityScore,
		"sources", len(refs),
	)
	return finish(resp, started), nil
}

// draft calls the model with bounded retries. Rate-limit rejections back
// off exponentially between attempts; other failures retry immediately.
func (gen *Generator) draft(ctx context.Context, qc *query.Context, results []retrieval.Result) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt(qc.Platform)},
		{Role: "user", Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", buildContext(results), qc.OriginalQuery)},
	}

	var lastErr error
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		reply, err := gen.model.ChatWithMessages(ctx, messages)
		if err == nil {
			return strings.TrimSpace(reply), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if llm.IsRateLimit(err) {
			if attempt == maxGenerationAttempts-1 {
				break
			}
			wait := gen.retryDelay << attempt
			logger.WarnContext(ctx, "rate limited, backing off", "wait", wait, "attempt", attempt+1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}
		logger.ErrorContext(ctx, "generation attempt failed", "attempt", attempt+1, "error", err)
	}
	return "", fmt.Errorf("failed to generate response after %d attempts: %w", maxGenerationAttempts, lastErr)
}

func buildContext(results []retrieval.Result) string {
	limit := len(results)
	if limit > contextResultLimit {
		limit = contextResultLimit
	}
	parts := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		chunk := results[i].Chunk
		content := chunk.Content
		if len(content) > contextContentLimit {
			content = content[:contextContentLimit]
		}
		parts = append(parts, fmt.Sprintf("Source %d (%s): %s", i+1, chunk.Filename, content))
	}
	return strings.Join(parts, "\n\n")
}

func sourceFilenames(results []retrieval.Result) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Chunk.Filename)
	}
	return names
}

// qualityScore blends query, retrieval and verification confidence, with
// verification carrying half the weight.
func qualityScore(qc *query.Context, results []retrieval.Result, verification guard.Result) float64 {
	score := qc.Confidence * 0.25

	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			sum += r.Confidence
		}
		score += sum / float64(len(results)) * 0.25
	}

	score += verification.Confidence * 0.5

	if score > 1 {
		return 1
	}
	return score
}

func finish(r *Response, started time.Time) *Response {
	r.Duration = time.Since(started)
	return r
}
