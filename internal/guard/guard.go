// Package guard verifies generated answers against the chunks they were
// generated from before they reach a user. It extracts checkable claims
// from the draft, matches each one against the combined source text and
// refuses drafts whose facts cannot be supported.
package guard

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"hrassist/internal/contextutil"
	"hrassist/internal/retrieval"
)

// exactCategories must match a source verbatim; word overlap is not
// good enough for phone numbers, amounts or deadlines.
var exactCategories = map[FactCategory]bool{
	FactContactInfo:    true,
	FactMonetaryAmount: true,
	FactDateDeadline:   true,
}

// Guard checks draft answers for unsupported claims.
type Guard struct {
	level Level
}

// New returns a Guard at the given strictness level.
func New(level Level) *Guard {
	return &Guard{level: level}
}

// Level reports the configured strictness.
func (g *Guard) Level() Level { return g.level }

type extractedFacts struct {
	category FactCategory
	facts    []string
}

// Verify checks a draft answer against the chunks it was generated from.
// The same draft and sources always produce the same Result apart from
// Duration. A draft passes only when its aggregate confidence clears the
// level threshold, no unsupported claims were found and no high-risk
// fact is left unverified.
func (g *Guard) Verify(ctx context.Context, answer string, sources []retrieval.Result) Result {
	started := time.Now()
	logger := contextutil.LoggerFromContext(ctx)

	var sb strings.Builder
	for i, src := range sources {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(src.Chunk.Content)
	}
	sourceText := strings.ToLower(sb.String())
	sourceWords := wordSet(sourceText)

	var checks []FactCheck
	for _, group := range extractFacts(answer) {
		for _, fact := range group.facts {
			checks = append(checks, verifyFact(fact, group.category, sourceText, sourceWords))
		}
	}

	unsupported := findUnsupportedClaims(answer, sourceWords)
	missing := findMissingAttributions(answer)

	confidence := aggregateConfidence(checks)

	unverifiedHigh := 0
	for _, c := range checks {
		if c.Risk == RiskHigh && !c.Verified {
			unverifiedHigh++
		}
	}
	verified := confidence >= g.level.Threshold() && len(unsupported) == 0 && unverifiedHigh == 0

	result := Result{
		Verified:            verified,
		Confidence:          confidence,
		FactChecks:          checks,
		UnsupportedClaims:   unsupported,
		MissingAttributions: missing,
		Risk:                assessRisk(unverifiedHigh, len(unsupported)),
		Recommendations:     g.recommendations(checks, unverifiedHigh, unsupported, missing),
		Duration:            time.Since(started),
	}

	logger.InfoContext(ctx, "verification completed",
		"verified", result.Verified,
		"confidence", result.Confidence,
		"facts", len(checks),
		"unsupported", len(unsupported),
		"risk", result.Risk,
	)
	return result
}

// extractFacts pulls checkable claims out of the draft. Categories are
// independent so they run concurrently; the returned group order is
// fixed so repeated runs report facts in the same order.
func extractFacts(answer string) []extractedFacts {
	groups := make([]extractedFacts, len(factCategoryOrder)+1)

	var wg sync.WaitGroup
	for i, category := range factCategoryOrder {
		wg.Add(1)
		go func(i int, category FactCategory) {
			defer wg.Done()
			groups[i] = extractedFacts{category: category, facts: matchFacts(answer, factPatterns[category])}
		}(i, category)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		groups[len(factCategoryOrder)] = extractedFacts{category: FactGeneralFact, facts: generalFacts(answer)}
	}()
	wg.Wait()

	return groups
}

// matchFacts collects pattern matches, deduplicated within the category.
func matchFacts(answer string, patterns []*regexp.Regexp) []string {
	var facts []string
	seen := make(map[string]bool)
	for _, re := range patterns {
		for _, m := range re.FindAllString(answer, -1) {
			fact := strings.TrimSpace(m)
			if fact == "" || seen[fact] {
				continue
			}
			seen[fact] = true
			facts = append(facts, fact)
		}
	}
	return facts
}

// generalFacts keeps sentences that look like standalone factual
// statements. Short fragments are skipped.
func generalFacts(answer string) []string {
	var facts []string
	for _, sentence := range sentenceBoundary.Split(answer, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 20 {
			continue
		}
		for _, re := range factualIndicators {
			if re.MatchString(sentence) {
				facts = append(facts, sentence)
				break
			}
		}
	}
	return facts
}

// verifyFact checks one claim against the combined source text. A
// verbatim hit verifies at 0.9. Exact categories fail outright without
// one. Everything else verifies by word overlap at 0.7 or better.
func verifyFact(fact string, category FactCategory, sourceText string, sourceWords map[string]bool) FactCheck {
	if strings.Contains(sourceText, strings.ToLower(fact)) {
		return FactCheck{
			Fact:       fact,
			Category:   category,
			Verified:   true,
			Confidence: 0.9,
			Evidence:   []string{fact},
			Method:     MethodDirectMatch,
			Risk:       RiskLow,
		}
	}

	if exactCategories[category] {
		return FactCheck{
			Fact:     fact,
			Category: category,
			Method:   MethodExactRequired,
			Risk:     RiskHigh,
		}
	}

	factWords := wordSet(strings.ToLower(fact))
	matched := overlapCount(factWords, sourceWords)
	ratio := 0.0
	if len(factWords) > 0 {
		ratio = float64(matched) / float64(len(factWords))
	}

	if ratio >= 0.7 {
		return FactCheck{
			Fact:       fact,
			Category:   category,
			Verified:   true,
			Confidence: ratio,
			Evidence:   []string{fmt.Sprintf("Partial match: %d/%d words", matched, len(factWords))},
			Method:     MethodPartialMatch,
			Risk:       RiskMedium,
		}
	}

	return FactCheck{
		Fact:       fact,
		Category:   category,
		Confidence: ratio,
		Method:     MethodNoMatch,
		Risk:       RiskHigh,
	}
}

// findUnsupportedClaims flags hedged language anywhere in the draft and
// definitive claims whose wording is mostly absent from the sources.
func findUnsupportedClaims(answer string, sourceWords map[string]bool) []string {
	var claims []string

	for _, re := range hedgePatterns {
		for _, loc := range re.FindAllStringIndex(answer, -1) {
			start := loc[0] - 50
			if start < 0 {
				start = 0
			}
			end := loc[1] + 50
			if end > len(answer) {
				end = len(answer)
			}
			claims = append(claims, "Uncertain language: "+strings.TrimSpace(answer[start:end]))
		}
	}

	for _, sentence := range sentenceBoundary.Split(answer, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		definitive := false
		for _, phrase := range definitivePhrases {
			if strings.Contains(lower, phrase) {
				definitive = true
				break
			}
		}
		if !definitive {
			continue
		}

		claimWords := wordSet(lower)
		ratio := 0.0
		if len(claimWords) > 0 {
			ratio = float64(overlapCount(claimWords, sourceWords)) / float64(len(claimWords))
		}
		if ratio < 0.5 {
			claims = append(claims, sentence)
		}
	}

	return claims
}

// findMissingAttributions reports factual statements with no citation
// phrase within 100 characters on either side. Advisory only; it never
// fails a draft on its own.
func findMissingAttributions(answer string) []string {
	var missing []string
	for _, re := range attributionTargets {
		for _, loc := range re.FindAllStringIndex(answer, -1) {
			start := loc[0] - 100
			if start < 0 {
				start = 0
			}
			end := loc[1] + 100
			if end > len(answer) {
				end = len(answer)
			}
			window := answer[start:end]

			attributed := false
			for _, attr := range attributionPatterns {
				if attr.MatchString(window) {
					attributed = true
					break
				}
			}
			if !attributed {
				missing = append(missing, answer[loc[0]:loc[1]])
			}
		}
	}
	return missing
}

// aggregateConfidence blends verification ratio and per-fact confidence,
// penalized by the share of high-risk facts. A draft with no extractable
// facts sits at neutral 0.5.
func aggregateConfidence(checks []FactCheck) float64 {
	if len(checks) == 0 {
		return 0.5
	}

	verified := 0
	highRisk := 0
	sum := 0.0
	for _, c := range checks {
		if c.Verified {
			verified++
		}
		if c.Risk == RiskHigh {
			highRisk++
		}
		sum += c.Confidence
	}

	n := float64(len(checks))
	confidence := (float64(verified)/n)*0.4 + (sum/n)*0.6 - (float64(highRisk)/n)*0.3
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

func assessRisk(unverifiedHigh, unsupported int) Assessment {
	switch {
	case unverifiedHigh > 0 || unsupported > 2:
		return AssessmentHigh
	case unsupported <= 1:
		return AssessmentLow
	default:
		return AssessmentMedium
	}
}

func (g *Guard) recommendations(checks []FactCheck, unverifiedHigh int, unsupported, missing []string) []string {
	var recs []string
	if unverifiedHigh > 0 {
		recs = append(recs, "Remove or verify high-risk unverified facts")
	}
	if len(unsupported) > 0 {
		recs = append(recs, "Remove uncertain language and unsupported claims")
	}
	if len(missing) > 0 {
		recs = append(recs, "Add proper source attribution for factual statements")
	}
	if g.level == LevelStrict {
		for _, c := range checks {
			if !c.Verified {
				recs = append(recs, "All facts must be verified for strict mode")
				break
			}
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Response appears well-verified and properly attributed")
	}
	return recs
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func overlapCount(words, source map[string]bool) int {
	n := 0
	for w := range words {
		if source[w] {
			n++
		}
	}
	return n
}
