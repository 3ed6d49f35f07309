package query

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"hrassist/internal/contextutil"
)

// Processor runs the query pipeline: clean, classify, extract entities,
// analyze intent, collect priority keywords, enhance with history, and
// score processing confidence. It is stateless and safe for concurrent use.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Process analyzes a raw question against optional conversation history.
// Identity and platform fields on the returned Context are left for the
// caller to fill.
func (p *Processor) Process(ctx context.Context, question string, history []Turn) (*Context, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrInvalidQuery
	}

	cleaned := cleanQuery(question)
	queryType := classify(cleaned)
	entities := extractEntities(cleaned)
	intent := analyzeIntent(cleaned)
	keywords := priorityKeywords(cleaned)
	processed := enhanceWithHistory(cleaned, history, entities)
	confidence := scoreConfidence(queryType, entities, intent)

	qc := &Context{
		OriginalQuery:    question,
		ProcessedQuery:   processed,
		Type:             queryType,
		Confidence:       confidence,
		Entities:         entities,
		Intent:           intent,
		PriorityKeywords: keywords,
		History:          history,
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "query processed",
		"type", string(queryType),
		"intent", string(intent),
		"confidence", confidence,
		"priority_keywords", len(keywords),
	)
	return qc, nil
}

func cleanQuery(question string) string {
	cleaned := strings.Join(strings.Fields(question), " ")
	for _, r := range cleanReplacements {
		cleaned = r.pattern.ReplaceAllString(cleaned, r.replacement)
	}
	return cleaned
}

func classify(query string) Type {
	lower := strings.ToLower(query)

	for _, re := range greetingPatterns {
		if re.MatchString(lower) {
			return TypeGreeting
		}
	}
	if !hasLetter(query) {
		return TypeUnclear
	}
	for _, re := range personPatterns {
		if re.MatchString(query) {
			return TypePersonLookup
		}
	}
	if containsAny(lower, topicKeywords["travel"]) {
		return TypeTravelRelated
	}
	if containsAny(lower, topicKeywords["benefits"]) {
		return TypeBenefitsRelated
	}
	if containsAny(lower, procedureIndicators) {
		return TypeProcedureInquiry
	}
	if containsAny(lower, policyIndicators) {
		return TypePolicyInquiry
	}
	return TypeGeneralInfo
}

func extractEntities(query string) map[string][]string {
	entities := make(map[string][]string)

	var people []string
	for _, re := range personPatterns {
		for _, match := range re.FindAllStringSubmatch(query, -1) {
			name := match[0]
			if len(match) > 1 && match[1] != "" {
				name = match[1]
			}
			people = append(people, name)
		}
	}
	addEntities(entities, EntityPeople, people)
	addEntities(entities, EntityLocations, findAll(locationPatterns, query))
	addEntities(entities, EntityOrganizations, findAll(organizationPatterns, query))
	addEntities(entities, EntityAmounts, findAll(amountPatterns, query))
	addEntities(entities, EntityDates, findAll(datePatterns, query))
	return entities
}

func analyzeIntent(query string) Intent {
	lower := strings.ToLower(query)

	for _, prefix := range []string{"how", "what", "when", "where", "who", "why"} {
		if strings.HasPrefix(lower, prefix) {
			return IntentInformationSeeking
		}
	}
	for _, prefix := range []string{"can i", "may i", "am i allowed", "is it possible"} {
		if strings.HasPrefix(lower, prefix) {
			return IntentPermissionInquiry
		}
	}
	for _, prefix := range []string{"i need", "help me", "assist me"} {
		if strings.HasPrefix(lower, prefix) {
			return IntentAssistanceRequest
		}
	}
	if containsAny(lower, []string{"apply", "submit", "request", "form"}) {
		return IntentActionRequired
	}
	if containsAny(lower, []string{"find", "locate", "contact", "reach"}) {
		return IntentContactSeeking
	}
	return IntentGeneralInquiry
}

func priorityKeywords(query string) []string {
	lower := strings.ToLower(query)

	var keywords []string
	for _, topic := range topicOrder {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lower, kw) {
				keywords = append(keywords, kw)
			}
		}
	}
	for _, kw := range africaKeywords {
		if strings.Contains(lower, kw) {
			keywords = append(keywords, kw)
		}
	}
	keywords = append(keywords, importantTermsPattern.FindAllString(lower, -1)...)
	return dedupe(keywords)
}

// enhanceWithHistory appends a referent annotation when a recent turn named
// a person the current query only implies.
func enhanceWithHistory(query string, history []Turn, entities map[string][]string) string {
	if len(history) == 0 || len(entities[EntityPeople]) > 0 {
		return query
	}

	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	var clauses []string
	for _, turn := range recent {
		prior := extractEntities(cleanQuery(turn.Question))
		if people := prior[EntityPeople]; len(people) > 0 {
			clauses = append(clauses, "referring to "+strings.Join(people, ", "))
		}
	}
	if len(clauses) == 0 {
		return query
	}
	return query + " (context: " + strings.Join(clauses, "; ") + ")"
}

func scoreConfidence(queryType Type, entities map[string][]string, intent Intent) float64 {
	confidence := 0.5

	switch {
	case queryType == TypeGreeting || queryType == TypePersonLookup:
		confidence += 0.3
	case queryType != TypeUnclear:
		confidence += 0.2
	}

	categories := 0
	for _, matches := range entities {
		if len(matches) > 0 {
			categories++
		}
	}
	bonus := float64(categories) * 0.05
	if bonus > 0.2 {
		bonus = 0.2
	}
	confidence += bonus

	switch intent {
	case IntentInformationSeeking, IntentPermissionInquiry, IntentAssistanceRequest:
		confidence += 0.1
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func findAll(patterns []*regexp.Regexp, query string) []string {
	var matches []string
	for _, re := range patterns {
		matches = append(matches, re.FindAllString(query, -1)...)
	}
	return matches
}

func addEntities(entities map[string][]string, category string, matches []string) {
	deduped := dedupe(matches)
	if len(deduped) > 0 {
		entities[category] = deduped
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
