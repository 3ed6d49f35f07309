package guard

import (
	"strings"
	"time"
)

// Level is the verification strictness. It selects the confidence
// threshold a draft must clear.
type Level string

const (
	LevelStrict   Level = "strict"
	LevelModerate Level = "moderate"
	LevelLenient  Level = "lenient"
)

// ParseLevel maps a config string to a Level, defaulting to strict.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moderate":
		return LevelModerate
	case "lenient":
		return LevelLenient
	default:
		return LevelStrict
	}
}

// Threshold returns the minimum aggregate confidence for this level.
func (l Level) Threshold() float64 {
	switch l {
	case LevelModerate:
		return 0.7
	case LevelLenient:
		return 0.5
	default:
		return 0.9
	}
}

// FactCategory labels an extracted factual claim.
type FactCategory string

const (
	FactContactInfo     FactCategory = "contact_info"
	FactMonetaryAmount  FactCategory = "monetary_amount"
	FactDateDeadline    FactCategory = "date_deadline"
	FactPolicyStatement FactCategory = "policy_statement"
	FactProcedureStep   FactCategory = "procedure_step"
	FactPersonInfo      FactCategory = "person_info"
	FactRequirement     FactCategory = "requirement"
	FactGeneralFact     FactCategory = "general_fact"
)

// Method records how a fact was (or was not) verified.
type Method string

const (
	MethodDirectMatch   Method = "direct_match"
	MethodPartialMatch  Method = "partial_match"
	MethodExactRequired Method = "exact_required"
	MethodNoMatch       Method = "no_match"
)

// Risk is the per-fact risk classification.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Assessment is the response-level risk classification.
type Assessment string

const (
	AssessmentLow    Assessment = "LOW"
	AssessmentMedium Assessment = "MEDIUM"
	AssessmentHigh   Assessment = "HIGH"
)

// FactCheck is the verification outcome for one extracted claim.
type FactCheck struct {
	Fact       string
	Category   FactCategory
	Verified   bool
	Confidence float64
	Evidence   []string
	Method     Method
	Risk       Risk
}

// Result aggregates all fact checks for one draft answer.
type Result struct {
	Verified            bool
	Confidence          float64
	FactChecks          []FactCheck
	UnsupportedClaims   []string
	MissingAttributions []string
	Risk                Assessment
	Recommendations     []string
	Duration            time.Duration
}
