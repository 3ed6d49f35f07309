package query

import "regexp"

// Abbreviation expansions applied during cleaning, in order. All later
// stages see the expanded text, so keyword tables below carry the expanded
// forms alongside the abbreviations.
var cleanReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bcmu\s*africa\b`), "CMU-Africa"},
	{regexp.MustCompile(`(?i)\bcarnegie\s*mellon\s*africa\b`), "CMU-Africa"},
	{regexp.MustCompile(`(?i)\bprof\.?\b`), "professor"},
	{regexp.MustCompile(`(?i)\bdr\.?\b`), "doctor"},
	{regexp.MustCompile(`(?i)\bhr\b`), "human resources"},
	{regexp.MustCompile(`(?i)\bpto\b`), "paid time off"},
}

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:hi|hello|hey|good\s+(?:morning|afternoon|evening))\b`),
	regexp.MustCompile(`(?i)^(?:thanks?|thank\s+you)\b`),
	regexp.MustCompile(`(?i)^(?:goodbye|bye|see\s+you)\b`),
}

// Person patterns require a capitalized name so that ordinary prose does
// not classify as a lookup. The title itself is matched case-insensitively.
var personPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:prof(?:essor)?|doctor|dr|mr|mrs|ms)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`),
	regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\b`),
	regexp.MustCompile(`\b([A-Z]\.\s*[A-Z][a-z]+)\b`),
}

// topicOrder fixes iteration order over topicKeywords.
var topicOrder = []string{"travel", "leave", "benefits", "hiring", "promotion", "research", "administrative"}

var topicKeywords = map[string][]string{
	"travel":         {"travel", "trip", "conference", "business travel", "reimbursement", "expense"},
	"leave":          {"leave", "vacation", "pto", "paid time off", "sick", "maternity", "paternity", "sabbatical"},
	"benefits":       {"benefit", "insurance", "health", "dental", "retirement", "401k", "pension"},
	"hiring":         {"hire", "hiring", "recruitment", "position", "job", "appointment", "onboarding"},
	"promotion":      {"promotion", "tenure", "advancement", "rank", "professor", "associate"},
	"research":       {"research", "grant", "funding", "publication", "conference", "sabbatical"},
	"administrative": {"policy", "procedure", "guideline", "handbook", "manual", "form"},
}

var africaKeywords = []string{
	"africa", "kigali", "rwanda", "cmu africa", "carnegie mellon africa",
	"cmu-africa", "campus", "local", "international",
}

var procedureIndicators = []string{"how to", "how do i", "steps", "process", "procedure", "apply", "submit"}

var policyIndicators = []string{"policy", "rule", "guideline", "regulation", "what is"}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:kigali|rwanda|pittsburgh|pennsylvania|africa)\b`),
	regexp.MustCompile(`(?i)\b(?:campus|office|building|room)\s+\w+\b`),
}

// The IT department is only recognized in uppercase; a case-insensitive
// match would tag the pronoun in nearly every query.
var organizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:cmu|carnegie mellon|human resources|finance|computing)\b`),
	regexp.MustCompile(`\bIT\b`),
	regexp.MustCompile(`(?i)\b(?:school|college|department)\s+of\s+\w+\b`),
}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)\b\d+\s*(?:dollars?|usd)\b`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s*\d{4}\b`),
}

var importantTermsPattern = regexp.MustCompile(`\b(?:policy|procedure|research|conference|process|requirement|deadline|application|form|document|guideline|handbook|manual)\b`)
