package guard

import "regexp"

// factCategoryOrder fixes the extraction and reporting order so repeated
// verification of the same draft yields identical results.
var factCategoryOrder = []FactCategory{
	FactContactInfo,
	FactMonetaryAmount,
	FactDateDeadline,
	FactPolicyStatement,
	FactProcedureStep,
	FactPersonInfo,
	FactRequirement,
}

// factPatterns extracts checkable claims per category. Contact details,
// amounts and dates must match a source verbatim; the rest may verify by
// word overlap.
var factPatterns = map[FactCategory][]*regexp.Regexp{
	FactContactInfo: {
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		regexp.MustCompile(`(?i)\b(?:room|office|building)\s+\w+\b`),
	},
	FactMonetaryAmount: {
		regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
		regexp.MustCompile(`(?i)\b\d+\s*(?:dollars?|usd)\b`),
		regexp.MustCompile(`(?i)\b\d+%\s*(?:of|salary|income)\b`),
	},
	FactDateDeadline: {
		regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s*\d{4}\b`),
		regexp.MustCompile(`(?i)\b(?:deadline|due date|expires?|effective)\s+\w+\b`),
	},
	FactPolicyStatement: {
		regexp.MustCompile(`(?i)\bmust\s+\w+`),
		regexp.MustCompile(`(?i)\brequired?\s+to\s+\w+`),
		regexp.MustCompile(`(?i)\bpolicy\s+states?\s+\w+`),
		regexp.MustCompile(`(?i)\bnot\s+(?:allowed|permitted)\s+to\s+\w+`),
	},
	FactProcedureStep: {
		regexp.MustCompile(`(?i)\b(?:first|second|third|next|then|finally),?\s+\w+`),
		regexp.MustCompile(`(?i)\bstep\s+\d+:?\s+\w+`),
		regexp.MustCompile(`(?i)\bto\s+\w+,\s+you\s+(?:must|need|should)\s+\w+`),
	},
	FactPersonInfo: {
		regexp.MustCompile(`(?i)\b(?:prof(?:essor)?|dr\.?|mr\.?|ms\.?|mrs\.?)\s+[A-Z][a-z]+\s+[A-Z][a-z]+\b`),
		regexp.MustCompile(`(?i)\b[A-Z][a-z]+\s+[A-Z][a-z]+\s+is\s+(?:the|a)\s+\w+`),
	},
	FactRequirement: {
		regexp.MustCompile(`(?i)\byou\s+(?:must|need|should|have to)\s+\w+`),
		regexp.MustCompile(`(?i)\brequires?\s+\w+`),
		regexp.MustCompile(`(?i)\bnecessary\s+to\s+\w+`),
	},
}

// factualIndicators mark sentences that carry a general checkable claim.
var factualIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bis\s+(?:the|a|an)\s+\w+`),
	regexp.MustCompile(`(?i)\brequires?\s+\w+`),
	regexp.MustCompile(`(?i)\bmust\s+\w+`),
	regexp.MustCompile(`(?i)\bshould\s+\w+`),
	regexp.MustCompile(`(?i)\bcan\s+\w+`),
	regexp.MustCompile(`(?i)\bcosts?\s+\w+`),
	regexp.MustCompile(`(?i)\btakes?\s+\w+`),
	regexp.MustCompile(`(?i)\bincludes?\s+\w+`),
}

// hedgePatterns flag uncertain language that has no place in a grounded
// answer.
var hedgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi\s+believe\s+\w+`),
	regexp.MustCompile(`(?i)\bit\s+seems?\s+(?:like|that)\s+\w+`),
	regexp.MustCompile(`(?i)\bprobably\s+\w+`),
	regexp.MustCompile(`(?i)\blikely\s+\w+`),
	regexp.MustCompile(`(?i)\bassuming\s+\w+`),
	regexp.MustCompile(`(?i)\bi\s+think\s+\w+`),
	regexp.MustCompile(`(?i)\bmy\s+understanding\s+is\s+\w+`),
	regexp.MustCompile(`(?i)\bgenerally\s+speaking\s+\w+`),
	regexp.MustCompile(`(?i)\btypically\s+\w+`),
	regexp.MustCompile(`(?i)\busually\s+\w+`),
}

// attributionTargets are factual statements that ought to cite a source.
var attributionTargets = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bthe\s+policy\s+(?:states?|requires?)\s+\w+`),
	regexp.MustCompile(`(?i)\byou\s+(?:must|need|should)\s+\w+`),
	regexp.MustCompile(`(?i)\bthe\s+(?:deadline|requirement|process)\s+is\s+\w+`),
	regexp.MustCompile(`(?i)\bcontact\s+\w+\s+at\s+\w+`),
}

// attributionPatterns satisfy an attribution target when found nearby.
var attributionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\baccording\s+to\s+\w+`),
	regexp.MustCompile(`(?i)\bas\s+stated\s+in\s+\w+`),
	regexp.MustCompile(`(?i)\bthe\s+(?:policy|handbook|document)\s+states?\s+\w+`),
	regexp.MustCompile(`(?i)\bas\s+outlined\s+in\s+\w+`),
	regexp.MustCompile(`(?i)\bper\s+the\s+\w+`),
}

// definitivePhrases make a sentence a hard claim that needs source
// support.
var definitivePhrases = []string{
	"the policy states",
	"you must",
	"the requirement is",
	"the deadline is",
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)
