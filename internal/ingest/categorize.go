package ingest

import "strings"

// Category names in match order. The first category with a keyword hit
// wins, so more specific vocabularies come first.
var categoryOrder = []string{"Policy", "HR", "Academic", "Administrative", "Data"}

var categoryKeywords = map[string][]string{
	"Policy":         {"policy", "regulation", "rule", "guideline", "procedure", "compliance", "governance"},
	"HR":             {"employee", "staff", "hiring", "recruitment", "onboarding", "offboarding", "benefits", "leave", "vacation"},
	"Academic":       {"faculty", "research", "teaching", "tenure", "academic", "course", "semester", "grade"},
	"Administrative": {"administration", "budget", "finance", "procurement", "travel", "expense", "approval"},
	"Data":           {"profile", "contact", "directory", "list", "database", "record", "information"},
}

// CategoryGeneral is the fallback when no keyword matches.
const CategoryGeneral = "General"

// Categorize assigns a content category from keywords found in the chunk
// text or its filename.
func Categorize(text, filename string) string {
	haystack := strings.ToLower(text + " " + filename)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(haystack, keyword) {
				return category
			}
		}
	}
	return CategoryGeneral
}
