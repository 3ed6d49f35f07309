package retrieval

import (
	"math"
	"strings"
	"testing"

	"hrassist/internal/query"
)

func TestChunkQuality(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{
			name: "well formed chunk",
			// length in range, ends with period, has uppercase, structural
			// markers and a newline: (1.0 + 0.9 + 0.8) / 3
			content: "Travel policy:\n" + strings.Repeat("Reimbursement rules apply to all staff. ", 3) + "Submit receipts.",
			want:    0.9,
		},
		{
			name: "short lowercase fragment",
			// 20 chars, leading space, no terminal punctuation: (0.2 + 0.5 + 0.5) / 3
			content: " partial sentence he",
			want:    (0.2 + 0.5 + 0.5) / 3,
		},
		{
			name: "overlong chunk floors at half credit",
			// 4000 chars of one run-on line: (0.5 + 0.8 + 0.5) / 3
			content: strings.Repeat("overflow", 500) + ".",
			want:    (0.5 + 0.8 + 0.5) / 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkQuality(tt.content)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("chunkQuality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourceReliability(t *testing.T) {
	weights := DefaultSourceWeights()

	tests := []struct {
		filename string
		want     float64
	}{
		{filename: "hiring-process-2024.pdf", want: 1.0},
		{filename: "cmu-africa-overview.html", want: 0.95},
		{filename: "staff-handbook-africa.pdf", want: 0.9},
		{filename: "2025-payroll-rwanda.pdf", want: 0.9},
		{filename: "travel-guidelines-dec-2024.pdf", want: 0.85},
		{filename: "BENEFITS.html", want: 0.8},
		{filename: "faq.pdf", want: 0.7},
		{filename: "", want: 0.7},
	}

	for _, tt := range tests {
		if got := sourceReliability(tt.filename, weights); got != tt.want {
			t.Errorf("sourceReliability(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestContentConfidence(t *testing.T) {
	qc := &query.Context{
		ProcessedQuery:   "how do i request paid time off?",
		PriorityKeywords: []string{"paid time off"},
	}
	content := "Paid time off requests must be submitted via the HR portal at least two weeks in advance."

	// overlap 2/7 words capped at 0.3, one priority keyword hit.
	want := 2.0/7.0 + 0.1
	got := contentConfidence(qc, content)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("contentConfidence() = %v, want %v", got, want)
	}
}

func TestContentConfidence_CapsAtOne(t *testing.T) {
	qc := &query.Context{
		ProcessedQuery:   "travel policy kigali",
		PriorityKeywords: []string{"travel", "policy", "kigali", "campus", "africa"},
		Entities: map[string][]string{
			query.EntityPeople:        {"John Smith", "Jane Doe", "Mark Brown"},
			query.EntityLocations:     {"Kigali", "Rwanda", "Africa"},
			query.EntityOrganizations: {"CMU", "Finance", "Computing"},
		},
	}
	content := "Travel policy for the CMU-Africa campus in Kigali, Rwanda. " +
		"John Smith, Jane Doe and Mark Brown from Finance and Computing reviewed the africa guideline."

	if got := contentConfidence(qc, content); got != 1.0 {
		t.Errorf("contentConfidence() = %v, want capped at 1.0", got)
	}
}

func TestContentConfidence_EmptyQuery(t *testing.T) {
	qc := &query.Context{ProcessedQuery: ""}

	if got := contentConfidence(qc, "Any content at all."); got != 0 {
		t.Errorf("contentConfidence() = %v, want 0", got)
	}
}

func TestContextMatch(t *testing.T) {
	content := "travel reimbursement requires receipts for all expenses"

	t.Run("no history is neutral", func(t *testing.T) {
		qc := &query.Context{}
		if got := contextMatch(qc, content); got != 0.5 {
			t.Errorf("contextMatch() = %v, want 0.5", got)
		}
	})

	t.Run("partial overlap with recent turns", func(t *testing.T) {
		qc := &query.Context{
			History: []query.Turn{
				{Question: "travel receipts"},
			},
		}
		if got := contextMatch(qc, content); got != 1.0 {
			t.Errorf("contextMatch() = %v, want 1.0 (both words present)", got)
		}
	})

	t.Run("only last two turns count", func(t *testing.T) {
		qc := &query.Context{
			History: []query.Turn{
				{Question: "travel receipts expenses"},
				{Question: "zebra"},
				{Question: "quokka"},
			},
		}
		if got := contextMatch(qc, content); got != 0 {
			t.Errorf("contextMatch() = %v, want 0 (old turn ignored)", got)
		}
	})
}

func TestWeightsBlend(t *testing.T) {
	w := DefaultWeights()

	got := w.blend(1, 1, 1, 1, 1)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("blend(all ones) = %v, want 1.0 (weights sum to 1)", got)
	}

	got = w.blend(0.8, 0.4, 0.6, 0.9, 0.5)
	want := 0.8*0.30 + 0.4*0.25 + 0.6*0.15 + 0.9*0.15 + 0.5*0.15
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("blend() = %v, want %v", got, want)
	}
}
