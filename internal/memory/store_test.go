package memory

import (
	"fmt"
	"testing"
	"time"

	"hrassist/internal/query"
)

func TestStore_WindowTrims(t *testing.T) {
	store := NewStore(8, 10, time.Minute)

	for i := 1; i <= 12; i++ {
		store.Append("s1", query.Turn{
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		})
	}

	turns := store.History("s1")
	if len(turns) != 10 {
		t.Fatalf("len(History) = %d, want 10", len(turns))
	}
	if turns[0].Question != "q3" {
		t.Errorf("oldest retained turn = %q, want q3", turns[0].Question)
	}
	if turns[9].Question != "q12" {
		t.Errorf("newest turn = %q, want q12", turns[9].Question)
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore(8, 10, time.Minute)
	store.Append("s1", query.Turn{Question: "about leave", Answer: "leave answer"})
	store.Append("s2", query.Turn{Question: "about travel", Answer: "travel answer"})

	if got := store.History("s1"); len(got) != 1 || got[0].Question != "about leave" {
		t.Errorf("History(s1) = %v, want the leave turn only", got)
	}
	if got := store.History("s2"); len(got) != 1 || got[0].Question != "about travel" {
		t.Errorf("History(s2) = %v, want the travel turn only", got)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestStore_BlankSessionIgnored(t *testing.T) {
	store := NewStore(8, 10, time.Minute)
	store.Append("", query.Turn{Question: "q", Answer: "a"})

	if got := store.History(""); got != nil {
		t.Errorf("History(\"\") = %v, want nil", got)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestStore_HistoryReturnsCopy(t *testing.T) {
	store := NewStore(8, 10, time.Minute)
	store.Append("s1", query.Turn{Question: "original", Answer: "a"})

	turns := store.History("s1")
	turns[0].Question = "mutated"

	if got := store.History("s1"); got[0].Question != "original" {
		t.Errorf("stored turn = %q, want unchanged original", got[0].Question)
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(8, 10, time.Minute)
	store.Append("s1", query.Turn{Question: "q", Answer: "a"})
	store.Clear("s1")

	if got := store.History("s1"); got != nil {
		t.Errorf("History after Clear = %v, want nil", got)
	}
}

func TestStore_UnknownSession(t *testing.T) {
	store := NewStore(8, 10, time.Minute)
	if got := store.History("missing"); got != nil {
		t.Errorf("History(missing) = %v, want nil", got)
	}
}
