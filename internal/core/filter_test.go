package core

import (
	"encoding/json"
	"testing"
)

func testNote() *Note {
	return &Note{
		ID:     "e1",
		PubKey: "A",
		Kind:   1,
		Tags:   [][]string{{"p", "B"}, {"e", "root"}},
	}
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := Filter{}
	if !f.Matches(testNote()) {
		t.Fatal("empty filter must match any note")
	}
	if !f.Matches(&Note{}) {
		t.Fatal("empty filter must match a zero note")
	}
}

func TestKindPredicate(t *testing.T) {
	f := Filter{Kinds: []int{1, 2}}
	if !f.Matches(testNote()) {
		t.Fatal("kind 1 should match {1,2}")
	}
	f = Filter{Kinds: []int{9}}
	if f.Matches(testNote()) {
		t.Fatal("kind 1 must not match {9}")
	}
}

func TestAuthorPredicate(t *testing.T) {
	f := Filter{Authors: []string{"A", "C"}}
	if !f.Matches(testNote()) {
		t.Fatal("author A should match")
	}
	f = Filter{Authors: []string{"C"}}
	if f.Matches(testNote()) {
		t.Fatal("author A must not match {C}")
	}
}

func TestTagPredicate(t *testing.T) {
	f := Filter{Tags: map[string][]string{"p": {"B"}}}
	if !f.Matches(testNote()) {
		t.Fatal(`note with ["p","B"] tag should match #p={B}`)
	}
	f = Filter{Tags: map[string][]string{"p": {"X"}}}
	if f.Matches(testNote()) {
		t.Fatal("note must not match #p={X}")
	}
}

func TestTagPredicateWithoutTags(t *testing.T) {
	f := Filter{Tags: map[string][]string{"p": {"B"}}}
	if f.Matches(&Note{Kind: 1}) {
		t.Fatal("note without tags must fail a tag predicate")
	}
}

func TestAndAcrossDimensions(t *testing.T) {
	// Kind matches, author does not: the whole filter must reject.
	f := Filter{Kinds: []int{1}, Authors: []string{"C"}}
	if f.Matches(testNote()) {
		t.Fatal("filter must AND across dimensions")
	}

	f = Filter{Kinds: []int{1}, Authors: []string{"A"}}
	if !f.Matches(testNote()) {
		t.Fatal("filter with both dimensions matching should accept")
	}
}

func TestMatchesNilNote(t *testing.T) {
	f := Filter{}
	if f.Matches(nil) {
		t.Fatal("nil note must not match")
	}
}

func TestFilterJSONRoundTrip(t *testing.T) {
	var f Filter
	raw := `{"kinds":[1,2],"authors":["A"],"#p":["B","C"],"limit":10}`
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal filter: %v", err)
	}
	if len(f.Kinds) != 2 || f.Kinds[0] != 1 {
		t.Fatalf("unexpected kinds: %v", f.Kinds)
	}
	if len(f.Authors) != 1 || f.Authors[0] != "A" {
		t.Fatalf("unexpected authors: %v", f.Authors)
	}
	if got := f.Tags["p"]; len(got) != 2 || got[0] != "B" {
		t.Fatalf("unexpected #p values: %v", got)
	}

	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal filter: %v", err)
	}
	var back Filter
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if !back.Matches(testNote()) {
		t.Fatal("round-tripped filter should still match")
	}
}

func TestFilterUnmarshalRejectsGarbage(t *testing.T) {
	var f Filter
	if err := json.Unmarshal([]byte(`["not","an","object"]`), &f); err == nil {
		t.Fatal("expected error for non-object filter")
	}
}
