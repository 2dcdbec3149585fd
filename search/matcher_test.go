package search

import (
	"errors"
	"testing"
)

// tokens builds a single-line token sequence from words
func tokens(column, line int, words ...string) []Token {
	out := make([]Token, 0, len(words))
	for _, word := range words {
		out = append(out, Token{Column: column, Line: line, Text: word})
	}
	return out
}

func TestMatcher_ExactPhrase(t *testing.T) {
	matcher := NewMatcher()

	index := tokens(1, 1, "the", "aerial", "reconnaissance", "satellite", "system")

	matches, err := matcher.Search(index, "aerial reconnaissance satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	match := matches[0]
	if len(match.Tokens) != 3 {
		t.Fatalf("expected 3 matched tokens, got %d", len(match.Tokens))
	}
	if match.Text() != "aerial reconnaissance satellite" {
		t.Errorf("unexpected match text %q", match.Text())
	}
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	matcher := NewMatcher()

	index := tokens(1, 1, "aerial", "reconnaissance")

	matches, err := matcher.Search(index, "  Aerial RECONNAISSANCE ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
}

func TestMatcher_WithinTolerance(t *testing.T) {
	matcher := NewMatcher()

	index := tokens(1, 1, "aerial", "reconnaissance")

	// One deletion from "reconnaissance"
	matches, err := matcher.Search(index, "aerial reconnaissnce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match within tolerance, got %d", len(matches))
	}
}

func TestMatcher_BeyondTolerance(t *testing.T) {
	matcher := NewMatcher()

	index := tokens(1, 1, "reconnaissance")

	matches, err := matcher.Search(index, "xyzxyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches beyond tolerance, got %d", len(matches))
	}
}

func TestMatcher_HyphenationMerge(t *testing.T) {
	matcher := NewMatcher()

	// Word hyphenated across a line break: "recon-" / "naissance"
	index := []Token{
		{Column: 1, Line: 3, Text: "recon"},
		{Column: 1, Line: 4, Text: "naissance"},
	}

	matches, err := matcher.Search(index, "reconnaissance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	// Only the anchor token is recorded
	match := matches[0]
	if len(match.Tokens) != 1 {
		t.Fatalf("expected only the anchor token recorded, got %d tokens", len(match.Tokens))
	}
	if match.Tokens[0].Text != "recon" || match.Tokens[0].Line != 3 {
		t.Errorf("unexpected anchor token %+v", match.Tokens[0])
	}
}

func TestMatcher_NoMergeWithinLine(t *testing.T) {
	matcher := NewMatcher()

	// The same halves on one line: not a hyphenation break
	index := tokens(1, 3, "recon", "naissance")

	matches, err := matcher.Search(index, "reconnaissance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no match for split word within a line, got %d", len(matches))
	}
}

func TestMatcher_MergeAcrossColumns(t *testing.T) {
	matcher := NewMatcher()

	// A column break is also a line break
	index := []Token{
		{Column: 1, Line: 65, Text: "recon"},
		{Column: 2, Line: 1, Text: "naissance"},
	}

	matches, err := matcher.Search(index, "reconnaissance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected merge across the column break, got %d matches", len(matches))
	}
}

func TestMatcher_MergeContinuesPhrase(t *testing.T) {
	matcher := NewMatcher()

	// The merge consumes both halves; the phrase continues after them
	index := []Token{
		{Column: 1, Line: 3, Text: "aerial"},
		{Column: 1, Line: 3, Text: "recon"},
		{Column: 1, Line: 4, Text: "naissance"},
		{Column: 1, Line: 4, Text: "satellite"},
	}

	matches, err := matcher.Search(index, "aerial reconnaissance satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	match := matches[0]
	if match.Text() != "aerial recon satellite" {
		t.Errorf("unexpected matched tokens %q", match.Text())
	}
}

func TestMatcher_MultipleMatches(t *testing.T) {
	matcher := NewMatcher()

	index := []Token{
		{Column: 1, Line: 1, Text: "the"},
		{Column: 1, Line: 1, Text: "satellite"},
		{Column: 2, Line: 7, Text: "the"},
		{Column: 2, Line: 7, Text: "satellite"},
	}

	matches, err := matcher.Search(index, "the satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestMatcher_OrderPreserving(t *testing.T) {
	matcher := NewMatcher()

	index := tokens(1, 1, "satellite", "reconnaissance")

	matches, err := matcher.Search(index, "reconnaissance satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("reversed word order must not match, got %d matches", len(matches))
	}
}

func TestMatcher_EmptyQuery(t *testing.T) {
	matcher := NewMatcher()

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := matcher.Search(tokens(1, 1, "word"), query)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("query %q: expected ErrInvalidQuery, got %v", query, err)
		}
	}
}

func TestMatcher_CustomTolerance(t *testing.T) {
	matcher := NewMatcherWithConfig(MatcherConfig{Tolerance: 0})

	index := tokens(1, 1, "satelite")

	matches, err := matcher.Search(index, "satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("zero tolerance must require exact words, got %d matches", len(matches))
	}
}
