package patgrep

import (
	"errors"
	"testing"

	"github.com/tsawler/patgrep/fragment"
	"github.com/tsawler/patgrep/layout"
	"github.com/tsawler/patgrep/search"
)

// patentFragments builds the fragments of a small single-page patent
// specification: front matter, the document-number header with its column
// marker, and two body columns with a margin number in the gutter and a
// word hyphenated across a line break.
func patentFragments() []fragment.TextFragment {
	return []fragment.TextFragment{
		// Front matter
		{Page: 1, X: 150, Y: 760, Width: 280, Text: "UNITED STATES PATENT OFFICE"},
		// Header, emitted as two fragments on one baseline
		{Page: 1, X: 250, Y: 745, Width: 42, Text: "3,24"},
		{Page: 1, X: 292, Y: 745, Width: 48, Text: "3,250"},
		// Column marker
		{Page: 1, X: 160, Y: 730, Width: 8, Text: "1"},
		// Left body column, top to bottom
		{Page: 1, X: 60, Y: 700, Width: 230, Text: "apparatus for aerial recon"},
		{Page: 1, X: 60, Y: 690, Width: 230, Text: "naissance and surveillance"},
		// Gutter margin number
		{Page: 1, X: 304, Y: 695, Width: 12, Text: "5"},
		// Right body column, top to bottom
		{Page: 1, X: 330, Y: 700, Width: 230, Text: "the satellite payload"},
		{Page: 1, X: 330, Y: 690, Width: 230, Text: "carries optical sensors"},
	}
}

func TestDocument_Lines(t *testing.T) {
	doc := FromFragments(patentFragments()).DocumentID("3,243,250")

	lines, err := doc.Lines()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}

	// Header fragments combined into one line
	var header *layout.AnchoredLine
	for i := range lines {
		if lines[i].Text == "3,243,250" {
			header = &lines[i]
		}
	}
	if header == nil {
		t.Fatal("header fragments were not combined")
	}
	if header.Column != 0 {
		t.Errorf("header should stay front matter, got column %d", header.Column)
	}

	// Reading order: column 1 body before column 2 body, top first
	var bodyTexts []string
	for _, line := range lines {
		if line.Column != 0 {
			bodyTexts = append(bodyTexts, line.Text)
		}
	}
	want := []string{
		"apparatus for aerial recon",
		"naissance and surveillance",
		"the satellite payload",
		"carries optical sensors",
	}
	if len(bodyTexts) != len(want) {
		t.Fatalf("expected %d body lines, got %d: %v", len(want), len(bodyTexts), bodyTexts)
	}
	for i := range want {
		if bodyTexts[i] != want[i] {
			t.Errorf("body line %d: expected %q, got %q", i, want[i], bodyTexts[i])
		}
	}
}

func TestDocument_Search(t *testing.T) {
	doc := FromFragments(patentFragments()).DocumentID("3,243,250")

	matches, err := doc.Search("aerial reconnaissance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	match := matches[0]
	if len(match.Tokens) != 2 {
		t.Fatalf("expected 2 matched tokens, got %d", len(match.Tokens))
	}
	if match.Tokens[0].Text != "aerial" {
		t.Errorf("unexpected first token %+v", match.Tokens[0])
	}
	// The hyphenated word is anchored at its first half
	if match.Tokens[1].Text != "recon" {
		t.Errorf("expected hyphenation anchor token, got %+v", match.Tokens[1])
	}
	if match.Tokens[1].Column != 1 || match.Tokens[1].Line != 1 {
		t.Errorf("unexpected anchor coordinates %+v", match.Tokens[1])
	}
}

func TestDocument_SearchAcrossColumns(t *testing.T) {
	doc := FromFragments(patentFragments()).DocumentID("3,243,250")

	// "surveillance" ends column 1, "the satellite" opens column 2
	matches, err := doc.Search("surveillance the satellite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected phrase to span the column break, got %d matches", len(matches))
	}
}

func TestDocument_SearchReconstructsOnce(t *testing.T) {
	doc := FromFragments(patentFragments()).DocumentID("3,243,250")

	if _, err := doc.Search("satellite"); err != nil {
		t.Fatalf("first search: %v", err)
	}

	// Dropping the fragments proves the second search reuses the
	// reconstruction
	doc.fragments = nil
	if _, err := doc.Search("sensors"); err != nil {
		t.Fatalf("second search: %v", err)
	}
}

func TestDocument_EmptyFragments(t *testing.T) {
	_, err := FromFragments(nil).DocumentID("3,243,250").Lines()
	if !errors.Is(err, fragment.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDocument_AnchorNotFound(t *testing.T) {
	_, err := FromFragments(patentFragments()).DocumentID("9,999,999").Lines()
	if !errors.Is(err, layout.ErrAnchorNotFound) {
		t.Errorf("expected ErrAnchorNotFound, got %v", err)
	}
}

func TestDocument_InvalidQuery(t *testing.T) {
	_, err := FromFragments(patentFragments()).DocumentID("3,243,250").Search("   ")
	if !errors.Is(err, search.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestDocument_DensityStrategyNeedsNoID(t *testing.T) {
	fragments := []fragment.TextFragment{
		{Page: 1, X: 60, Y: 700, Width: 230, Text: "apparatus for aerial"},
		{Page: 1, X: 60, Y: 690, Width: 230, Text: "surveillance members"},
	}
	// Enough gutter numbers to satisfy the density threshold
	for i, n := range []string{"5", "10", "15", "20", "25"} {
		fragments = append(fragments, fragment.TextFragment{
			Page: 1, X: 304, Y: 688 - float64(i)*52, Width: 12, Text: n,
		})
	}

	anchor := layout.DefaultAnchorConfig()
	anchor.Strategy = layout.StrategyDensity

	matches, err := FromFragments(fragments).
		WithAnchorConfig(anchor).
		Search("aerial surveillance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("expected value through, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
