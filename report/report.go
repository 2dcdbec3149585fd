// Package report serializes search results for callers. The core owns no
// wire format; these writers cover the formats callers typically want: a
// line-per-record text report, JSON, and a small HTML table.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/patgrep/search"
)

// WriteText writes one line per match: the anchor token's column and line
// coordinates followed by the matched text.
func WriteText(w io.Writer, matches []search.Match) error {
	for _, match := range matches {
		if len(match.Tokens) == 0 {
			continue
		}
		anchor := match.Tokens[0]
		if _, err := fmt.Fprintf(w, "col %d line %d: %s\n", anchor.Column, anchor.Line, match.Text()); err != nil {
			return err
		}
	}
	return nil
}

// jsonReport is the envelope WriteJSON emits
type jsonReport struct {
	DocumentID string         `json:"document_id"`
	Query      string         `json:"query"`
	Matches    []search.Match `json:"matches"`
}

// WriteJSON writes the matches as a single indented JSON document.
func WriteJSON(w io.Writer, documentID, query string, matches []search.Match) error {
	if matches == nil {
		matches = []search.Match{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		DocumentID: documentID,
		Query:      query,
		Matches:    matches,
	})
}
