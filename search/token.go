package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/patgrep/layout"
)

// lower folds text to lower case without assuming a specific language,
// since patent text routinely mixes names, chemical symbols and units.
var lower = cases.Lower(language.Und)

// Token is one searchable word of the reconstructed document, tagged with
// the coordinates readers use to cite patent text.
type Token struct {
	// Column is the document column the word appears in
	Column int `json:"column"`

	// Line is the line number within the column
	Line int `json:"line"`

	// Text is the lower-cased word
	Text string `json:"text"`
}

// SameLine reports whether two tokens lie on the same physical line.
func (t Token) SameLine(other Token) bool {
	return t.Column == other.Column && t.Line == other.Line
}

// BuildIndex flattens anchored lines into the searchable token sequence.
// The input must already be in reading order (page ascending, column
// ascending, y descending); the output token order is the contract the
// matcher's adjacency and hyphenation checks depend on. Lines outside any
// body column (column 0) are front matter and produce no tokens.
func BuildIndex(lines []layout.AnchoredLine) []Token {
	var tokens []Token

	for _, line := range lines {
		if line.Column == 0 {
			continue
		}
		for _, word := range strings.Fields(line.Text) {
			tokens = append(tokens, Token{
				Column: line.Column,
				Line:   line.LineNumber,
				Text:   lower.String(word),
			})
		}
	}

	return tokens
}
