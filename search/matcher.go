package search

import (
	"errors"
	"strings"
)

// ErrInvalidQuery is returned when the query is empty or whitespace only.
var ErrInvalidQuery = errors.New("empty query")

// Match is one approximate occurrence of the query phrase: the matched
// tokens in reading order. When a hyphenation merge consumed two tokens,
// only the first (anchor) token is recorded.
type Match struct {
	Tokens []Token `json:"tokens"`
}

// Text returns the matched tokens joined with single spaces.
func (m Match) Text() string {
	parts := make([]string, 0, len(m.Tokens))
	for _, token := range m.Tokens {
		parts = append(parts, token.Text)
	}
	return strings.Join(parts, " ")
}

// MatcherConfig holds configuration for fuzzy phrase matching
type MatcherConfig struct {
	// Tolerance is the maximum edit distance between a query token and a
	// candidate token for the pair to count as a match (default: 2)
	Tolerance int
}

// DefaultMatcherConfig returns sensible default configuration
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Tolerance: 2,
	}
}

// Matcher performs sliding-window approximate phrase matching over a token
// sequence.
type Matcher struct {
	config MatcherConfig
}

// NewMatcher creates a new matcher with default configuration
func NewMatcher() *Matcher {
	return &Matcher{
		config: DefaultMatcherConfig(),
	}
}

// NewMatcherWithConfig creates a matcher with custom configuration
func NewMatcherWithConfig(config MatcherConfig) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Search finds every position in the index where the query phrase appears,
// tolerating small edit distances per word and words hyphenated across line
// breaks. The phrase must appear contiguously and in order; no fuzziness is
// applied to word order. Search returns ErrInvalidQuery for an empty or
// whitespace-only query.
func (m *Matcher) Search(index []Token, query string) ([]Match, error) {
	queryTokens := strings.Fields(lower.String(strings.TrimSpace(query)))
	if len(queryTokens) == 0 {
		return nil, ErrInvalidQuery
	}

	var matches []Match
	for i := 0; i+len(queryTokens) <= len(index); i++ {
		if tokens, ok := m.matchWindow(index, i, queryTokens); ok {
			matches = append(matches, Match{Tokens: tokens})
		}
	}

	return matches, nil
}

// matchWindow matches the query against the tokens starting at start. Each
// query token must match the candidate within tolerance; failing that, a
// candidate ending its line may merge with the following token to recover a
// hyphenated word, consuming both. Anything else breaks the window.
func (m *Matcher) matchWindow(index []Token, start int, queryTokens []string) ([]Token, bool) {
	matched := make([]Token, 0, len(queryTokens))
	pos := start

	for _, queryToken := range queryTokens {
		if pos >= len(index) {
			return nil, false
		}
		candidate := index[pos]

		if Distance(candidate.Text, queryToken) <= m.config.Tolerance {
			matched = append(matched, candidate)
			pos++
			continue
		}

		// Hyphenation merge: only at a line boundary
		if pos+1 < len(index) && !candidate.SameLine(index[pos+1]) {
			merged := candidate.Text + index[pos+1].Text
			if Distance(merged, queryToken) <= m.config.Tolerance {
				// Record the anchor token only
				matched = append(matched, candidate)
				pos += 2
				continue
			}
		}

		return nil, false
	}

	return matched, true
}
