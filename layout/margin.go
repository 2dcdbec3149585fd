package layout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/patgrep/fragment"
)

// DefaultMarginNumbers returns the margin line-numbers printed in a patent
// specification's column gutter: every fifth line, 5 through 65.
func DefaultMarginNumbers() []int {
	numbers := make([]int, 0, 13)
	for n := 5; n <= 65; n += 5 {
		numbers = append(numbers, n)
	}
	return numbers
}

// marginPattern builds a word-bounded pattern matching any of the given
// margin numbers.
func marginPattern(numbers []int) *regexp.Regexp {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, strconv.Itoa(n))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(parts, "|") + `)\b`)
}

// marginNumberAt returns the byte offsets of the first margin-number token in
// the line whose estimated on-page position exceeds minX. The position is
// estimated from a uniform character width of Width/len(Text); the error this
// introduces for proportional fonts is accepted, since the gutter sits far
// enough right of the body text for the threshold to absorb it.
func marginNumberAt(line fragment.Line, pattern *regexp.Regexp, minX float64) (start, end int, ok bool) {
	if len(line.Text) == 0 {
		return 0, 0, false
	}

	avgCharWidth := line.Width / float64(len(line.Text))

	for _, loc := range pattern.FindAllStringIndex(line.Text, -1) {
		estX := line.X + avgCharWidth*float64(loc[0])
		if estX > minX {
			return loc[0], loc[1], true
		}
	}

	return 0, 0, false
}

// MarginConfig holds configuration for margin-number splitting
type MarginConfig struct {
	// Numbers is the margin line-number set (default: 5, 10, ..., 65)
	Numbers []int

	// MinX is the minimum estimated x position for a numeral to qualify
	// as a margin number rather than a numeral inside prose (default: 263)
	MinX float64
}

// DefaultMarginConfig returns sensible default configuration
func DefaultMarginConfig() MarginConfig {
	return MarginConfig{
		Numbers: DefaultMarginNumbers(),
		MinX:    263.0,
	}
}

// MarginSplitter detects margin line-numbers that PDF extraction merged into
// body text and splits the affected lines into their left- and right-column
// halves.
type MarginSplitter struct {
	config  MarginConfig
	pattern *regexp.Regexp
}

// NewMarginSplitter creates a new margin splitter with default configuration
func NewMarginSplitter() *MarginSplitter {
	return NewMarginSplitterWithConfig(DefaultMarginConfig())
}

// NewMarginSplitterWithConfig creates a margin splitter with custom configuration
func NewMarginSplitterWithConfig(config MarginConfig) *MarginSplitter {
	if len(config.Numbers) == 0 {
		config.Numbers = DefaultMarginNumbers()
	}
	return &MarginSplitter{
		config:  config,
		pattern: marginPattern(config.Numbers),
	}
}

// Split scans columned lines for an embedded margin line-number and splits a
// matching line into the text before and after the number. The before-half
// keeps the line's column; the after-half belongs to the adjacent column.
// Both halves get x and width estimated from a uniform character width.
// Halves that trim to nothing are dropped, and non-matching lines pass
// through unchanged.
func (s *MarginSplitter) Split(lines []AnchoredLine) []AnchoredLine {
	out := make([]AnchoredLine, 0, len(lines))

	for _, line := range lines {
		if line.Column == 0 {
			out = append(out, line)
			continue
		}

		start, end, ok := marginNumberAt(line.Line, s.pattern, s.config.MinX)
		if !ok {
			out = append(out, line)
			continue
		}

		avgCharWidth := line.Width / float64(len(line.Text))
		before := line.Text[:start]
		after := line.Text[end:]

		if strings.TrimSpace(before) != "" {
			half := line
			half.Text = strings.TrimSpace(before)
			half.Width = avgCharWidth * float64(len(before))
			out = append(out, half)
		}

		if strings.TrimSpace(after) != "" {
			half := line
			half.Text = strings.TrimSpace(after)
			half.X = line.X + avgCharWidth*float64(end)
			half.Width = avgCharWidth * float64(len(after))
			half.Column = line.Column + 1
			out = append(out, half)
		}
	}

	return out
}
