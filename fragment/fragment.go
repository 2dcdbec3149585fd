package fragment

import (
	"errors"
)

// ErrEmptyInput is returned when no fragments are supplied to Combine.
var ErrEmptyInput = errors.New("no fragments supplied")

// TextFragment represents a piece of extracted text with position.
// One fragment is produced per atomic run of text at a single position
// by the external extraction collaborator.
type TextFragment struct {
	// Page is the 1-based page number the fragment appears on
	Page int `json:"page"`

	// X is the left edge of the fragment in page coordinates
	X float64 `json:"x"`

	// Y is the baseline of the fragment. Y increases toward the top of
	// the page, so a fragment at Y=700 sits above one at Y=680.
	Y float64 `json:"y"`

	// Width is the horizontal extent of the fragment
	Width float64 `json:"width"`

	// Text is the fragment's text content
	Text string `json:"text"`
}

// Line is a reconstructed line of text: the concatenation of every
// fragment sharing a page and baseline.
type Line struct {
	// Page is the 1-based page number the line appears on
	Page int `json:"page"`

	// X is the left edge of the first fragment contributing to the line.
	// Later stages use X for column assignment, so it must come from the
	// leftmost (first emitted) fragment.
	X float64 `json:"x"`

	// Y is the shared baseline of the contributing fragments
	Y float64 `json:"y"`

	// Width is the summed width of the contributing fragments
	Width float64 `json:"width"`

	// Text is the concatenated text of the contributing fragments,
	// in emission order
	Text string `json:"text"`
}

// lineKey identifies a line during combination. Baselines are compared
// exactly: extraction emits identical Y values for fragments on the same
// line, and tolerance matching belongs to later stages.
type lineKey struct {
	page int
	y    float64
}

// Combine merges fragments sharing a page and baseline into single lines.
// One Line is produced per distinct (page, Y) pair, with text and width
// accumulated in encounter order and X taken from the first fragment seen
// for that pair. The extractor's emission order is assumed stable and
// left-to-right within a line; no sorting is performed.
//
// Combine returns ErrEmptyInput when fragments is empty.
func Combine(fragments []TextFragment) ([]Line, error) {
	if len(fragments) == 0 {
		return nil, ErrEmptyInput
	}

	lines := make([]Line, 0, len(fragments))
	index := make(map[lineKey]int, len(fragments))

	for _, frag := range fragments {
		key := lineKey{page: frag.Page, y: frag.Y}

		if i, ok := index[key]; ok {
			lines[i].Text += frag.Text
			lines[i].Width += frag.Width
			continue
		}

		index[key] = len(lines)
		lines = append(lines, Line{
			Page:  frag.Page,
			X:     frag.X,
			Y:     frag.Y,
			Width: frag.Width,
			Text:  frag.Text,
		})
	}

	return lines, nil
}
