package layout

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/patgrep/fragment"
)

// ErrAnchorNotFound is returned when no anchor line could be located,
// meaning the document's layout is not a supported patent-specification
// format. Downstream stages must not run without an anchor.
var ErrAnchorNotFound = errors.New("anchor not found")

// AnchorStrategy selects how the start of two-column body text is located.
// Strategies are interchangeable; pick one per document family.
type AnchorStrategy int

const (
	// StrategyHeader matches a line whose whitespace-stripped text equals
	// the document identifier, immediately followed by the column marker.
	StrategyHeader AnchorStrategy = iota

	// StrategyDensity anchors at the first page accumulating enough lines
	// that carry an embedded margin line-number in the gutter region.
	StrategyDensity

	// StrategySheetMarker matches a "Sheet N of M" drawing-sheet caption.
	StrategySheetMarker
)

// String returns a string representation of the strategy
func (s AnchorStrategy) String() string {
	switch s {
	case StrategyDensity:
		return "density"
	case StrategySheetMarker:
		return "sheet-marker"
	default:
		return "header"
	}
}

// AnchorConfig holds configuration for anchor detection
type AnchorConfig struct {
	// Strategy selects the detection strategy
	Strategy AnchorStrategy

	// ColumnMarker is the literal text of the line expected immediately
	// after the document-number header (default: "1", the first column
	// heading of the specification body)
	ColumnMarker string

	// MarginNumbers is the set of typographic margin line-numbers printed
	// in the column gutter (default: 5, 10, ..., 65)
	MarginNumbers []int

	// MarginNumberMinX is the minimum estimated x position for a numeral
	// to count as a margin number rather than prose (default: 263)
	MarginNumberMinX float64

	// DensityThreshold is the per-page line count that must be exceeded
	// before the density strategy anchors at that page (default: 4)
	DensityThreshold int
}

// DefaultAnchorConfig returns sensible default configuration
func DefaultAnchorConfig() AnchorConfig {
	return AnchorConfig{
		Strategy:         StrategyHeader,
		ColumnMarker:     "1",
		MarginNumbers:    DefaultMarginNumbers(),
		MarginNumberMinX: 263.0,
		DensityThreshold: 4,
	}
}

// sheetMarkerPattern matches drawing-sheet captions such as "Sheet 2 of 5".
var sheetMarkerPattern = regexp.MustCompile(`(?i)^\s*sheet\s+\d+\s+of\s+\d+\s*$`)

// AnchorFinder locates the line where two-column body text begins
type AnchorFinder struct {
	config  AnchorConfig
	margins *regexp.Regexp
}

// NewAnchorFinder creates a new anchor finder with default configuration
func NewAnchorFinder() *AnchorFinder {
	return NewAnchorFinderWithConfig(DefaultAnchorConfig())
}

// NewAnchorFinderWithConfig creates an anchor finder with custom configuration
func NewAnchorFinderWithConfig(config AnchorConfig) *AnchorFinder {
	if len(config.MarginNumbers) == 0 {
		config.MarginNumbers = DefaultMarginNumbers()
	}
	return &AnchorFinder{
		config:  config,
		margins: marginPattern(config.MarginNumbers),
	}
}

// Find returns the index of the anchor line in lines, or ErrAnchorNotFound
// when the configured strategy matches nothing.
func (f *AnchorFinder) Find(lines []fragment.Line, documentID string) (int, error) {
	switch f.config.Strategy {
	case StrategyDensity:
		return f.findByDensity(lines)
	case StrategySheetMarker:
		return f.findBySheetMarker(lines)
	default:
		return f.findByHeader(lines, documentID)
	}
}

// findByHeader scans for the document-number header line followed by the
// column marker line.
func (f *AnchorFinder) findByHeader(lines []fragment.Line, documentID string) (int, error) {
	want := stripSpace(documentID)
	if want == "" {
		return 0, ErrAnchorNotFound
	}

	for i := 0; i < len(lines)-1; i++ {
		if stripSpace(lines[i].Text) != want {
			continue
		}
		if strings.TrimSpace(lines[i+1].Text) == f.config.ColumnMarker {
			return i, nil
		}
	}

	return 0, ErrAnchorNotFound
}

// findByDensity counts, per page, the lines carrying a margin line-number in
// the gutter region and anchors at the first line of the first page whose
// count exceeds the threshold.
func (f *AnchorFinder) findByDensity(lines []fragment.Line) (int, error) {
	counts := make(map[int]int)
	firstIndex := make(map[int]int)

	for i, line := range lines {
		if _, seen := firstIndex[line.Page]; !seen {
			firstIndex[line.Page] = i
		}

		if _, _, ok := marginNumberAt(line, f.margins, f.config.MarginNumberMinX); !ok {
			continue
		}

		counts[line.Page]++
		if counts[line.Page] > f.config.DensityThreshold {
			return firstIndex[line.Page], nil
		}
	}

	return 0, ErrAnchorNotFound
}

// findBySheetMarker scans for a "Sheet N of M" caption line.
func (f *AnchorFinder) findBySheetMarker(lines []fragment.Line) (int, error) {
	for i, line := range lines {
		if sheetMarkerPattern.MatchString(line.Text) {
			return i, nil
		}
	}
	return 0, ErrAnchorNotFound
}

// stripSpace removes all whitespace from s
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
