package layout

import (
	"fmt"

	"github.com/tsawler/patgrep/fragment"
)

// AnchoredLine is a combined line annotated with its place in the document's
// column geometry. Column 0 marks front matter and gutter noise, which later
// stages exclude from search.
type AnchoredLine struct {
	fragment.Line

	// Column is the document column: a running count of body columns
	// across the whole document, two per page once body text begins.
	// 0 means the line belongs to no body column.
	Column int `json:"column"`

	// LineNumber is the line's position within its column
	LineNumber int `json:"line_number"`
}

// ColumnRule selects how body lines are mapped to columns
type ColumnRule int

const (
	// RuleOrdering infers column boundaries from the extraction order:
	// within a column extraction walks down the page, so an upward jump
	// in y on the same page marks the start of the next column.
	RuleOrdering ColumnRule = iota

	// RuleGeometry maps lines to columns from their x coordinate alone.
	// Preferred when the extractor's emission order is unreliable.
	RuleGeometry
)

// String returns a string representation of the rule
func (r ColumnRule) String() string {
	if r == RuleGeometry {
		return "geometry"
	}
	return "ordering"
}

// ColumnConfig holds configuration for column and line-number assignment
type ColumnConfig struct {
	// Rule selects the assignment rule
	Rule ColumnRule

	// LeftColumnMaxX is the x cutoff below which a line belongs to the
	// left body column (default: 298)
	LeftColumnMaxX float64

	// RightColumnMinX is the x cutoff above which a line belongs to the
	// right body column (default: 311). Lines between the two cutoffs sit
	// in the gutter and are left unassigned.
	RightColumnMinX float64

	// LineGap is the y distance beyond which two consecutive lines are
	// treated as two typographic lines apart, compensating for blank
	// lines that produce no extraction fragments (default: 12)
	LineGap float64

	// BodyTop is the y coordinate above which lines belong to the page
	// header area and are excluded from the body entirely (default: 710)
	BodyTop float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		Rule:            RuleOrdering,
		LeftColumnMaxX:  298.0,
		RightColumnMinX: 311.0,
		LineGap:         12.0,
		BodyTop:         710.0,
	}
}

// ColumnAssigner assigns document columns and line numbers to combined lines
type ColumnAssigner struct {
	config ColumnConfig
}

// NewColumnAssigner creates a new column assigner with default configuration
func NewColumnAssigner() *ColumnAssigner {
	return &ColumnAssigner{
		config: DefaultColumnConfig(),
	}
}

// NewColumnAssignerWithConfig creates a column assigner with custom configuration
func NewColumnAssignerWithConfig(config ColumnConfig) *ColumnAssigner {
	return &ColumnAssigner{
		config: config,
	}
}

// Assign walks lines in extraction order starting at the anchor and assigns
// each one a document column and a within-column line number. Lines before
// the anchor, page-header lines, and gutter lines stay at column 0.
func (a *ColumnAssigner) Assign(lines []fragment.Line, anchorIndex int) ([]AnchoredLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("assign columns: no lines")
	}
	if anchorIndex < 0 || anchorIndex >= len(lines) {
		return nil, fmt.Errorf("assign columns: anchor index %d out of range [0,%d)", anchorIndex, len(lines))
	}

	out := make([]AnchoredLine, len(lines))
	for i := 0; i < anchorIndex; i++ {
		out[i] = AnchoredLine{Line: lines[i]}
	}

	if a.config.Rule == RuleGeometry {
		a.assignByGeometry(lines, anchorIndex, out)
	} else {
		a.assignByOrdering(lines, anchorIndex, out)
	}

	a.assignLineNumbers(out)

	return out, nil
}

// assignByOrdering infers columns from extraction order. pageColumn counts
// the physical columns walked on the current page: 1 and 3 are the two body
// columns, 2 and 4 the interleaved margin-number columns. documentColumn
// advances only when a body column starts, so it increases by exactly two
// per page of body text.
func (a *ColumnAssigner) assignByOrdering(lines []fragment.Line, anchorIndex int, out []AnchoredLine) {
	pageColumn := 1
	documentColumn := 1
	havePrev := false
	var prev fragment.Line

	for i := anchorIndex; i < len(lines); i++ {
		line := lines[i]

		// Header-area lines take no part in boundary detection
		if line.Y > a.config.BodyTop {
			out[i] = AnchoredLine{Line: line}
			continue
		}

		if havePrev {
			if line.Page != prev.Page {
				pageColumn = 1
				documentColumn++
			} else if line.Y > prev.Y {
				pageColumn++
				if pageColumn == 3 {
					documentColumn++
				}
			}
		}

		column := 0
		if pageColumn == 1 || pageColumn == 3 {
			column = documentColumn
		}

		out[i] = AnchoredLine{Line: line, Column: column}
		prev = line
		havePrev = true
	}
}

// assignByGeometry maps lines to columns from the x cutoffs alone. The
// document column for page k (counted from the anchor page) is 2k+1 for the
// left body column and 2k+2 for the right, matching the identifiers the
// ordering rule produces for the same geometry.
func (a *ColumnAssigner) assignByGeometry(lines []fragment.Line, anchorIndex int, out []AnchoredLine) {
	pageOrdinal := 0
	currentPage := lines[anchorIndex].Page

	for i := anchorIndex; i < len(lines); i++ {
		line := lines[i]

		if line.Page != currentPage {
			pageOrdinal++
			currentPage = line.Page
		}

		column := 0
		if line.Y <= a.config.BodyTop {
			switch {
			case line.X < a.config.LeftColumnMaxX:
				column = 2*pageOrdinal + 1
			case line.X > a.config.RightColumnMinX:
				column = 2*pageOrdinal + 2
			}
		}

		out[i] = AnchoredLine{Line: line, Column: column}
	}
}

// assignLineNumbers numbers the lines of each column in a separate pass over
// the assigned sequence. The counter restarts at every column change and
// advances by two when the y gap to the previous line spans more than one
// typographic line, since visually blank lines produce no fragments.
func (a *ColumnAssigner) assignLineNumbers(lines []AnchoredLine) {
	number := 0
	previousColumn := 0
	var previousY float64

	for i := range lines {
		column := lines[i].Column
		if column == 0 {
			number = 0
			previousColumn = 0
			continue
		}

		switch {
		case column != previousColumn:
			number = 1
		case absFloat64(previousY-lines[i].Y) > a.config.LineGap:
			number += 2
		default:
			number++
		}

		lines[i].LineNumber = number
		previousColumn = column
		previousY = lines[i].Y
	}
}

// absFloat64 returns absolute value of float64
func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
