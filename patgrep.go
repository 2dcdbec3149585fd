// Package patgrep reconstructs the reading order of multi-column patent
// specifications from positioned text fragments and searches the
// reconstructed text for approximate phrase matches.
//
// The fragments come from an external PDF text extractor; patgrep infers the
// two-column patent layout from their coordinates alone, then matches query
// phrases with edit-distance tolerance and hyphenation awareness.
//
// Basic usage:
//
//	matches, err := patgrep.FromFragments(fragments).
//	    DocumentID("3,243,250").
//	    Search("aerial reconnaissance")
//	if err != nil {
//	    // handle error
//	}
//
// Every layout threshold can be overridden for document families the
// defaults do not fit:
//
//	anchor := layout.DefaultAnchorConfig()
//	anchor.Strategy = layout.StrategyDensity
//	doc := patgrep.FromFragments(fragments).WithAnchorConfig(anchor)
//
// The lower-level fragment, layout and search packages expose each pipeline
// stage separately.
package patgrep

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/patgrep/fragment"
	"github.com/tsawler/patgrep/layout"
	"github.com/tsawler/patgrep/search"
)

// Document is a fluent handle over one document's fragments. Configure it
// with the With* methods, then call a terminal operation: Lines, Index or
// Search. The layout is reconstructed once and reused across searches.
//
// A Document is not safe for concurrent use; process distinct documents in
// parallel instead, or put a cache.Loader in front.
type Document struct {
	fragments  []fragment.TextFragment
	documentID string

	anchorConfig  layout.AnchorConfig
	columnConfig  layout.ColumnConfig
	marginConfig  layout.MarginConfig
	matcherConfig search.MatcherConfig
	logger        *slog.Logger

	reconstructed bool
	lines         []layout.AnchoredLine
	index         []search.Token
}

// FromFragments creates a Document over extracted fragments, configured
// with the defaults for US patent specification sheets.
func FromFragments(fragments []fragment.TextFragment) *Document {
	return &Document{
		fragments:     fragments,
		anchorConfig:  layout.DefaultAnchorConfig(),
		columnConfig:  layout.DefaultColumnConfig(),
		marginConfig:  layout.DefaultMarginConfig(),
		matcherConfig: search.DefaultMatcherConfig(),
		logger:        slog.Default(),
	}
}

// DocumentID sets the document identifier the header anchor strategy
// matches against.
func (d *Document) DocumentID(id string) *Document {
	d.documentID = id
	return d
}

// WithAnchorConfig overrides the anchor detection configuration.
func (d *Document) WithAnchorConfig(config layout.AnchorConfig) *Document {
	d.anchorConfig = config
	return d
}

// WithColumnConfig overrides the column assignment configuration.
func (d *Document) WithColumnConfig(config layout.ColumnConfig) *Document {
	d.columnConfig = config
	return d
}

// WithMarginConfig overrides the margin splitter configuration.
func (d *Document) WithMarginConfig(config layout.MarginConfig) *Document {
	d.marginConfig = config
	return d
}

// WithMatcherConfig overrides the fuzzy matcher configuration.
func (d *Document) WithMatcherConfig(config search.MatcherConfig) *Document {
	d.matcherConfig = config
	return d
}

// WithLogger sets the logger receiving per-stage diagnostics. The default
// is slog.Default.
func (d *Document) WithLogger(logger *slog.Logger) *Document {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Lines reconstructs the document and returns its lines in reading order:
// page ascending, column ascending, top of the page first.
func (d *Document) Lines() ([]layout.AnchoredLine, error) {
	if err := d.reconstruct(); err != nil {
		return nil, err
	}
	return d.lines, nil
}

// Index reconstructs the document and returns its searchable token
// sequence.
func (d *Document) Index() ([]search.Token, error) {
	if err := d.reconstruct(); err != nil {
		return nil, err
	}
	return d.index, nil
}

// Search reconstructs the document if needed and returns every approximate
// occurrence of the query phrase in the body text.
func (d *Document) Search(query string) ([]search.Match, error) {
	if err := d.reconstruct(); err != nil {
		return nil, err
	}
	return search.NewMatcherWithConfig(d.matcherConfig).Search(d.index, query)
}

// reconstruct runs the pipeline once: combine fragments, find the anchor,
// assign columns and line numbers, split embedded margin numbers, sort into
// reading order and build the token index.
func (d *Document) reconstruct() error {
	if d.reconstructed {
		return nil
	}

	lines, err := fragment.Combine(d.fragments)
	if err != nil {
		return fmt.Errorf("combine fragments: %w", err)
	}
	d.logger.Debug("combined fragments",
		"document", d.documentID, "fragments", len(d.fragments), "lines", len(lines))

	finder := layout.NewAnchorFinderWithConfig(d.anchorConfig)
	anchor, err := finder.Find(lines, d.documentID)
	if err != nil {
		return fmt.Errorf("find anchor in %q: %w", d.documentID, err)
	}
	d.logger.Debug("anchor located",
		"document", d.documentID, "strategy", d.anchorConfig.Strategy.String(), "index", anchor)

	anchored, err := layout.NewColumnAssignerWithConfig(d.columnConfig).Assign(lines, anchor)
	if err != nil {
		return fmt.Errorf("assign columns: %w", err)
	}

	split := layout.NewMarginSplitterWithConfig(d.marginConfig).Split(anchored)
	if len(split) != len(anchored) {
		d.logger.Debug("margin numbers split",
			"document", d.documentID, "before", len(anchored), "after", len(split))
	}

	layout.SortReadingOrder(split)

	d.lines = split
	d.index = search.BuildIndex(split)
	d.reconstructed = true

	d.logger.Debug("document reconstructed",
		"document", d.documentID, "lines", len(d.lines), "tokens", len(d.index))

	return nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	matches := patgrep.Must(doc.Search("aerial reconnaissance"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
