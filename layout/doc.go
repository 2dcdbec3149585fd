// Package layout reconstructs the column geometry of a two-column patent
// specification from combined text lines.
//
// Patent specifications print the body text in two columns per page with a
// numbered gutter between them. Extraction yields lines with raw page
// coordinates and no structural markup, so the layout must be inferred:
//
//   - [AnchorFinder] locates the line where two-column body text begins,
//     using the document-number header, a sheet marker, or the density of
//     embedded margin line-numbers.
//   - [ColumnAssigner] assigns each body line a document column and a
//     within-column line number from its coordinates.
//   - [MarginSplitter] detects margin line-numbers that extraction merged
//     into body text and splits the affected lines apart.
//   - [SortReadingOrder] orders the result column by column, top to bottom.
//
// # Configuration
//
// Every coordinate threshold the heuristics depend on is exposed through the
// detector Config structs:
//
//	config := layout.DefaultColumnConfig()
//	config.LeftColumnMaxX = 290
//	assigner := layout.NewColumnAssignerWithConfig(config)
//
// The defaults are tuned for US patent specification sheets; other document
// families need retuned thresholds, not code changes.
package layout
