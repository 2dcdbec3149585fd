// Package fragment defines the positioned text records handed over by an
// external PDF text extractor and combines them into reconstructed lines.
//
// A TextFragment is a single positioned run of text on a page. Extraction
// tools routinely emit several fragments per visual line; Combine merges
// every fragment sharing a page and baseline into one Line, preserving the
// extractor's left-to-right emission order.
//
// Basic usage:
//
//	lines, err := fragment.Combine(fragments)
//	if err != nil {
//	    // handle error
//	}
//
// Combine performs no sorting. Ordering lines into reading order is the job
// of the layout package.
package fragment
