package layout

import (
	"sort"
)

// SortReadingOrder sorts anchored lines into the canonical reading order:
// page ascending, column ascending, y descending (top of the page first).
// This order must be re-established after splitting, since a split can
// locally perturb the sequence. The sort is stable so that lines sharing a
// baseline keep their extraction order.
func SortReadingOrder(lines []AnchoredLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Page != lines[j].Page {
			return lines[i].Page < lines[j].Page
		}
		if lines[i].Column != lines[j].Column {
			return lines[i].Column < lines[j].Column
		}
		return lines[i].Y > lines[j].Y
	})
}
