// Package search flattens reconstructed patent lines into a searchable token
// sequence and performs fuzzy, hyphenation-aware phrase matching over it.
//
// BuildIndex turns anchored lines, already sorted into reading order, into a
// flat sequence of lower-cased word tokens tagged with their column and line
// coordinates. The token order is the document's reading order; the matcher
// relies on that ordering for adjacency and hyphenation checks.
//
// A Matcher slides a window over the token sequence and accepts each query
// token within a small edit-distance tolerance, so that OCR and extraction
// noise do not hide a phrase. When a token ends its line, the matcher also
// tries merging it with the next token, recovering words the typesetter
// hyphenated across a line break:
//
//	index := search.BuildIndex(lines)
//	matcher := search.NewMatcher()
//	matches, err := matcher.Search(index, "reconnaissance satellite")
package search
