package report

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/patgrep/search"
)

// WriteHTML writes the matches as a standalone HTML page with one table row
// per match. The document is built as a node tree and rendered, so token
// text is escaped for free.
func WriteHTML(w io.Writer, documentID, query string, matches []search.Match) error {
	doc := &html.Node{Type: html.DocumentNode}

	doctype := &html.Node{Type: html.DoctypeNode, Data: "html"}
	doc.AppendChild(doctype)

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	title := element(atom.Title)
	title.AppendChild(textNode(fmt.Sprintf("patgrep: %s", documentID)))
	head.AppendChild(title)
	root.AppendChild(head)

	body := element(atom.Body)
	heading := element(atom.H1)
	heading.AppendChild(textNode(fmt.Sprintf("%q in %s", query, documentID)))
	body.AppendChild(heading)
	body.AppendChild(matchTable(matches))
	root.AppendChild(body)

	return html.Render(w, doc)
}

// matchTable builds the result table: column, line, matched text.
func matchTable(matches []search.Match) *html.Node {
	table := element(atom.Table)

	header := element(atom.Tr)
	for _, label := range []string{"Column", "Line", "Text"} {
		th := element(atom.Th)
		th.AppendChild(textNode(label))
		header.AppendChild(th)
	}
	table.AppendChild(header)

	for _, match := range matches {
		if len(match.Tokens) == 0 {
			continue
		}
		anchor := match.Tokens[0]

		row := element(atom.Tr)
		for _, value := range []string{
			fmt.Sprintf("%d", anchor.Column),
			fmt.Sprintf("%d", anchor.Line),
			match.Text(),
		} {
			td := element(atom.Td)
			td.AppendChild(textNode(value))
			row.AppendChild(td)
		}
		table.AppendChild(row)
	}

	return table
}

// element creates an empty element node
func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}

// textNode creates a text node
func textNode(text string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: text,
	}
}
