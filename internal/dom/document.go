// Package dom provides a minimal document handle over golang.org/x/net/html
// trees: parsing, a CSS-subset selector engine, and the node operations the
// fragment-swap controller needs (wholesale replacement, inner-HTML swaps,
// text extraction, form serialization).
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"careerflow/internal/errors"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse reads and parses a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WithCode(errors.CodeParseFailed, err)
	}
	return &Document{root: root}, nil
}

// ParseString parses a full HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// QuerySelector returns the first node matching the selector, or nil.
func (d *Document) QuerySelector(selector string) *html.Node {
	matches := querySelectorAll(d.root, selector)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// QuerySelectorAll returns every node matching the selector.
func (d *Document) QuerySelectorAll(selector string) []*html.Node {
	return querySelectorAll(d.root, selector)
}

// HTML renders the whole document back to markup.
func (d *Document) HTML() (string, error) {
	return RenderNode(d.root)
}

// RenderNode renders a single node (and its subtree) to markup.
func RenderNode(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", errors.WithCode(errors.CodeParseFailed, err)
	}
	return sb.String(), nil
}
