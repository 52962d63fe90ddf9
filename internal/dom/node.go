package dom

import (
	"strings"

	"golang.org/x/net/html"

	"careerflow/internal/errors"
)

// Attr returns the value of an attribute on a node, or "".
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether a node carries an attribute, regardless of value.
func HasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// Closest walks from n up through its ancestors (n included) and returns the
// first element satisfying pred, or nil.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && pred(cur) {
			return cur
		}
	}
	return nil
}

// Text collects the concatenated text content of a subtree.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// SetText replaces a node's children with a single text node.
func SetText(n *html.Node, text string) {
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// ReplaceNode substitutes replacement for old in old's parent, preserving
// siblings. The replacement is detached from its own tree first. Returns an
// error if old has no parent.
func ReplaceNode(old, replacement *html.Node) error {
	parent := old.Parent
	if parent == nil {
		return errors.SelectorMiss("replacement target has no parent")
	}
	Detach(replacement)
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
	return nil
}

// SetInnerHTML replaces a node's children with nodes parsed from fragment
// markup, using the node itself as parse context.
func SetInnerHTML(n *html.Node, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), n)
	if err != nil {
		return errors.WithCode(errors.CodeParseFailed, err)
	}
	removeChildren(n)
	for _, child := range nodes {
		Detach(child)
		n.AppendChild(child)
	}
	return nil
}

// Detach removes a node from its parent and sibling links so it can be
// inserted elsewhere.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	n.Parent = nil
	n.PrevSibling = nil
	n.NextSibling = nil
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}
