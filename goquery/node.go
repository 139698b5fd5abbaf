package goquery

import (
	"strings"

	"github.com/mabho/pagecarve"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nextElementSibling returns the next element sibling of n, skipping
// whitespace-only text nodes and comments. A sibling text node with
// visible text breaks adjacency and yields nil.
func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
		if s.Type == html.TextNode && strings.TrimSpace(s.Data) != "" {
			return nil
		}
	}
	return nil
}

// nextInDocumentOrder returns the node following n in document order,
// staying within the boundary subtree. Returns nil once the subtree is
// exhausted.
func nextInDocumentOrder(n, boundary *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for cur := n; cur != nil && cur != boundary; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// isDescendantOf reports whether n sits anywhere below ancestor.
func isDescendantOf(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// isElement reports whether n is an element with the given tag name.
func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// attrVal returns the value of the named attribute, or "" if absent.
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// serializeNode renders a node subtree back to markup.
func serializeNode(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", pagecarve.Errorf(pagecarve.EINTERNAL, "render markup: %v", err)
	}
	return b.String(), nil
}

// parseBodyFragment parses markup as it would appear inside a body
// element and returns the resulting top-level nodes.
func parseBodyFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "parse fragment: %v", err)
	}
	return nodes, nil
}

// textContent concatenates the text of every text node under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// hasText reports whether any of the nodes carries visible text.
func hasText(nodes []*html.Node) bool {
	for _, n := range nodes {
		if strings.TrimSpace(textContent(n)) != "" {
			return true
		}
	}
	return false
}
