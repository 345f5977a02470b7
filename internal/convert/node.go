package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// detach removes n from its parent and reports whether the node was still
// attached. Detaching an already-detached node is not an error; passes that
// mutate during iteration treat it as a discard and continue.
func detach(n *html.Node) bool {
	if n == nil || n.Parent == nil {
		return false
	}
	n.Parent.RemoveChild(n)
	return true
}

// nodeText returns the concatenated text content of a node and its subtree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// collectNodes materializes the subtree rooted at each node into a flat
// slice, depth first. Passes snapshot match lists with this before any
// removal loop so mutation cannot skip candidates.
func collectNodes(roots []*html.Node, keep func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if keep(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}
