package goquery

import (
	"strings"

	"github.com/mabho/pagecarve"
	"golang.org/x/net/html"
)

// widgetPair is a detected embed element and its activation script.
type widgetPair struct {
	embed  *html.Node
	script *html.Node
}

// siblingScript returns the script element paired with embed under the
// sibling rule: the embed's next element sibling, with only whitespace
// and comments between them. Returns nil when embed is not the embed
// tag or no adjacent script follows.
func siblingScript(embed *html.Node, rules *pagecarve.Rules) *html.Node {
	if !isElement(embed, rules.Sequence.EmbedTag) {
		return nil
	}
	next := nextElementSibling(embed)
	if next == nil || !isElement(next, rules.Sequence.ScriptTag) {
		return nil
	}
	return next
}

// nestedPairs finds embed/script pairs anywhere within block.
// Embeds are paired in document order, each with the nearest following
// unclaimed script. A script nested inside its candidate embed never
// pairs with it.
func nestedPairs(block *html.Node, rules *pagecarve.Rules) []widgetPair {
	type found struct {
		node *html.Node
		pos  int
	}
	var embeds, scripts []found

	pos := 0
	for n := block.FirstChild; n != nil; n = nextInDocumentOrder(n, block) {
		pos++
		if n.Type != html.ElementNode {
			continue
		}
		switch {
		case strings.EqualFold(n.Data, rules.Sequence.EmbedTag):
			embeds = append(embeds, found{node: n, pos: pos})
		case strings.EqualFold(n.Data, rules.Sequence.ScriptTag):
			scripts = append(scripts, found{node: n, pos: pos})
		}
	}
	if len(embeds) == 0 || len(scripts) == 0 {
		return nil
	}

	claimed := make([]bool, len(scripts))
	var pairs []widgetPair
	for _, embed := range embeds {
		for i, script := range scripts {
			if claimed[i] || script.pos <= embed.pos {
				continue
			}
			if isDescendantOf(script.node, embed.node) {
				continue
			}
			claimed[i] = true
			pairs = append(pairs, widgetPair{embed: embed.node, script: script.node})
			break
		}
	}
	return pairs
}
