package goquery

import (
	"net/url"
	"strings"

	"github.com/mabho/pagecarve"
	"golang.org/x/net/html"
)

// traversal accumulates blocks while walking a content region.
// A single open group of adjacent content markup spans container
// boundaries; widget blocks always close it.
type traversal struct {
	rules  *pagecarve.Rules
	base   *url.URL
	blocks []pagecarve.Block
	group  []string
}

// walk classifies the children of container in document order.
func (t *traversal) walk(container *html.Node) error {
	child := container.FirstChild
	for child != nil {
		next := child.NextSibling

		switch child.Type {
		case html.TextNode:
			// Loose text between blocks joins the open group so page
			// text outside allowed elements is not lost.
			if strings.TrimSpace(child.Data) != "" {
				rendered, err := serializeNode(child)
				if err != nil {
					return err
				}
				t.group = append(t.group, strings.TrimSpace(rendered))
			}

		case html.ElementNode:
			if script := siblingScript(child, t.rules); script != nil {
				embedHTML, err := serializeNode(child)
				if err != nil {
					return err
				}
				scriptHTML, err := serializeNode(script)
				if err != nil {
					return err
				}
				t.flush()
				t.emitWidget(embedHTML+scriptHTML, child)
				next = script.NextSibling
			} else if t.rules.AllowedTag(child.Data) {
				if err := t.allowedBlock(child); err != nil {
					return err
				}
			} else if t.shouldDescend(child) {
				if err := t.walk(child); err != nil {
					return err
				}
			}
		}

		child = next
	}
	return nil
}

// allowedBlock captures an allowed element. Blocks without nested pairs
// join the group whole; blocks with pairs are split and their remnants
// sanitized, with each widget closing the group as usual.
func (t *traversal) allowedBlock(block *html.Node) error {
	pairs := nestedPairs(block, t.rules)
	if len(pairs) > 0 {
		fragments, split, err := splitBlock(block, pairs)
		if err != nil {
			return err
		}
		if split {
			for _, frag := range fragments {
				if frag.widget {
					t.flush()
					t.emitWidget(frag.html, frag.embed)
					continue
				}
				if cleaned, ok := sanitizeFragment(frag.html); ok {
					t.group = append(t.group, cleaned)
				}
			}
			return nil
		}
	}

	markup, err := serializeNode(block)
	if err != nil {
		return err
	}
	t.group = append(t.group, markup)
	return nil
}

// shouldDescend reports whether traversal recurses into an element.
// Unpaired script elements and raw-text elements never contribute
// blocks, so their contents are skipped.
func (t *traversal) shouldDescend(n *html.Node) bool {
	if strings.EqualFold(n.Data, t.rules.Sequence.ScriptTag) {
		return false
	}
	switch strings.ToLower(n.Data) {
	case "script", "style", "template", "textarea", "title", "iframe", "noscript", "noembed", "noframes", "xmp":
		return false
	}
	return true
}

// flush closes the open group into a content block.
func (t *traversal) flush() {
	if len(t.group) == 0 {
		return
	}
	t.blocks = append(t.blocks, pagecarve.Block{
		Kind: pagecarve.BlockContent,
		HTML: strings.Join(t.group, "\n"),
	})
	t.group = nil
}

func (t *traversal) emitWidget(markup string, embed *html.Node) {
	t.blocks = append(t.blocks, pagecarve.Block{
		Kind:      pagecarve.BlockWidget,
		HTML:      markup,
		SourceURL: t.sourceURL(embed),
	})
}

// sourceURL reads the embed's source attribute, resolved against the
// page URL when one is known.
func (t *traversal) sourceURL(embed *html.Node) string {
	src := attrVal(embed, t.rules.SourceAttr)
	if src == "" || t.base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return t.base.ResolveReference(ref).String()
}

// finish flushes the trailing group and assembles the extraction.
func (t *traversal) finish() *pagecarve.Extraction {
	t.flush()
	e := &pagecarve.Extraction{Blocks: t.blocks}
	if e.Blocks == nil {
		e.Blocks = []pagecarve.Block{}
	}
	for _, b := range e.Blocks {
		if b.Kind == pagecarve.BlockWidget {
			e.WidgetCount++
		} else {
			e.ContentCount++
		}
	}
	return e
}
