package goquery

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Placeholder tokens delimit widget positions inside serialized block
// markup during splitting. NUL bytes never survive HTML parsing, so the
// tokens cannot collide with page content.
const (
	tokenFormat      = "\x00widget-%d\x00"
	tokenStartFormat = "\x00widget-%d-start\x00"
	tokenEndFormat   = "\x00widget-%d-end\x00"
)

// blockFragment is one piece of a split allowed block: either a widget
// or a plain markup remnant that surrounded it.
type blockFragment struct {
	widget bool
	html   string
	embed  *html.Node
}

// mark records a successful placeholder substitution for one pair.
type mark struct {
	pair       widgetPair
	interval   bool
	token      string
	start, end string
	embedHTML  string
	scriptHTML string
}

// splitBlock serializes an allowed block and splits it around its
// detected pairs. For each pair it substitutes the pair's combined
// markup with a placeholder token; when the embed and script are not
// adjacent in the serialized form it falls back to two placeholders and
// treats the span between them, inclusive, as the widget markup.
//
// The returned flag is false when no substitution succeeded; the caller
// then treats the block as plain content. A pair whose markup cannot be
// located degrades the same way: its elements stay in place as content.
func splitBlock(block *html.Node, pairs []widgetPair) ([]blockFragment, bool, error) {
	serialized, err := serializeNode(block)
	if err != nil {
		return nil, false, err
	}

	working := serialized
	var marks []mark
	for i, pair := range pairs {
		embedHTML, err := serializeNode(pair.embed)
		if err != nil {
			continue
		}
		scriptHTML, err := serializeNode(pair.script)
		if err != nil {
			continue
		}

		combined := embedHTML + scriptHTML
		if strings.Contains(working, combined) {
			token := fmt.Sprintf(tokenFormat, i)
			working = strings.Replace(working, combined, token, 1)
			marks = append(marks, mark{pair: pair, token: token, embedHTML: embedHTML, scriptHTML: scriptHTML})
			continue
		}

		start := fmt.Sprintf(tokenStartFormat, i)
		end := fmt.Sprintf(tokenEndFormat, i)
		candidate := strings.Replace(working, embedHTML, start, 1)
		candidate = strings.Replace(candidate, scriptHTML, end, 1)
		si := strings.Index(candidate, start)
		ei := strings.Index(candidate, end)
		if si < 0 || ei < 0 || si > ei {
			continue
		}
		working = candidate
		marks = append(marks, mark{pair: pair, interval: true, start: start, end: end, embedHTML: embedHTML, scriptHTML: scriptHTML})
	}
	if len(marks) == 0 {
		return nil, false, nil
	}

	cuts, ok := resolveCuts(working, marks)
	if !ok {
		return nil, false, nil
	}

	var fragments []blockFragment
	cursor := 0
	for _, c := range cuts {
		if c.from > cursor {
			fragments = append(fragments, blockFragment{html: working[cursor:c.from]})
		}
		fragments = append(fragments, blockFragment{widget: true, html: c.html, embed: c.embed})
		cursor = c.to
	}
	if cursor < len(working) {
		fragments = append(fragments, blockFragment{html: working[cursor:]})
	}
	return fragments, true, nil
}

// cut is the byte range one widget occupies in the working markup.
type cut struct {
	from, to int
	html     string
	embed    *html.Node
}

// resolveCuts locates every mark's token range. Returns false when the
// ranges overlap, which happens only with interleaved pairs; the caller
// degrades the whole block rather than emit markup with stray tokens.
func resolveCuts(working string, marks []mark) ([]cut, bool) {
	cuts := make([]cut, 0, len(marks))
	for _, m := range marks {
		if !m.interval {
			from := strings.Index(working, m.token)
			if from < 0 {
				return nil, false
			}
			cuts = append(cuts, cut{
				from:  from,
				to:    from + len(m.token),
				html:  m.embedHTML + m.scriptHTML,
				embed: m.pair.embed,
			})
			continue
		}

		from := strings.Index(working, m.start)
		endAt := strings.Index(working, m.end)
		if from < 0 || endAt < 0 || from > endAt {
			return nil, false
		}
		between := working[from+len(m.start) : endAt]
		cuts = append(cuts, cut{
			from:  from,
			to:    endAt + len(m.end),
			html:  m.embedHTML + between + m.scriptHTML,
			embed: m.pair.embed,
		})
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].from < cuts[j].from })
	for i := 1; i < len(cuts); i++ {
		if cuts[i].from < cuts[i-1].to {
			return nil, false
		}
	}
	return cuts, true
}
