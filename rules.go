package pagecarve

import "strings"

// SpecialSequence is an ordered pair of element names that together
// make up a widget: an embed element followed by its activation script.
type SpecialSequence struct {
	EmbedTag  string `json:"embedTag"`
	ScriptTag string `json:"scriptTag"`
}

// Rules configures block extraction. A Rules value is fixed for the
// lifetime of an extractor; changing rules means building a new one.
type Rules struct {
	// AllowedTags are the element names captured whole as content.
	// Descendants of an allowed element are never classified separately.
	AllowedTags []string `json:"allowedTags"`

	// Sequence is the embed/script pair recognized as a widget.
	Sequence SpecialSequence `json:"sequence"`

	// TitleHeadings are the element names scanned, in priority order,
	// when resolving a widget title from the embedded document.
	TitleHeadings []string `json:"titleHeadings"`

	// SourceAttr is the embed attribute holding the widget source URL.
	SourceAttr string `json:"sourceAttr"`
}

// DefaultRules returns the standard extraction rules: paragraph, quote,
// list and heading elements as content, iframe+script pairs as widgets,
// widget titles from the highest-ranked heading, sources from src.
func DefaultRules() Rules {
	return Rules{
		AllowedTags: []string{"p", "blockquote", "ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6"},
		Sequence: SpecialSequence{
			EmbedTag:  "iframe",
			ScriptTag: "script",
		},
		TitleHeadings: []string{"h1", "h2", "h3", "h4", "h5", "h6"},
		SourceAttr:    "src",
	}
}

// Validate returns an error if the rules are unusable.
func (r *Rules) Validate() error {
	if len(r.AllowedTags) == 0 {
		return Errorf(EINVALID, "at least one allowed tag required")
	}
	if r.Sequence.EmbedTag == "" || r.Sequence.ScriptTag == "" {
		return Errorf(EINVALID, "special sequence requires both an embed tag and a script tag")
	}
	if r.SourceAttr == "" {
		return Errorf(EINVALID, "source attribute required")
	}
	return nil
}

// AllowedTag reports whether name is one of the allowed content tags.
// Matching is case-insensitive.
func (r *Rules) AllowedTag(name string) bool {
	for _, tag := range r.AllowedTags {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}
