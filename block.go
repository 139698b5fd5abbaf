package pagecarve

// BlockKind identifies the kind of an extracted block.
type BlockKind string

// Block kinds produced by extraction.
const (
	BlockContent BlockKind = "content"
	BlockWidget  BlockKind = "widget"
)

// Block is a single unit of extracted page content, in document order.
//
// A content block holds the serialized markup of one or more adjacent
// allowed elements merged together. A widget block holds the combined
// markup of an embed element and its activation script, plus the embed
// source URL and, when resolution succeeds, the embedded document's title.
type Block struct {
	Kind BlockKind `json:"kind"`
	HTML string    `json:"html"`

	// Title is the resolved title of the embedded document.
	// Empty when the block is a content block or when resolution failed.
	Title string `json:"title,omitempty"`

	// SourceURL is the embed source, resolved against the page URL.
	// Empty for content blocks.
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Validate returns an error if the block contains invalid fields.
func (b *Block) Validate() error {
	if b.Kind != BlockContent && b.Kind != BlockWidget {
		return Errorf(EINVALID, "unknown block kind %q", b.Kind)
	}
	if b.HTML == "" {
		return Errorf(EINVALID, "block markup required")
	}
	return nil
}

// Extraction is the ordered result of carving a content region.
type Extraction struct {
	Blocks       []Block `json:"blocks"`
	ContentCount int     `json:"contentCount"`
	WidgetCount  int     `json:"widgetCount"`
}

// BlockExtractor carves page HTML into ordered blocks.
type BlockExtractor interface {
	// Extract parses the page, locates the content region, and returns
	// the extracted blocks in document order. The pageURL resolves
	// relative embed sources. Widget titles are left empty; resolving
	// them is the caller's concern.
	Extract(pageHTML, pageURL string) (*Extraction, error)
}
