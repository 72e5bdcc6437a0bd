package models

// Block type discriminators the gate inspects in structured output.
const (
	BlockParagraph = "paragraph"
	BlockTable     = "table"
)

// Document is the shape of the hwp CLI's json subcommand output: a document
// tree of sections, each holding an ordered list of typed content blocks.
// Only the fields the gate reads are modeled; everything else in the payload
// is ignored on decode.
type Document struct {
	Metadata DocumentMetadata  `json:"metadata"`
	Sections []DocumentSection `json:"sections"`
}

// DocumentMetadata is the subset of document metadata worth surfacing.
type DocumentMetadata struct {
	Title     string `json:"title,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
	CharCount int    `json:"char_count,omitempty"`
}

// DocumentSection is one section of the document tree.
type DocumentSection struct {
	Index   int            `json:"index"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one unit of section content, discriminated by Type.
// The type-specific payload fields (text runs, table rows, image data) are
// not modeled; the gate only counts blocks.
type ContentBlock struct {
	Type string `json:"type"`
}

// ParagraphCount counts paragraph blocks across all sections.
func (d *Document) ParagraphCount() int {
	return d.countBlocks(BlockParagraph)
}

// TableCount counts table blocks across all sections.
func (d *Document) TableCount() int {
	return d.countBlocks(BlockTable)
}

func (d *Document) countBlocks(blockType string) int {
	n := 0
	for _, sec := range d.Sections {
		for _, block := range sec.Content {
			if block.Type == blockType {
				n++
			}
		}
	}
	return n
}
