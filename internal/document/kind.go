package document

// Kind tags a node with its Markdown element type.
type Kind string

const (
	KindHeading    Kind = "heading"
	KindParagraph  Kind = "paragraph"
	KindText       Kind = "text"
	KindStrong     Kind = "strong"
	KindEmphasis   Kind = "emphasis"
	KindDelete     Kind = "delete"
	KindInlineCode Kind = "inline_code"
	KindLink       Kind = "link"
	KindImage      Kind = "image"
	KindCode       Kind = "code"
	KindMath       Kind = "math"
	KindBlockquote Kind = "blockquote"
	KindList       Kind = "list"
	KindItem       Kind = "item"
	KindHR         Kind = "hr"
	KindHTML       Kind = "html"
	KindTable      Kind = "table"
	KindTableRow   Kind = "table_row"
	KindTableCell  Kind = "table_cell"
	KindYAML       Kind = "yaml"
	KindTOML       Kind = "toml"
	// KindValue tags results that do not reference a node.
	KindValue Kind = "value"
)

// Kinds lists every node kind produced by the parser.
func Kinds() []Kind {
	return []Kind{
		KindHeading, KindParagraph, KindText, KindStrong, KindEmphasis,
		KindDelete, KindInlineCode, KindLink, KindImage, KindCode, KindMath,
		KindBlockquote, KindList, KindItem, KindHR, KindHTML, KindTable,
		KindTableRow, KindTableCell, KindYAML, KindTOML,
	}
}

// IsBlock reports whether nodes of this kind render as standalone blocks.
func (k Kind) IsBlock() bool {
	switch k {
	case KindHeading, KindParagraph, KindCode, KindMath, KindBlockquote,
		KindList, KindItem, KindHR, KindHTML, KindTable, KindYAML, KindTOML:
		return true
	}
	return false
}
