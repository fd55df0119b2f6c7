package shastina

import "github.com/canidlogic/shastina/internal/block"

// StringKind distinguishes the two string-literal flavors a String or
// MetaString entity can carry: a double-quoted literal or a
// curly-braced one.
type StringKind = block.StringKind

const (
	Quoted = block.Quoted
	Curly  = block.Curly
)

// Kind discriminates the variants an Entity can hold.
type Kind int

const (
	KindEOF Kind = iota
	KindString
	KindEmbedded
	KindBeginMeta
	KindEndMeta
	KindMetaToken
	KindMetaString
	KindNumeric
	KindVariable
	KindConstant
	KindAssign
	KindGet
	KindBeginGroup
	KindEndGroup
	KindArray
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindString:
		return "String"
	case KindEmbedded:
		return "Embedded"
	case KindBeginMeta:
		return "BeginMeta"
	case KindEndMeta:
		return "EndMeta"
	case KindMetaToken:
		return "MetaToken"
	case KindMetaString:
		return "MetaString"
	case KindNumeric:
		return "Numeric"
	case KindVariable:
		return "Variable"
	case KindConstant:
		return "Constant"
	case KindAssign:
		return "Assign"
	case KindGet:
		return "Get"
	case KindBeginGroup:
		return "BeginGroup"
	case KindEndGroup:
		return "EndGroup"
	case KindArray:
		return "Array"
	case KindOperation:
		return "Operation"
	default:
		return "Unknown"
	}
}

// Entity is one item of the lazy entity sequence produced by a Parser's
// Read method. Only the fields relevant to Kind are meaningful;
// Prefix/Data/Text/Name alias the parser's internal key and value
// buffers and are valid only until the next call to Read.
type Entity struct {
	Kind Kind

	// String, MetaString (Prefix also for Embedded).
	Prefix     []byte
	StringKind StringKind
	Data       []byte

	// MetaToken, Numeric.
	Text []byte

	// Variable, Constant, Assign, Get, Operation.
	Name []byte

	// Array.
	Count int64
}
