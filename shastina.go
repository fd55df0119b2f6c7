// Package shastina implements a parser for the Shastina stack-oriented
// textual data language: a byte-level input filter stack, a
// block/tokeniser layer, and an entity reader, composed into a single
// forward-only, single-character-lookahead parser.
package shastina

import "github.com/canidlogic/shastina/internal/filter"

// Parser reads a sequence of Entity values from a Source. It is a
// sequential state machine: not safe for concurrent use, and not
// re-entrant. A Parser cannot be reused once it has reported EOF or an
// error — Read keeps returning that same terminal result forever.
type Parser struct {
	filt   *filter.Stack
	reader *reader
}

// New constructs a Parser reading from src. If limits is omitted,
// DefaultLimits() is used; only the first element of limits is
// consulted.
func New(src Source, limits ...Limits) *Parser {
	lim := DefaultLimits()
	if len(limits) > 0 {
		lim = limits[0]
	}
	filt := filter.New(src)
	return &Parser{
		filt:   filt,
		reader: newReader(filt, lim),
	}
}

// Read returns the next Entity in the stream. Once EOF has been
// observed, every subsequent call returns the KindEOF entity again.
// Once a parse error has been detected, every subsequent call returns
// that same *ParseError. The byte slices embedded in the returned
// Entity alias the Parser's internal buffers and are valid only until
// the next call to Read.
func (p *Parser) Read() (Entity, error) {
	e, err := p.reader.Read()
	if err != nil {
		return e, err
	}
	return e, nil
}

// Line returns the current 1-based source line number, saturating at
// math.MaxInt64.
func (p *Parser) Line() int64 {
	return p.filt.Line()
}

// HadBOM reports whether a leading UTF-8 byte-order-mark was stripped
// from the input. Meaningful only after at least one call to Read.
func (p *Parser) HadBOM() bool {
	return p.filt.HadBOM()
}
