// Package block implements the tokeniser: it turns the normalized byte
// stream produced by internal/filter into a sequence of lexical blocks
// (simple tokens, the "|;" terminal, and quoted/curly string and
// embedded-data openers), scanning byte-at-a-time with one-character
// lookahead.
package block

import (
	"math"

	"github.com/canidlogic/shastina/internal/buffer"
	"github.com/canidlogic/shastina/internal/filter"
	"github.com/canidlogic/shastina/internal/perr"
)

// Kind identifies the shape of a Token.
type Kind int

const (
	Simple Kind = iota
	Terminal
	String
	Embedded
)

// StringKind distinguishes the two string-literal flavors. Meaningful
// only when Token.Kind == String.
type StringKind int

const (
	Quoted StringKind = iota
	Curly
)

// Token is one lexical block read from the source. Key and Data are live
// views into buffers owned by the Tokenizer: both are valid only until
// the next call to Next.
type Token struct {
	Kind       Kind
	Key        []byte
	StringKind StringKind
	Data       []byte
	Line       int64
}

// maxCurlyDepth bounds curly-string brace nesting, independent of
// MAX_BLOCK.
const maxCurlyDepth = math.MaxInt32

// Tokenizer reads Tokens from a filter.Stack, enforcing a MAX_BLOCK-style
// cap on both token and string-data length.
type Tokenizer struct {
	filt *filter.Stack
	key  *buffer.Buffer
	val  *buffer.Buffer
}

// New creates a Tokenizer reading from filt. maxBlock bounds the length
// of a simple token's key and of string/curly literal data.
func New(filt *filter.Stack, maxBlock int) *Tokenizer {
	return &Tokenizer{
		filt: filt,
		key:  buffer.New(64, maxBlock),
		val:  buffer.New(64, maxBlock),
	}
}

func isExclusiveStop(b byte) bool {
	switch b {
	case '\t', ' ', '\n', '(', ')', '[', ']', ',', '%', ';', '#', '}':
		return true
	}
	return false
}

func isInclusiveStop(b byte) bool {
	switch b {
	case '"', '\'', '{', '`':
		return true
	}
	return false
}

func isAtomic(b byte) bool {
	switch b {
	case '(', ')', '[', ']', ',', '%', ';', '"', '\'', '{', '}', '`':
		return true
	}
	return false
}

// skipWSAndComments consumes a run of whitespace and "#"-to-end-of-line
// comments. On reaching real content it pushes the triggering byte back
// and returns (0, false). On reaching EOF/IOError/BadSignature first, it
// returns (code, true) without pushing anything back.
func (t *Tokenizer) skipWSAndComments() (perr.Code, bool) {
	for {
		r := t.filt.Read()
		switch r.Outcome {
		case filter.EOF:
			return perr.EOF, true
		case filter.IOError:
			return perr.IO, true
		case filter.BadSignature:
			return perr.BadSig, true
		}
		switch r.B {
		case '\t', ' ', '\n':
			continue
		case '#':
			if code, isErr := t.skipToEOL(); isErr {
				return code, true
			}
			continue
		default:
			t.filt.PushBack()
			return 0, false
		}
	}
}

func (t *Tokenizer) skipToEOL() (perr.Code, bool) {
	for {
		r := t.filt.Read()
		switch r.Outcome {
		case filter.EOF:
			return perr.EOF, true
		case filter.IOError:
			return perr.IO, true
		case filter.BadSignature:
			return perr.BadSig, true
		}
		if r.B == '\n' {
			return 0, false
		}
	}
}

// Next reads and returns the next lexical block.
func (t *Tokenizer) Next() (Token, *perr.Error) {
	if code, isErr := t.skipWSAndComments(); isErr {
		return Token{}, &perr.Error{Code: code, Line: t.filt.Line()}
	}
	startLine := t.filt.Line()

	r := t.filt.Read()
	switch r.Outcome {
	case filter.EOF:
		return Token{}, &perr.Error{Code: perr.EOF, Line: startLine}
	case filter.IOError:
		return Token{}, &perr.Error{Code: perr.IO, Line: startLine}
	case filter.BadSignature:
		return Token{}, &perr.Error{Code: perr.BadSig, Line: startLine}
	}
	first := r.B
	if first < 0x21 || first > 0x7E {
		return Token{}, &perr.Error{Code: perr.BadChar, Line: startLine}
	}

	t.key.Reset(true)

	if isAtomic(first) {
		_ = t.key.Append(first) // buffer is empty; cannot fail
		return t.finish(startLine)
	}

	_ = t.key.Append(first)

	if first == '|' {
		nxt := t.filt.Read()
		if nxt.Outcome == filter.Byte && nxt.B == ';' {
			_ = t.key.Append(';')
			return t.finish(startLine)
		}
		t.filt.PushBack()
	}

	return t.scanGeneral(startLine)
}

// scanGeneral implements the general token-reading loop: bytes
// accumulate into the key buffer until an exclusive stop (pushed back,
// not part of the token) or an inclusive stop (appended, ends the
// token) is reached.
func (t *Tokenizer) scanGeneral(startLine int64) (Token, *perr.Error) {
	for {
		r := t.filt.Read()
		switch r.Outcome {
		case filter.EOF:
			return Token{}, &perr.Error{Code: perr.EOF, Line: t.filt.Line()}
		case filter.IOError:
			return Token{}, &perr.Error{Code: perr.IO, Line: t.filt.Line()}
		case filter.BadSignature:
			return Token{}, &perr.Error{Code: perr.BadSig, Line: t.filt.Line()}
		}
		b := r.B

		if isExclusiveStop(b) {
			t.filt.PushBack()
			return t.finish(startLine)
		}
		if isInclusiveStop(b) {
			if err := t.key.Append(b); err != nil {
				return Token{}, &perr.Error{Code: perr.LongToken, Line: t.filt.Line()}
			}
			return t.finish(startLine)
		}
		if b < 0x21 || b > 0x7E {
			return Token{}, &perr.Error{Code: perr.BadChar, Line: t.filt.Line()}
		}
		if err := t.key.Append(b); err != nil {
			return Token{}, &perr.Error{Code: perr.LongToken, Line: t.filt.Line()}
		}
	}
}

// finish classifies the completed key buffer into its token flavor and,
// for string openers, reads the string body.
func (t *Tokenizer) finish(startLine int64) (Token, *perr.Error) {
	if t.key.String() == "|;" {
		return t.finishTerminal(startLine)
	}

	last, _ := t.key.Last()
	switch last {
	case '"':
		t.key.DropLast()
		return t.finishString(startLine, Quoted)
	case '{':
		t.key.DropLast()
		return t.finishString(startLine, Curly)
	case '`':
		t.key.DropLast()
		return Token{Kind: Embedded, Key: t.key.Bytes(), Line: startLine}, nil
	default:
		return Token{Kind: Simple, Key: t.key.Bytes(), Line: startLine}, nil
	}
}

// finishTerminal validates that nothing but whitespace/comments follows
// the "|;" token before EOF; anything else is a Trailer error.
func (t *Tokenizer) finishTerminal(startLine int64) (Token, *perr.Error) {
	code, isErr := t.skipWSAndComments()
	if isErr {
		if code == perr.EOF {
			return Token{Kind: Terminal, Line: startLine}, nil
		}
		return Token{}, &perr.Error{Code: code, Line: t.filt.Line()}
	}
	return Token{}, &perr.Error{Code: perr.Trailer, Line: t.filt.Line()}
}

// finishString reads quoted- or curly-string body data into the value
// buffer.
func (t *Tokenizer) finishString(startLine int64, kind StringKind) (Token, *perr.Error) {
	t.val.Reset(true)
	escapeArmed := false
	depth := 1

	for {
		r := t.filt.Read()
		switch r.Outcome {
		case filter.EOF:
			return Token{}, &perr.Error{Code: perr.OpenStr, Line: t.filt.Line()}
		case filter.IOError:
			return Token{}, &perr.Error{Code: perr.IO, Line: t.filt.Line()}
		case filter.BadSignature:
			return Token{}, &perr.Error{Code: perr.BadSig, Line: t.filt.Line()}
		}
		b := r.B

		if kind == Quoted {
			if b == '"' && !escapeArmed {
				break
			}
		} else {
			if !escapeArmed {
				if b == '{' {
					depth++
					if depth > maxCurlyDepth {
						return Token{}, &perr.Error{Code: perr.DeepCurly, Line: t.filt.Line()}
					}
				} else if b == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
		}

		if b == 0 {
			return Token{}, &perr.Error{Code: perr.NullChar, Line: t.filt.Line()}
		}
		if err := t.val.Append(b); err != nil {
			return Token{}, &perr.Error{Code: perr.LongStr, Line: t.filt.Line()}
		}

		if escapeArmed {
			escapeArmed = false
		} else if b == '\\' {
			escapeArmed = true
		}
	}

	return Token{
		Kind:       String,
		StringKind: kind,
		Key:        t.key.Bytes(),
		Data:       t.val.Bytes(),
		Line:       startLine,
	}, nil
}
