package shastina

import "github.com/canidlogic/shastina/internal/perr"

// Code identifies one member of the closed parse-error enumeration. It
// is a re-export of internal/perr.Code so that callers never need to
// import an internal package to name an error.
type Code = perr.Code

// The closed error enumeration, grouped into source errors (IO, EOF,
// BadSig), lexical errors detected by the tokeniser, structural errors
// detected by the entity reader, and capacity errors raised by the
// bounded buffers and stacks underneath both.
const (
	IO        = perr.IO
	EOF       = perr.EOF
	BadSig    = perr.BadSig
	OpenStr   = perr.OpenStr
	LongStr   = perr.LongStr
	NullChar  = perr.NullChar
	DeepCurly = perr.DeepCurly
	BadChar   = perr.BadChar
	LongToken = perr.LongToken
	Trailer   = perr.Trailer
	DeepArray = perr.DeepArray
	MetaNest  = perr.MetaNest
	Semicolon = perr.Semicolon
	DeepGroup = perr.DeepGroup
	RParen    = perr.RParen
	RSqr      = perr.RSqr
	OpenGroup = perr.OpenGroup
	LongArray = perr.LongArray
	MetaEmbed = perr.MetaEmbed
	OpenMeta  = perr.OpenMeta
	OpenArray = perr.OpenArray
	Comma     = perr.Comma
)

// ParseError is the sticky error value returned once a parse failure has
// been detected. It carries both the error code and the 1-based line
// number at which it was detected (saturated at math.MaxInt64).
type ParseError = perr.Error

// ErrorMessage returns the static, human-readable description of an
// error code.
func ErrorMessage(c Code) string {
	return perr.Message(c)
}
