package shastina

import (
	"bufio"
	"io"

	"github.com/canidlogic/shastina/internal/filter"
)

// Source is the byte source a Parser reads from: any object producing
// u8/EOF/IO-error. It is a narrow capability interface rather than a
// raw function pointer plus opaque user data, so a Parser is
// polymorphic over wherever its bytes come from.
//
// io.EOF from ReadByte signals clean end of stream; any other non-nil
// error is coerced to an I/O error.
type Source = filter.Source

// NewSource adapts an io.Reader into a Source. If r already implements
// io.ByteReader (as *bufio.Reader, *bytes.Reader, and *strings.Reader
// do), it is used directly; otherwise r is wrapped in a *bufio.Reader.
func NewSource(r io.Reader) Source {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}
