package block

import (
	"strings"
	"testing"

	"github.com/canidlogic/shastina/internal/filter"
	"github.com/canidlogic/shastina/internal/perr"
)

func newTok(s string) *Tokenizer {
	return New(filter.New(strings.NewReader(s)), 1024)
}

func mustSimple(t *testing.T, tok *Tokenizer, want string) {
	t.Helper()
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != Simple {
		t.Fatalf("Kind = %v, want Simple", tk.Kind)
	}
	if string(tk.Key) != want {
		t.Fatalf("Key = %q, want %q", tk.Key, want)
	}
}

func TestSimpleTokens(t *testing.T) {
	tok := newTok("hello world\n|;\n")
	mustSimple(t, tok, "hello")
	mustSimple(t, tok, "world")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != Terminal {
		t.Fatalf("Kind = %v, want Terminal", tk.Kind)
	}
}

func TestAtomicTokens(t *testing.T) {
	tok := newTok("( ) [ ] , % ;x |;\n")
	for _, want := range []string{"(", ")", "[", "]", ",", "%"} {
		mustSimple(t, tok, want)
	}
	// ';' immediately followed by a non-ws byte is its own atomic token,
	// distinct from the two-byte "|;" terminal.
	mustSimple(t, tok, ";")
	mustSimple(t, tok, "x")
}

func TestCommentSkipped(t *testing.T) {
	tok := newTok("# a comment\nfoo |;\n")
	mustSimple(t, tok, "foo")
}

func TestQuotedString(t *testing.T) {
	tok := newTok(`pre"hello"` + " |;\n")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != String || tk.StringKind != Quoted {
		t.Fatalf("Kind/StringKind = %v/%v, want String/Quoted", tk.Kind, tk.StringKind)
	}
	if string(tk.Key) != "pre" {
		t.Fatalf("Key = %q, want %q", tk.Key, "pre")
	}
	if string(tk.Data) != "hello" {
		t.Fatalf("Data = %q, want %q", tk.Data, "hello")
	}
}

func TestQuotedStringEscape(t *testing.T) {
	tok := newTok(`"a\"b\\c"` + " |;\n")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if string(tk.Data) != `a\"b\\c` {
		t.Fatalf("Data = %q, want %q", tk.Data, `a\"b\\c`)
	}
}

func TestQuotedStringUnterminated(t *testing.T) {
	tok := newTok(`"abc`)
	_, err := tok.Next()
	if err == nil || err.Code != perr.OpenStr {
		t.Fatalf("err = %v, want OpenStr", err)
	}
}

func TestQuotedStringNullChar(t *testing.T) {
	tok := newTok("\"ab\x00cd\"")
	_, err := tok.Next()
	if err == nil || err.Code != perr.NullChar {
		t.Fatalf("err = %v, want NullChar", err)
	}
}

func TestCurlyString(t *testing.T) {
	tok := newTok(`{"world"}` + " |;\n")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != String || tk.StringKind != Curly {
		t.Fatalf("Kind/StringKind = %v/%v, want String/Curly", tk.Kind, tk.StringKind)
	}
	if string(tk.Data) != `"world"` {
		t.Fatalf("Data = %q, want %q", tk.Data, `"world"`)
	}
}

func TestCurlyStringNested(t *testing.T) {
	tok := newTok("{a{b}c} |;\n")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if string(tk.Data) != "a{b}c" {
		t.Fatalf("Data = %q, want %q", tk.Data, "a{b}c")
	}
}

func TestCurlyStringUnterminated(t *testing.T) {
	tok := newTok("{abc")
	_, err := tok.Next()
	if err == nil || err.Code != perr.OpenStr {
		t.Fatalf("err = %v, want OpenStr", err)
	}
}

func TestEmbeddedToken(t *testing.T) {
	tok := newTok("pre`rawdata")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != Embedded {
		t.Fatalf("Kind = %v, want Embedded", tk.Kind)
	}
	if string(tk.Key) != "pre" {
		t.Fatalf("Key = %q, want %q", tk.Key, "pre")
	}
}

func TestTrailerAfterTerminal(t *testing.T) {
	tok := newTok("|;\nfoo\n")
	_, err := tok.Next()
	if err == nil || err.Code != perr.Trailer {
		t.Fatalf("err = %v, want Trailer", err)
	}
}

func TestTerminalWithTrailingCommentIsOK(t *testing.T) {
	tok := newTok("|;\n# trailing comment\n")
	tk, err := tok.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tk.Kind != Terminal {
		t.Fatalf("Kind = %v, want Terminal", tk.Kind)
	}
}

func TestLongTokenBounds(t *testing.T) {
	tok := New(filter.New(strings.NewReader("aaaaaaaaaa |;\n")), 4)
	_, err := tok.Next()
	if err == nil || err.Code != perr.LongToken {
		t.Fatalf("err = %v, want LongToken", err)
	}
}

func TestLongStrBounds(t *testing.T) {
	tok := New(filter.New(strings.NewReader(`"aaaaaaaaaa"`+" |;\n")), 4)
	_, err := tok.Next()
	if err == nil || err.Code != perr.LongStr {
		t.Fatalf("err = %v, want LongStr", err)
	}
}

func TestBadCharOutsideVisibleRange(t *testing.T) {
	tok := newTok("\x01abc\n")
	_, err := tok.Next()
	if err == nil || err.Code != perr.BadChar {
		t.Fatalf("err = %v, want BadChar", err)
	}
}
