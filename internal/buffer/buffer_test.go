package buffer

import "testing"

func TestAppendGrows(t *testing.T) {
	b := New(1, 1024)
	for i := 0; i < 100; i++ {
		if err := b.Append(byte(i)); err != nil {
			t.Fatalf("Append(%d) returned error: %v", i, err)
		}
	}
	if b.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", b.Len())
	}
	for i, c := range b.Bytes() {
		if int(c) != i {
			t.Fatalf("Bytes()[%d] = %d, want %d", i, c, i)
		}
	}
}

func TestAppendFailsAtMax(t *testing.T) {
	b := New(1, 4)
	for i := 0; i < 4; i++ {
		if err := b.Append('x'); err != nil {
			t.Fatalf("Append #%d failed unexpectedly: %v", i, err)
		}
	}
	if err := b.Append('x'); err != ErrTooLong {
		t.Fatalf("Append past max = %v, want ErrTooLong", err)
	}
	if b.Len() != 4 {
		t.Fatalf("Len() after failed append = %d, want 4 (no mutation)", b.Len())
	}
}

func TestResetKeepAllocation(t *testing.T) {
	b := New(1, 64)
	b.Append('a')
	b.Append('b')
	b.Reset(true)
	if b.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", b.Len())
	}
	if cap(b.data) == 0 {
		t.Fatalf("Reset(true) released the backing array")
	}
}

func TestResetDropAllocation(t *testing.T) {
	b := New(1, 64)
	b.Append('a')
	b.Reset(false)
	if b.data != nil {
		t.Fatalf("Reset(false) kept the backing array")
	}
}

func TestLastAndDropLast(t *testing.T) {
	b := New(1, 64)
	if _, ok := b.Last(); ok {
		t.Fatalf("Last() on empty buffer reported ok")
	}
	b.Append('x')
	b.Append('y')
	last, ok := b.Last()
	if !ok || last != 'y' {
		t.Fatalf("Last() = (%v, %v), want ('y', true)", last, ok)
	}
	b.DropLast()
	if b.Len() != 1 {
		t.Fatalf("Len() after DropLast = %d, want 1", b.Len())
	}
	last, _ = b.Last()
	if last != 'x' {
		t.Fatalf("Last() after DropLast = %v, want 'x'", last)
	}
}

func TestHadZero(t *testing.T) {
	b := New(1, 64)
	b.Append('a')
	if b.HadZero() {
		t.Fatalf("HadZero() true before any zero byte appended")
	}
	b.Append(0)
	if !b.HadZero() {
		t.Fatalf("HadZero() false after a zero byte was appended")
	}
	b.DropLast()
	if b.HadZero() {
		t.Fatalf("HadZero() true after the only zero byte was dropped")
	}
}
