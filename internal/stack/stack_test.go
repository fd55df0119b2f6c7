package stack

import "testing"

func TestPushPopPeek(t *testing.T) {
	s := New(1, 16)
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}
	for _, v := range []int64{1, 2, 3} {
		if err := s.Push(v); err != nil {
			t.Fatalf("Push(%d) failed: %v", v, err)
		}
	}
	if got := s.Peek(); got != 3 {
		t.Fatalf("Peek() = %d, want 3", got)
	}
	if got := s.Pop(); got != 3 {
		t.Fatalf("Pop() = %d, want 3", got)
	}
	if got := s.Pop(); got != 2 {
		t.Fatalf("Pop() = %d, want 2", got)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
}

func TestPushFailsAtMax(t *testing.T) {
	s := New(1, 2)
	if err := s.Push(1); err != nil {
		t.Fatalf("Push failed unexpectedly: %v", err)
	}
	if err := s.Push(2); err != nil {
		t.Fatalf("Push failed unexpectedly: %v", err)
	}
	if err := s.Push(3); err != ErrFull {
		t.Fatalf("Push past max = %v, want ErrFull", err)
	}
}

func TestPopPeekPanicOnEmpty(t *testing.T) {
	s := New(1, 4)
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("Pop on empty stack did not panic")
			}
		}()
		s.Pop()
	}()
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("Peek on empty stack did not panic")
			}
		}()
		s.Peek()
	}()
}

func TestIncOverflow(t *testing.T) {
	s := New(1, 4)
	s.Push(maxInt64 - 1)
	if err := s.Inc(); err != nil {
		t.Fatalf("Inc() failed unexpectedly: %v", err)
	}
	if got := s.Peek(); got != maxInt64 {
		t.Fatalf("Peek() = %d, want maxInt64", got)
	}
	if err := s.Inc(); err != ErrOverflow {
		t.Fatalf("Inc() at max = %v, want ErrOverflow", err)
	}
}

func TestDecUnderflow(t *testing.T) {
	s := New(1, 4)
	s.Push(1)
	if err := s.Dec(); err != nil {
		t.Fatalf("Dec() failed unexpectedly: %v", err)
	}
	if got := s.Peek(); got != 0 {
		t.Fatalf("Peek() = %d, want 0", got)
	}
	if err := s.Dec(); err != ErrUnderflow {
		t.Fatalf("Dec() at 0 = %v, want ErrUnderflow", err)
	}
}

func TestResetKeepAllocation(t *testing.T) {
	s := New(1, 16)
	s.Push(1)
	s.Push(2)
	s.Reset(true)
	if s.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", s.Count())
	}
	if cap(s.data) == 0 {
		t.Fatalf("Reset(true) released the backing array")
	}
}
