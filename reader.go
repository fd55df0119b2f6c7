package shastina

import (
	"github.com/canidlogic/shastina/internal/block"
	"github.com/canidlogic/shastina/internal/filter"
	"github.com/canidlogic/shastina/internal/perr"
	"github.com/canidlogic/shastina/internal/stack"
)

// reader is the entity-reader state machine. It sits on top of the
// tokeniser, maintaining the array/group nesting stacks, the
// in-metacommand flag, and a small lookahead queue so that a single
// token can expand into several entities (e.g. an array close expands
// into EndGroup then Array).
type reader struct {
	tok  *block.Tokenizer
	filt *filter.Stack

	arr *stack.Stack // array-count stack
	grp *stack.Stack // group-nesting stack; bottom entry is always present

	limits Limits

	status *perr.Error

	queue []Entity
	qRead int

	inMeta       bool
	arrayOpening bool
}

func newReader(filt *filter.Stack, limits Limits) *reader {
	limits = limits.Normalize()
	r := &reader{
		tok:    block.New(filt, limits.MaxBlock),
		filt:   filt,
		arr:    stack.New(16, limits.MaxStack),
		grp:    stack.New(16, limits.MaxStack),
		limits: limits,
		queue:  make([]Entity, 0, limits.MaxQueue),
	}
	// The group-nesting stack's depth-0 entry always exists, even
	// before any array or group has been opened.
	if err := r.grp.Push(0); err != nil {
		panic("shastina: group stack cannot hold its initial entry")
	}
	return r
}

// Read returns the next entity, or the sticky parse error once one has
// been detected.
func (r *reader) Read() (Entity, *perr.Error) {
	if r.status != nil {
		return Entity{}, r.status
	}
	for r.qRead >= len(r.queue) {
		r.queue = r.queue[:0]
		r.qRead = 0
		if err := r.fill(); err != nil {
			r.status = err
			return Entity{}, err
		}
	}
	e := r.queue[r.qRead]
	if e.Kind != KindEOF {
		r.qRead++
	}
	return e, nil
}

func (r *reader) enqueue(e Entity) {
	if len(r.queue) >= r.limits.MaxQueue {
		panic("shastina: entity queue overflow")
	}
	r.queue = append(r.queue, e)
}

// fill reads exactly one token and turns it into zero or more queued
// entities, or a sticky error.
func (r *reader) fill() *perr.Error {
	tk, tokErr := r.tok.Next()
	if tokErr != nil {
		return tokErr
	}

	isCloseArray := tk.Kind == block.Simple && string(tk.Key) == "]"

	// Array-prefix hook: every non-"]" token seen while an array has
	// just been opened with "[" gets implicitly wrapped in a BeginGroup,
	// and starts that array's element count at 1.
	if !r.inMeta && !isCloseArray && r.arrayOpening {
		r.arrayOpening = false
		if err := r.arr.Push(1); err != nil {
			return &perr.Error{Code: perr.DeepArray, Line: tk.Line}
		}
		if err := r.grp.Push(0); err != nil {
			r.arr.Pop()
			return &perr.Error{Code: perr.DeepArray, Line: tk.Line}
		}
		r.enqueue(Entity{Kind: KindBeginGroup})
	}

	switch tk.Kind {
	case block.Terminal:
		return r.dispatchTerminal(tk)
	case block.String:
		kind := KindString
		if r.inMeta {
			kind = KindMetaString
		}
		r.enqueue(Entity{Kind: kind, Prefix: tk.Key, StringKind: tk.StringKind, Data: tk.Data})
		return nil
	case block.Embedded:
		if r.inMeta {
			return &perr.Error{Code: perr.MetaEmbed, Line: tk.Line}
		}
		r.enqueue(Entity{Kind: KindEmbedded, Prefix: tk.Key})
		return nil
	case block.Simple:
		return r.dispatchSimple(tk)
	}
	panic("shastina: unrecognized token kind")
}

func (r *reader) dispatchTerminal(tk block.Token) *perr.Error {
	if r.inMeta {
		return &perr.Error{Code: perr.OpenMeta, Line: tk.Line}
	}
	if r.arrayOpening || r.arr.Count() != 0 {
		return &perr.Error{Code: perr.OpenArray, Line: tk.Line}
	}
	if r.grp.Peek() != 0 {
		return &perr.Error{Code: perr.OpenGroup, Line: tk.Line}
	}
	r.enqueue(Entity{Kind: KindEOF})
	return nil
}

func (r *reader) dispatchSimple(tk block.Token) *perr.Error {
	key := tk.Key
	first := key[0]

	if len(key) == 1 && first == '%' {
		if r.inMeta {
			return &perr.Error{Code: perr.MetaNest, Line: tk.Line}
		}
		r.inMeta = true
		r.enqueue(Entity{Kind: KindBeginMeta})
		return nil
	}
	if len(key) == 1 && first == ';' {
		if !r.inMeta {
			return &perr.Error{Code: perr.Semicolon, Line: tk.Line}
		}
		r.inMeta = false
		r.enqueue(Entity{Kind: KindEndMeta})
		return nil
	}
	if r.inMeta {
		r.enqueue(Entity{Kind: KindMetaToken, Text: key})
		return nil
	}

	switch {
	case first == '+' || first == '-' || (first >= '0' && first <= '9'):
		r.enqueue(Entity{Kind: KindNumeric, Text: key})
		return nil
	case first == '?':
		r.enqueue(Entity{Kind: KindVariable, Name: key[1:]})
		return nil
	case first == '@':
		r.enqueue(Entity{Kind: KindConstant, Name: key[1:]})
		return nil
	case first == ':':
		r.enqueue(Entity{Kind: KindAssign, Name: key[1:]})
		return nil
	case first == '=':
		r.enqueue(Entity{Kind: KindGet, Name: key[1:]})
		return nil
	case len(key) == 1 && first == '(':
		if err := r.grp.Inc(); err != nil {
			return &perr.Error{Code: perr.DeepGroup, Line: tk.Line}
		}
		r.enqueue(Entity{Kind: KindBeginGroup})
		return nil
	case len(key) == 1 && first == ')':
		if err := r.grp.Dec(); err != nil {
			return &perr.Error{Code: perr.RParen, Line: tk.Line}
		}
		r.enqueue(Entity{Kind: KindEndGroup})
		return nil
	case len(key) == 1 && first == '[':
		r.arrayOpening = true
		return nil
	case len(key) == 1 && first == ']':
		return r.dispatchCloseArray(tk)
	case len(key) == 1 && first == ',':
		return r.dispatchComma(tk)
	default:
		r.enqueue(Entity{Kind: KindOperation, Name: key})
		return nil
	}
}

func (r *reader) dispatchCloseArray(tk block.Token) *perr.Error {
	if r.arrayOpening {
		r.arrayOpening = false
		r.enqueue(Entity{Kind: KindArray, Count: 0})
		return nil
	}
	if r.arr.Count() == 0 {
		return &perr.Error{Code: perr.RSqr, Line: tk.Line}
	}
	if r.grp.Peek() != 0 {
		return &perr.Error{Code: perr.OpenGroup, Line: tk.Line}
	}
	r.enqueue(Entity{Kind: KindEndGroup})
	count := r.arr.Pop()
	r.enqueue(Entity{Kind: KindArray, Count: count})
	r.grp.Pop()
	return nil
}

func (r *reader) dispatchComma(tk block.Token) *perr.Error {
	if r.arr.Count() == 0 {
		return &perr.Error{Code: perr.RSqr, Line: tk.Line}
	}
	if r.grp.Peek() != 0 {
		return &perr.Error{Code: perr.OpenGroup, Line: tk.Line}
	}
	if err := r.arr.Inc(); err != nil {
		return &perr.Error{Code: perr.LongArray, Line: tk.Line}
	}
	r.enqueue(Entity{Kind: KindEndGroup})
	r.enqueue(Entity{Kind: KindBeginGroup})
	return nil
}
