// Package filter implements the byte-level input filter stack that sits
// between a raw byte source and the tokeniser: BOM stripping, line-break
// normalization, a guaranteed trailing line terminator, tab/line
// unghosting, line counting, and one-byte pushback. Each layer is
// modeled as its own method with its own private state, composed
// explicitly by Stack.Read, so each stage stays independently testable.
package filter

import (
	"io"
	"math"
)

// Outcome tags what a filter layer produced: an ordinary byte, a clean
// end of stream, an I/O failure from the underlying source, or (BOM layer
// only) a malformed byte-order-mark signature.
type Outcome int

const (
	Byte Outcome = iota
	EOF
	IOError
	BadSignature
)

// Result is the value threaded through every layer of the filter stack.
type Result struct {
	B       byte
	Outcome Outcome
}

func byteResult(b byte) Result { return Result{B: b, Outcome: Byte} }

var (
	eofResult    = Result{Outcome: EOF}
	ioErrResult  = Result{Outcome: IOError}
	badSigResult = Result{Outcome: BadSignature}
)

// Source is the external byte source the filter stack reads from: any
// object producing u8/EOF/IO-error. io.EOF from ReadByte signals clean
// end of stream; any other non-nil error is coerced to an I/O error.
type Source interface {
	ReadByte() (byte, error)
}

// maxTabRun bounds the SP-run counter in the tab-unghosting layer.
const maxTabRun = math.MaxInt32

// Stack composes the eight filter layers over a Source. It is not
// re-entrant and must not be shared between goroutines.
type Stack struct {
	src Source

	// Layer 1: raw read. Once non-byte, every subsequent raw read
	// returns the same terminal outcome without invoking src again.
	terminal     Outcome
	haveTerminal bool

	// Layer 2: BOM filter.
	bomInit    bool
	bomPresent bool
	bomQueue   []Result

	// Layer 3: line-break normalization.
	breakBuffered bool
	breakChar     Result

	// Layer 4: final-LF guarantee.
	finalLFDone bool
	lastWasLF   bool

	// Layer 5: tab-unghosting.
	tabReplaying  bool
	tabSPLeft     int
	tabTerminator Result

	// Layer 6: line-unghosting.
	lineReplaying  bool
	lineHTLeft     int
	lineSPLeft     int
	lineTerminator Result

	// Layer 7: line counter.
	lineNum int64

	// Layer 8: pushback.
	pushbackArmed bool
	pushbackVal   Result
	haveLastRead  bool
}

// New creates a filter Stack reading from src. The line counter starts
// at 1.
func New(src Source) *Stack {
	return &Stack{src: src, lineNum: 1}
}

// readRaw is filter layer 1.
func (f *Stack) readRaw() Result {
	if f.haveTerminal {
		return Result{Outcome: f.terminal}
	}
	b, err := f.src.ReadByte()
	if err == nil {
		return byteResult(b)
	}
	if err == io.EOF {
		f.haveTerminal = true
		f.terminal = EOF
		return eofResult
	}
	f.haveTerminal = true
	f.terminal = IOError
	return ioErrResult
}

// readBOM is filter layer 2.
func (f *Stack) readBOM() Result {
	if !f.bomInit {
		f.bomInit = true
		first := f.readRaw()
		if first.Outcome == Byte && first.B == 0xEF {
			second := f.readRaw()
			if second.Outcome != Byte || second.B != 0xBB {
				return f.signalBadSignature()
			}
			third := f.readRaw()
			if third.Outcome != Byte || third.B != 0xBF {
				return f.signalBadSignature()
			}
			f.bomPresent = true
			return f.readRaw()
		}
		f.bomQueue = append(f.bomQueue, first)
	}
	if len(f.bomQueue) > 0 {
		r := f.bomQueue[0]
		f.bomQueue = f.bomQueue[1:]
		return r
	}
	return f.readRaw()
}

func (f *Stack) signalBadSignature() Result {
	f.haveTerminal = true
	f.terminal = BadSignature
	return badSigResult
}

// readBreak is filter layer 3.
func (f *Stack) readBreak() Result {
	var ch Result
	if f.breakBuffered {
		ch = f.breakChar
		f.breakBuffered = false
	} else {
		ch = f.readBOM()
	}
	if ch.Outcome != Byte {
		return ch
	}
	switch ch.B {
	case '\r':
		nxt := f.readBOM()
		if nxt.Outcome == Byte && nxt.B == '\n' {
			// CR+LF collapses to one LF; nxt is consumed.
		} else {
			f.breakChar = nxt
			f.breakBuffered = true
		}
		return byteResult('\n')
	case '\n':
		nxt := f.readBOM()
		if nxt.Outcome == Byte && nxt.B == '\r' {
			// LF+CR collapses to one LF; nxt is consumed.
		} else {
			f.breakChar = nxt
			f.breakBuffered = true
		}
		return byteResult('\n')
	default:
		return ch
	}
}

// readFinalLF is filter layer 4.
func (f *Stack) readFinalLF() Result {
	r := f.readBreak()
	if r.Outcome == Byte {
		f.lastWasLF = r.B == '\n'
		return r
	}
	if r.Outcome == EOF && !f.finalLFDone {
		f.finalLFDone = true
		if !f.lastWasLF {
			f.lastWasLF = true
			return byteResult('\n')
		}
	}
	return r
}

// readTab is filter layer 5: SP+ HT -> HT.
func (f *Stack) readTab() Result {
	if f.tabReplaying {
		if f.tabSPLeft > 0 {
			f.tabSPLeft--
			return byteResult(' ')
		}
		f.tabReplaying = false
		return f.tabTerminator
	}

	r := f.readFinalLF()
	if r.Outcome != Byte || r.B != ' ' {
		return r
	}

	count := 1
	for {
		nxt := f.readFinalLF()
		if nxt.Outcome == Byte && nxt.B == ' ' {
			count++
			if count > maxTabRun {
				return ioErrResult
			}
			continue
		}
		if nxt.Outcome == Byte && nxt.B == '\t' {
			return nxt // discard the SP run, keep the HT
		}
		// Replay count SPs, then the terminator.
		f.tabSPLeft = count - 1
		f.tabTerminator = nxt
		f.tabReplaying = true
		return byteResult(' ')
	}
}

// readLine is filter layer 6: (HT|SP)+ LF -> LF. Relies on the
// precondition that filter 5 never leaves an SP immediately before an HT;
// a violation is a programmer-visible fault, not an input error.
func (f *Stack) readLine() Result {
	if f.lineReplaying {
		if f.lineHTLeft > 0 {
			f.lineHTLeft--
			return byteResult('\t')
		}
		if f.lineSPLeft > 0 {
			f.lineSPLeft--
			return byteResult(' ')
		}
		f.lineReplaying = false
		return f.lineTerminator
	}

	r := f.readTab()
	if r.Outcome != Byte || (r.B != '\t' && r.B != ' ') {
		return r
	}

	htCount, spCount := 0, 0
	if r.B == '\t' {
		htCount = 1
	} else {
		spCount = 1
	}

	for {
		nxt := f.readTab()
		switch {
		case nxt.Outcome == Byte && nxt.B == '\t':
			if spCount > 0 {
				panic("filter: line-unghosting precondition violated: HT follows SP in run")
			}
			htCount++
		case nxt.Outcome == Byte && nxt.B == ' ':
			spCount++
		case nxt.Outcome == Byte && nxt.B == '\n':
			return nxt // discard the whole run, keep the LF
		default:
			f.lineHTLeft = htCount
			f.lineSPLeft = spCount
			f.lineTerminator = nxt
			f.lineReplaying = true
			if f.lineHTLeft > 0 {
				f.lineHTLeft--
				return byteResult('\t')
			}
			f.lineSPLeft--
			return byteResult(' ')
		}
	}
}

// readCounted is filter layer 7: a 1-based, saturating line counter.
func (f *Stack) readCounted() Result {
	r := f.readLine()
	if r.Outcome == Byte && r.B == '\n' {
		if f.lineNum < math.MaxInt64 {
			f.lineNum++
		}
	}
	return r
}

// Read is filter layer 8 (pushback) and the only entry point a consumer
// uses.
func (f *Stack) Read() Result {
	if f.pushbackArmed {
		f.pushbackArmed = false
		return f.pushbackVal
	}
	r := f.readCounted()
	f.pushbackVal = r
	f.haveLastRead = true
	return r
}

// PushBack arms a one-byte pushback of the most recently returned value.
// It is a fault (panic) to call PushBack before any Read, or twice
// consecutively without an intervening Read.
func (f *Stack) PushBack() {
	if !f.haveLastRead {
		panic("filter: PushBack before any Read")
	}
	if f.pushbackArmed {
		panic("filter: PushBack called twice in a row")
	}
	f.pushbackArmed = true
}

// Line returns the current 1-based line number, saturating at
// math.MaxInt64.
func (f *Stack) Line() int64 {
	return f.lineNum
}

// HadBOM reports whether a UTF-8 byte-order-mark was stripped from the
// start of input. Meaningful only after at least one successful Read.
func (f *Stack) HadBOM() bool {
	return f.bomPresent
}
