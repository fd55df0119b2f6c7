// Package trace provides the pluggable sink cmd/shastina-dump writes its
// entity trace to, so a caller can swap in a no-op sink for quiet runs
// without cmd/shastina-dump needing an "if verbose" check at every
// print site.
package trace

import "fmt"

// Logger is the sink an entity trace is written to.
type Logger interface {
	Print(v ...any)
	Printf(format string, v ...any)
	Println(v ...any)
}

// StdoutLogger writes every entity to standard output.
type StdoutLogger struct{}

func (StdoutLogger) Print(v ...any)                 { fmt.Print(v...) }
func (StdoutLogger) Printf(format string, v ...any) { fmt.Printf(format, v...) }
func (StdoutLogger) Println(v ...any)               { fmt.Println(v...) }

// NullLogger discards everything written to it.
type NullLogger struct{}

func (NullLogger) Print(v ...any)                 {}
func (NullLogger) Printf(format string, v ...any) {}
func (NullLogger) Println(v ...any)               {}
