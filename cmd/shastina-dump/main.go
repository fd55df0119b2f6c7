// Command shastina-dump reads Shastina source from standard input (or
// one or more files) and writes a human-readable entity trace to
// standard output, exiting 0 on success and non-zero on error with a
// message on standard error.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/canidlogic/shastina"
	"github.com/canidlogic/shastina/config"
	"github.com/canidlogic/shastina/trace"
	"github.com/canidlogic/shastina/util"
)

type options struct {
	Files       []string `short:"f" long:"file" description:"Read Shastina source from the given file(s) instead of standard input" value-name:"path"`
	Config      string   `long:"config" description:"YAML file overriding the parser's default Limits" value-name:"path"`
	MaxBlock    int      `long:"max-block" description:"override MAX_BLOCK (token/string-data length cap)" value-name:"n"`
	Concurrency int      `long:"concurrency" description:"files parsed concurrently; 0 disables concurrency, <0 means no limit" value-name:"n" default:"4"`
	Color       bool     `long:"color" description:"force colorized trace output"`
	NoColor     bool     `long:"no-color" description:"disable colorized trace output"`
	Quiet       bool     `long:"quiet" description:"suppress the entity trace; only report parse errors"`
	Version     bool     `long:"version" description:"show version and exit"`
}

var version = "dev"

func main() {
	util.InitSlog()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options]"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	limits, err := config.ParseLimitsConfig(opts.Config)
	if err != nil {
		log.Fatal(err)
	}
	if opts.MaxBlock > 0 {
		limits.MaxBlock = opts.MaxBlock
	}
	limits = limits.Normalize()

	sink := trace.Logger(trace.StdoutLogger{})
	if opts.Quiet {
		sink = trace.NullLogger{}
	}

	pp.ColoringEnabled = colorEnabled(opts)

	sources := opts.Files
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	outputs, err := util.ParseSourcesConcurrently(sources, opts.Concurrency, func(path string) (string, error) {
		return dumpSource(path, limits)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "shastina-dump: %v\n", err)
		os.Exit(1)
	}

	for _, out := range outputs {
		sink.Print(out)
	}
	os.Exit(0)
}

func colorEnabled(opts options) bool {
	if opts.NoColor {
		return false
	}
	if opts.Color {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// dumpSource parses one source (a file path, or "-" for standard input)
// and renders its entity trace into a string, so that concurrent parses
// can still be printed to stdout in command-line order.
func dumpSource(path string, limits shastina.Limits) (string, error) {
	r, err := openSource(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	p := shastina.New(shastina.NewSource(r), limits)

	var buf bytes.Buffer
	for {
		e, err := p.Read()
		if err != nil {
			pe := err.(*shastina.ParseError)
			return buf.String(), fmt.Errorf("%s:%d: %s", path, pe.Line, shastina.ErrorMessage(pe.Code))
		}
		if e.Kind == shastina.KindEOF {
			break
		}
		pp.Fprintln(&buf, traceLine(path, p, e))
	}
	return buf.String(), nil
}

// traceLine renders one entity as a single struct the pretty-printer
// turns into a readable, optionally colorized line.
func traceLine(path string, p *shastina.Parser, e shastina.Entity) any {
	return struct {
		File string
		Line int64
		Kind string
		E    shastina.Entity
	}{File: path, Line: p.Line(), Kind: e.Kind.String(), E: e}
}

func openSource(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
