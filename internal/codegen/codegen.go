package codegen

import (
	"fmt"
	"log/slog"

	"tacgen/internal/lexer"
)

// ---------------------------------------------------------------------------
// Options controls the behaviour of the code-generation pipeline.
// ---------------------------------------------------------------------------

// Options configures the codegen pipeline.
type Options struct {
	// Alphabet is the ordered set of symbols variable names are drawn from.
	// Defaults to DefaultAlphabet.
	Alphabet string

	// ExtendNames continues past the last symbol with multi-symbol names
	// instead of failing with a CapacityError.
	ExtendNames bool

	// Logger receives LevelTrace records for every transition. Nil discards.
	Logger *slog.Logger

	// DumpIR fills Result.IRDump with a table of the lowered program.
	DumpIR bool
}

// DefaultOptions returns the a..z alphabet with fixed naming and no logging.
func DefaultOptions() *Options {
	return &Options{
		Alphabet: DefaultAlphabet,
	}
}

// NewNamer builds a fresh namer from the naming options.
func (o *Options) NewNamer() (*Namer, error) {
	alphabet := o.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	namer, err := NewNamer(alphabet, o.ExtendNames)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return namer, nil
}

// ---------------------------------------------------------------------------
// Result is returned by Generate.
// ---------------------------------------------------------------------------

type Result struct {
	Program *Program
	IRDump  string // human-readable IR dump (for debugging)
}

// ---------------------------------------------------------------------------
// Generate: the public entry point for the codegen pipeline
//
// Pipeline: token stream → namer setup → lower → optional dump
// ---------------------------------------------------------------------------

// Generate lowers the token stream into a program.
func Generate(stream lexer.Stream, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	namer, err := opts.NewNamer()
	if err != nil {
		return nil, err
	}

	prog, err := Lower(stream, namer, opts.Logger)
	if err != nil {
		return nil, err
	}

	res := &Result{Program: prog}
	if opts.DumpIR {
		res.IRDump = prog.DebugDump()
	}
	return res, nil
}
