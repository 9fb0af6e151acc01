// Package tacgen flattens left-to-right arithmetic expressions such as
// "6 * 7 + 1" into three-address code:
//
//	a = 6 * 7
//	b = a + 1
//	b
//
// Operators are applied strictly in textual order; there is no precedence.
package tacgen

import (
	"strings"

	"tacgen/internal/codegen"
	"tacgen/internal/lexer"
	"tacgen/internal/semantic"
)

// Error types returned by Expand. Use errors.As to tell them apart.
type (
	LexError      = lexer.LexError
	GrammarError  = codegen.GrammarError
	CapacityError = codegen.CapacityError
)

// Program is a flattened expression.
type Program = codegen.Program

// InvariantError reports a lowered program that failed its own consistency
// checks. It indicates a bug in the lowerer, not bad input.
type InvariantError struct {
	Diagnostics []semantic.Diagnostic
}

func (e InvariantError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return "invariant violated: " + strings.Join(msgs, "; ")
}

// Options extends the codegen options with the post-lowering check.
type Options struct {
	codegen.Options

	// Verify re-checks every lowered program before returning it.
	Verify bool
}

// DefaultOptions returns a..z naming with the capacity limit enforced and
// verification on.
func DefaultOptions() *Options {
	return &Options{
		Options: *codegen.DefaultOptions(),
		Verify:  true,
	}
}

// Expand flattens expression with the default options and returns one string
// per instruction followed by the name of the result variable.
func Expand(expression string) ([]string, error) {
	return ExpandWithOptions(expression, DefaultOptions())
}

// ExpandWithOptions is Expand with explicit options. A nil opts means the
// defaults.
func ExpandWithOptions(expression string, opts *Options) ([]string, error) {
	prog, err := ExpandProgram(expression, opts)
	if err != nil {
		return nil, err
	}
	return prog.Lines(), nil
}

// ExpandProgram lexes the whole expression, then lowers it. A lexical error
// anywhere in the input is reported before any grammar error.
func ExpandProgram(expression string, opts *Options) (*Program, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	tokens, err := lexer.Lex(expression)
	if err != nil {
		return nil, err
	}

	res, err := codegen.Generate(lexer.NewSliceStream(tokens), &opts.Options)
	if err != nil {
		return nil, err
	}

	if opts.Verify {
		names, err := opts.NewNamer()
		if err != nil {
			return nil, err
		}
		if diags := semantic.Analyze(res.Program, names); len(diags) > 0 {
			return nil, &InvariantError{Diagnostics: diags}
		}
	}
	return res.Program, nil
}
