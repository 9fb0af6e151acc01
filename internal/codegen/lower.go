package codegen

import (
	"fmt"
	"io"
	"log/slog"

	"tacgen/internal/lexer"
)

// ---------------------------------------------------------------------------
// Lowerer: flattens a token stream into three-address code
// ---------------------------------------------------------------------------

// state is the position of the lowerer in the operand/operator alternation.
type state int

const (
	needLeftOperand  state = iota // nothing consumed yet
	needOperator                  // an operand is in hand
	needRightOperand              // operand and operator are in hand
)

func (s state) String() string {
	switch s {
	case needLeftOperand:
		return "NeedLeftOperand"
	case needOperator:
		return "NeedOperator"
	case needRightOperand:
		return "NeedRightOperand"
	default:
		return fmt.Sprintf("state_%d", int(s))
	}
}

// GrammarError reports a token, or the end of input, in a position the
// operand/operator alternation does not allow.
type GrammarError struct {
	Message string
	State   string // lowerer state when the error was detected
	Index   int    // ordinal of the offending token, or the token count at end of input
	Got     string // offending token text; empty at end of input
}

func (e GrammarError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("token %d: %s (at end of expression)", e.Index, e.Message)
	}
	return fmt.Sprintf("token %d: %s (got %q)", e.Index, e.Message, e.Got)
}

// Lowerer holds the state for a single pass over a token stream.
type Lowerer struct {
	stream lexer.Stream
	namer  *Namer
	logger *slog.Logger

	prog    *Program
	state   state
	pending IRInstr // instruction under construction
	index   int     // tokens consumed so far
}

// Lower consumes stream to the end and returns the flattened program. The
// first error, from the stream or from the grammar, aborts the pass and no
// program is returned. A nil logger discards trace output.
func Lower(stream lexer.Stream, namer *Namer, logger *slog.Logger) (*Program, error) {
	if logger == nil {
		logger = discardLogger()
	}
	l := &Lowerer{
		stream: stream,
		namer:  namer,
		logger: logger,
		prog:   &Program{},
		state:  needLeftOperand,
	}

	for {
		tok, err := l.stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := l.step(tok); err != nil {
			return nil, err
		}
		l.index++
	}
	return l.finish()
}

// step applies one token. Every (state, kind) pair is listed; anything that
// falls out of the switches is a grammar error.
func (l *Lowerer) step(tok lexer.Token) error {
	switch l.state {
	case needLeftOperand:
		switch tok.Kind {
		case lexer.Literal:
			l.pending = IRInstr{LHS: Imm(tok.Value)}
			l.transition(tok, needOperator)
			return nil
		case lexer.Additive, lexer.Multiplicative:
			return l.unexpected(tok, "expression must start with an integer literal")
		}

	case needOperator:
		switch tok.Kind {
		case lexer.Additive:
			l.pending.Op = IRAdd
			l.transition(tok, needRightOperand)
			return nil
		case lexer.Multiplicative:
			l.pending.Op = IRMul
			l.transition(tok, needRightOperand)
			return nil
		case lexer.Literal:
			return l.unexpected(tok, "expected an operator after an operand")
		}

	case needRightOperand:
		switch tok.Kind {
		case lexer.Literal:
			if err := l.complete(tok.Value); err != nil {
				return err
			}
			l.transition(tok, needOperator)
			return nil
		case lexer.Additive, lexer.Multiplicative:
			return l.unexpected(tok, "expected an integer literal after an operator")
		}
	}

	return l.unexpected(tok, fmt.Sprintf("token kind %s not allowed here", tok.Kind))
}

// complete closes the pending instruction with rhs, emits it and starts the
// next one on top of its result.
func (l *Lowerer) complete(rhs int64) error {
	dst, err := l.namer.Next()
	if err != nil {
		return err
	}
	l.pending.Dst = dst
	l.pending.RHS = Imm(rhs)
	l.prog.Emit(l.pending)
	trace(l.logger, "emit", "instr", l.pending.String(), "n", len(l.prog.Instrs))

	l.pending = IRInstr{LHS: Var(dst)}
	return nil
}

func (l *Lowerer) transition(tok lexer.Token, next state) {
	trace(l.logger, "transition",
		"index", l.index,
		"token", tok.String(),
		"from", l.state.String(),
		"to", next.String())
	l.state = next
}

// finish checks the end state and appends the result variable.
func (l *Lowerer) finish() (*Program, error) {
	switch l.state {
	case needLeftOperand:
		return nil, l.atEnd("empty expression")
	case needRightOperand:
		return nil, l.atEnd("expression ends with an operator")
	case needOperator:
		if len(l.prog.Instrs) == 0 {
			return nil, l.atEnd("expression has no operator")
		}
	default:
		return nil, l.atEnd("lowerer stopped in an unknown state")
	}

	l.prog.Result = l.prog.Instrs[len(l.prog.Instrs)-1].Dst
	trace(l.logger, "result", "var", l.prog.Result)
	return l.prog, nil
}

func (l *Lowerer) unexpected(tok lexer.Token, msg string) error {
	return &GrammarError{
		Message: msg,
		State:   l.state.String(),
		Index:   l.index,
		Got:     tok.String(),
	}
}

func (l *Lowerer) atEnd(msg string) error {
	return &GrammarError{
		Message: msg,
		State:   l.state.String(),
		Index:   l.index,
	}
}
