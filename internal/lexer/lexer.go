package lexer

import (
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Kind is the closed set of token kinds an expression can contain.
type Kind int

const (
	Additive       Kind = iota // +
	Multiplicative             // *
	Literal                    // non-negative decimal integer
)

func (k Kind) String() string {
	switch k {
	case Additive:
		return "ADDITIVE"
	case Multiplicative:
		return "MULTIPLICATIVE"
	case Literal:
		return "LITERAL"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// IsOperator reports whether k is one of the two binary operator kinds.
func (k Kind) IsOperator() bool {
	return k == Additive || k == Multiplicative
}

// Token represents a single lexical token produced by the lexer.
// Value is only meaningful for Literal tokens and is zero otherwise, so two
// tokens compare equal with == exactly when they are structurally equal.
type Token struct {
	Kind  Kind
	Value int64
}

// Add, Mul and Int build tokens without going through the scanner.
func Add() Token            { return Token{Kind: Additive} }
func Mul() Token            { return Token{Kind: Multiplicative} }
func Int(value int64) Token { return Token{Kind: Literal, Value: value} }

// String renders the token the way it is spelled in source, so joining the
// strings of a token sequence with spaces lexes back to the same sequence.
func (t Token) String() string {
	switch t.Kind {
	case Additive:
		return "+"
	case Multiplicative:
		return "*"
	case Literal:
		return strconv.FormatInt(t.Value, 10)
	default:
		return "?"
	}
}

// LexError describes an atom that is neither an operator nor an integer
// literal. Lexing stops at the first one.
type LexError struct {
	Message string
	Lexeme  string
	Index   int // ordinal of the atom among all atoms of the input
	Offset  int // byte offset of the atom in the input
}

func (e LexError) Error() string {
	return fmt.Sprintf("atom %d, offset %d: %s (got %q)", e.Index, e.Offset, e.Message, e.Lexeme)
}

// Stream yields tokens one at a time. Next returns io.EOF once the input is
// exhausted; any other error is fatal and is returned again on every later
// call.
type Stream interface {
	Next() (Token, error)
}

// Scanner lazily splits an expression into whitespace-delimited atoms and
// classifies each one as it is requested.
type Scanner struct {
	input string
	pos   int
	index int
	err   error
}

// NewScanner returns a Scanner positioned at the start of input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Next returns the next token, io.EOF at the end of input, or a *LexError.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	start, end := s.nextAtom()
	if start == end {
		s.err = io.EOF
		return Token{}, s.err
	}

	tok, lexErr := classify(s.input[start:end])
	if lexErr != nil {
		lexErr.Index = s.index
		lexErr.Offset = start
		s.err = lexErr
		return Token{}, s.err
	}
	s.index++
	return tok, nil
}

// nextAtom skips whitespace and returns the byte bounds of the following
// atom. start == end means the input is exhausted.
func (s *Scanner) nextAtom() (int, int) {
	for s.pos < len(s.input) {
		r, width := utf8.DecodeRuneInString(s.input[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += width
	}
	start := s.pos
	for s.pos < len(s.input) {
		r, width := utf8.DecodeRuneInString(s.input[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += width
	}
	return start, s.pos
}

/**
* Lexes the whole expression up front. Either every atom is classified and
* the complete token slice is returned, or lexing stops at the first bad atom
* and only the error is returned.
* @param input The expression text.
* @return The tokens in input order, or a *LexError.
 */
func Lex(input string) ([]Token, error) {
	var tokens []Token
	s := NewScanner(input)
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func classify(atom string) (Token, *LexError) {
	switch atom {
	case "+":
		return Add(), nil
	case "*":
		return Mul(), nil
	}

	if !isDigits(atom) {
		return Token{}, &LexError{Message: "unknown symbol", Lexeme: atom}
	}
	n, err := strconv.ParseInt(atom, 10, 64)
	if err != nil {
		return Token{}, &LexError{Message: "integer literal out of range", Lexeme: atom}
	}
	return Int(n), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// SliceStream replays an already lexed token slice.
type SliceStream struct {
	tokens []Token
	pos    int
}

// NewSliceStream returns a Stream over tokens.
func NewSliceStream(tokens []Token) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) Next() (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}
