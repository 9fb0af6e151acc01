package codegen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAlphabet is the ordered set of symbols variable names are drawn from.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// CapacityError is returned when a program needs more variables than a
// fixed alphabet can name.
type CapacityError struct {
	Limit int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("expression needs more than %d intermediate variables", e.Limit)
}

// Namer hands out variable names strictly in alphabet order, never reusing
// one. In fixed mode each symbol is used once and the namer then fails with a
// CapacityError. In extended mode it continues with multi-symbol names in
// bijective base-N order: a … z, aa, ab, … az, ba, … zz, aaa, …
type Namer struct {
	symbols []rune
	extend  bool
	next    int
}

// NewNamer validates alphabet and returns a namer positioned at its first
// symbol. Digits and whitespace are rejected so that a name can never be
// mistaken for a literal or split by the lexer.
func NewNamer(alphabet string, extend bool) (*Namer, error) {
	if alphabet == "" {
		return nil, fmt.Errorf("empty variable alphabet")
	}
	if !utf8.ValidString(alphabet) {
		return nil, fmt.Errorf("variable alphabet %q is not valid UTF-8", alphabet)
	}
	seen := map[rune]bool{}
	var symbols []rune
	for _, r := range alphabet {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || r == '+' || r == '*' || r == '=' {
			return nil, fmt.Errorf("variable alphabet %q contains reserved symbol %q", alphabet, r)
		}
		if seen[r] {
			return nil, fmt.Errorf("variable alphabet %q repeats symbol %q", alphabet, r)
		}
		seen[r] = true
		symbols = append(symbols, r)
	}
	return &Namer{symbols: symbols, extend: extend}, nil
}

// Capacity is the number of names the namer can produce, or -1 if unbounded.
func (n *Namer) Capacity() int {
	if n.extend {
		return -1
	}
	return len(n.symbols)
}

// Allocated is the number of names handed out so far.
func (n *Namer) Allocated() int {
	return n.next
}

// Next returns the next unused name.
func (n *Namer) Next() (string, error) {
	if !n.extend && n.next >= len(n.symbols) {
		return "", &CapacityError{Limit: len(n.symbols)}
	}
	name := n.NameAt(n.next)
	n.next++
	return name, nil
}

// NameAt returns the name the namer hands out for the i-th allocation
// (0-based), without consuming anything. In fixed mode i must be below
// Capacity.
func (n *Namer) NameAt(i int) string {
	base := len(n.symbols)
	if i < base {
		return string(n.symbols[i])
	}

	// Bijective numeration: digits run 1..base, so no name has a "leading
	// zero" and every length class follows the previous one without gaps.
	var digits []rune
	for k := i + 1; k > 0; k = (k - 1) / base {
		digits = append(digits, n.symbols[(k-1)%base])
	}
	var sb strings.Builder
	for j := len(digits) - 1; j >= 0; j-- {
		sb.WriteRune(digits[j])
	}
	return sb.String()
}
