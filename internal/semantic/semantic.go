package semantic

import (
	"fmt"

	"tacgen/internal/codegen"
)

// ---------------------------------------------------------------------------
// Diagnostic
// ---------------------------------------------------------------------------

// Diagnostic is one invariant violation found in a lowered program.
type Diagnostic struct {
	Message string
	Instr   int // 0-based instruction index, -1 for whole-program findings
}

func (d Diagnostic) Error() string {
	if d.Instr < 0 {
		return "program: " + d.Message
	}
	return fmt.Sprintf("instr %d: %s", d.Instr, d.Message)
}

// ---------------------------------------------------------------------------
// Analyzer
// ---------------------------------------------------------------------------

type analyzer struct {
	prog  *codegen.Program
	names *codegen.Namer
	diags []Diagnostic
}

// Analyze checks that prog is a well-formed left-to-right chain whose
// variables were named by a namer configured like names. names is only read,
// never advanced. An empty result means the program is sound.
func Analyze(prog *codegen.Program, names *codegen.Namer) []Diagnostic {
	a := &analyzer{prog: prog, names: names}
	a.checkShape()
	if len(prog.Instrs) > 0 {
		a.checkChain()
		a.checkNames()
	}
	return a.diags
}

func (a *analyzer) errorf(instr int, format string, args ...any) {
	a.diags = append(a.diags, Diagnostic{Message: fmt.Sprintf(format, args...), Instr: instr})
}

// checkShape verifies the instruction count and the result entry.
func (a *analyzer) checkShape() {
	n := len(a.prog.Instrs)
	if n == 0 {
		a.errorf(-1, "no instructions")
		return
	}
	if limit := a.names.Capacity(); limit >= 0 && n > limit {
		a.errorf(-1, "%d instructions exceed the %d available names", n, limit)
	}
	if last := a.prog.Instrs[n-1].Dst; a.prog.Result != last {
		a.errorf(-1, "result is %q, want last assigned variable %q", a.prog.Result, last)
	}
}

// checkChain verifies operand kinds, operators and left-to-right linking.
func (a *analyzer) checkChain() {
	for i, instr := range a.prog.Instrs {
		switch instr.Op {
		case codegen.IRAdd, codegen.IRMul:
		default:
			a.errorf(i, "unknown operator %s", instr.Op)
		}

		if instr.RHS.Kind != codegen.OpImmediate {
			a.errorf(i, "right operand %s is not a literal", instr.RHS)
		}

		if i == 0 {
			if instr.LHS.Kind != codegen.OpImmediate {
				a.errorf(i, "first left operand %s is not a literal", instr.LHS)
			}
			continue
		}
		prev := a.prog.Instrs[i-1].Dst
		if instr.LHS.Kind != codegen.OpVar || instr.LHS.Name != prev {
			a.errorf(i, "left operand %s does not chain from %q", instr.LHS, prev)
		}
	}
}

// checkNames verifies that variables follow the namer order with no reuse.
func (a *analyzer) checkNames() {
	seen := map[string]int{}
	limit := a.names.Capacity()
	for i, instr := range a.prog.Instrs {
		if first, ok := seen[instr.Dst]; ok {
			a.errorf(i, "variable %q already assigned by instr %d", instr.Dst, first)
		}
		seen[instr.Dst] = i

		if limit >= 0 && i >= limit {
			continue
		}
		if want := a.names.NameAt(i); instr.Dst != want {
			a.errorf(i, "assigns %q, want %q", instr.Dst, want)
		}
	}
}
