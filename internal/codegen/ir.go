package codegen

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ---------------------------------------------------------------------------
// IR: flat three-address code
//
// Every instruction assigns a fresh variable the result of one binary
// operation. The left operand is a literal for the first instruction and the
// previous instruction's variable afterwards; the right operand is always a
// literal.
// ---------------------------------------------------------------------------

// ---------------------------------------------------------------------------
// Operand kinds
// ---------------------------------------------------------------------------

// OpKind describes what an IR operand represents.
type OpKind int

const (
	OpNone      OpKind = iota // unused operand slot
	OpImmediate               // integer literal
	OpVar                     // previously assigned variable
)

// Operand is a single value in an IR instruction.
type Operand struct {
	Kind OpKind
	Imm  int64  // integer value (OpImmediate)
	Name string // variable name (OpVar)
}

func (o Operand) String() string {
	switch o.Kind {
	case OpNone:
		return "<none>"
	case OpImmediate:
		return strconv.FormatInt(o.Imm, 10)
	case OpVar:
		return o.Name
	default:
		return "?"
	}
}

// Convenience constructors for operands.
func Imm(val int64) Operand   { return Operand{Kind: OpImmediate, Imm: val} }
func Var(name string) Operand { return Operand{Kind: OpVar, Name: name} }
func None() Operand           { return Operand{Kind: OpNone} }

// ---------------------------------------------------------------------------
// IR opcodes
// ---------------------------------------------------------------------------

// IROp is an IR instruction opcode.
type IROp int

const (
	IRAdd IROp = iota // dst = lhs + rhs
	IRMul             // dst = lhs * rhs
)

var irOpSymbols = map[IROp]string{
	IRAdd: "+",
	IRMul: "*",
}

func (op IROp) String() string {
	if s, ok := irOpSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("irop_%d", int(op))
}

// ---------------------------------------------------------------------------
// IR Instruction
// ---------------------------------------------------------------------------

// IRInstr is a single three-address instruction.
type IRInstr struct {
	Op  IROp
	Dst string
	LHS Operand
	RHS Operand
}

func (i IRInstr) String() string {
	return fmt.Sprintf("%s = %s %s %s", i.Dst, i.LHS, i.Op, i.RHS)
}

// ---------------------------------------------------------------------------
// Program
// ---------------------------------------------------------------------------

// Program is the lowered form of one expression: the instructions in
// execution order and the variable holding the final value.
type Program struct {
	Instrs []IRInstr
	Result string
}

// Emit appends an instruction to the program.
func (p *Program) Emit(instr IRInstr) {
	p.Instrs = append(p.Instrs, instr)
}

// Lines renders the program as one string per instruction followed by the
// bare result variable.
func (p *Program) Lines() []string {
	out := make([]string, 0, len(p.Instrs)+1)
	for _, instr := range p.Instrs {
		out = append(out, instr.String())
	}
	return append(out, p.Result)
}

// DebugDump returns a human-readable table of the program. Header and footer
// keep their case so variable names print exactly as assigned.
func (p *Program) DebugDump() string {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Dst", "LHS", "Op", "RHS"})
	for i, instr := range p.Instrs {
		t.AppendRow(table.Row{i, instr.Dst, instr.LHS, instr.Op, instr.RHS})
	}
	t.AppendFooter(table.Row{"", "result", p.Result, "", ""})

	s := fmt.Sprintf("=== Program (%d instructions, result %s) ===\n", len(p.Instrs), p.Result)
	return s + t.Render() + "\n"
}
