package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Function's rewritten body as readable pseudo-assembly,
// mirroring the teacher's IR printer: an indent-tracking string builder
// with small writeLine/writeIndent helpers rather than a template engine.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer { return &Printer{} }

// Print returns the pretty-printed form of fn.
func Print(fn *Function) string {
	p := NewPrinter()
	p.printFunction(fn)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...any) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", param.Name, param.Typ)
	}
	ret := ""
	if fn.ReturnType != nil {
		ret = " -> " + fn.ReturnType.String()
	}
	p.writeLine("func %s(%s)%s {", fn.Name, strings.Join(params, ", "), ret)
	p.indent++
	p.printSequence(fn.Body)
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printSequence(seq *Sequence) {
	if seq == nil {
		return
	}
	for _, stmt := range seq.Stmts {
		p.printStmt(stmt)
	}
}

func (p *Printer) printStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Define:
		if s.Init != nil {
			p.writeLine("define %s = %s", p.exprStr(s.Var), p.exprStr(s.Init))
		} else {
			p.writeLine("define %s", p.exprStr(s.Var))
		}
	case *Assign:
		p.writeLine("%s = %s", p.exprStr(s.Lhs), p.exprStr(s.Rhs))
	case *IfElse:
		p.writeLine("if %s {", p.exprStr(s.Cond))
		p.indent++
		p.printSequence(s.Then)
		p.indent--
		if s.Else != nil {
			p.writeLine("} else {")
			p.indent++
			p.printSequence(s.Else)
			p.indent--
		}
		p.writeLine("}")
	case *ForLoop:
		p.writeLine("for %s = %s to %s step %s {", s.Ind.Name, p.exprStr(s.Begin), p.exprStr(s.End), p.exprStr(s.Step))
		p.indent++
		p.printSequence(s.Body)
		p.indent--
		p.writeLine("}")
	case *Sequence:
		p.printSequence(s)
	default:
		p.writeLine("<unknown stmt>")
	}
}

func (p *Printer) exprStr(e Expr) string {
	switch v := e.(type) {
	case nil:
		return "<none>"
	case *VarRef:
		return v.Name
	case *TensorRef:
		return v.Name
	case *Constant:
		return fmt.Sprintf("%v", v.Value)
	case *Index:
		return fmt.Sprintf("%s[%s]", p.exprStr(v.Arr), p.exprStr(v.Idx))
	case *Operator:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = p.exprStr(a)
		}
		return fmt.Sprintf("%s(%s)", v.Op, strings.Join(args, ", "))
	case *Phi:
		ops := make([]string, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = p.exprStr(o)
		}
		return fmt.Sprintf("phi(%s)", strings.Join(ops, ", "))
	default:
		return "<unknown expr>"
	}
}
