package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shadesmith/shadesmith/internal/ast"
)

// --- Code Printer (Output is compilable shader source) ---

// CodePrinter serializes a generated program to source text. The output is
// deterministic: the same AST always prints to the same bytes, which is
// what lets the harness hash and replay programs.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole program: struct declarations first, then functions,
// both in declaration order.
func (p *CodePrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	p.indent = 0

	for _, decl := range program.Structs {
		p.printStruct(decl)
		p.buf.WriteString("\n")
	}
	for i, fn := range program.Functions {
		if i > 0 || len(program.Structs) > 0 {
			p.buf.WriteString("\n")
		}
		p.printFn(fn)
	}

	return p.buf.String()
}

// PrintExpr renders a single expression, mainly for diagnostics and tests.
func (p *CodePrinter) PrintExpr(expr ast.Expression) string {
	var buf bytes.Buffer
	writeExpr(&buf, expr)
	return buf.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) printStruct(decl *ast.StructDecl) {
	fmt.Fprintf(&p.buf, "struct %s {\n", decl.Name)
	p.indent++
	for _, m := range decl.Members {
		p.writeIndent()
		fmt.Fprintf(&p.buf, "%s: %s,\n", m.Name, m.Type)
	}
	p.indent--
	p.buf.WriteString("}\n")
}

func (p *CodePrinter) printFn(fn *ast.FnDecl) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", param.Name, param.Type)
	}

	fmt.Fprintf(&p.buf, "fn %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.Return != nil {
		fmt.Fprintf(&p.buf, " -> %s", fn.Return)
	}
	p.buf.WriteString(" {\n")
	p.printBlock(fn.Body)
	p.buf.WriteString("}\n")
}

func (p *CodePrinter) printBlock(stmts []ast.Statement) {
	p.indent++
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *CodePrinter) printStmt(stmt ast.Statement) {
	p.writeIndent()
	switch s := stmt.(type) {
	case *ast.LetDecl:
		fmt.Fprintf(&p.buf, "let %s: %s = ", s.Name, s.Type)
		writeExpr(&p.buf, s.Expr)
		p.buf.WriteString(";\n")
	case *ast.VarDecl:
		fmt.Fprintf(&p.buf, "var %s: %s = ", s.Name, s.Type)
		writeExpr(&p.buf, s.Expr)
		p.buf.WriteString(";\n")
	case *ast.Assignment:
		fmt.Fprintf(&p.buf, "%s = ", s.Name)
		writeExpr(&p.buf, s.Expr)
		p.buf.WriteString(";\n")
	case *ast.ExprStmt:
		p.buf.WriteString("_ = ")
		writeExpr(&p.buf, s.Expr)
		p.buf.WriteString(";\n")
	case *ast.IfStmt:
		p.buf.WriteString("if (")
		writeExpr(&p.buf, s.Cond)
		p.buf.WriteString(") {\n")
		p.printBlock(s.Body)
		p.writeIndent()
		p.buf.WriteString("}\n")
	case *ast.ReturnStmt:
		if s.Expr == nil {
			p.buf.WriteString("return;\n")
		} else {
			p.buf.WriteString("return ")
			writeExpr(&p.buf, s.Expr)
			p.buf.WriteString(";\n")
		}
	default:
		panic(fmt.Sprintf("prettyprinter: unknown statement %T", stmt))
	}
}

func writeExpr(buf *bytes.Buffer, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		if e.Kind == ast.Uint {
			fmt.Fprintf(buf, "%du", e.Value)
		} else {
			fmt.Fprintf(buf, "%d", e.Value)
		}
	case *ast.BoolLiteral:
		fmt.Fprintf(buf, "%t", e.Value)
	case *ast.VarRef:
		buf.WriteString(e.Name)
	case *ast.TypeCons:
		fmt.Fprintf(buf, "%s(", e.Type)
		writeArgs(buf, e.Args)
		buf.WriteString(")")
	case *ast.CallExpr:
		fmt.Fprintf(buf, "%s(", e.Name)
		writeArgs(buf, e.Args)
		buf.WriteString(")")
	default:
		panic(fmt.Sprintf("prettyprinter: unknown expression %T", expr))
	}
}

func writeArgs(buf *bytes.Buffer, args []ast.Expression) {
	for i, arg := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeExpr(buf, arg)
	}
}
