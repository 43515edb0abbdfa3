package gen

import (
	"fmt"
	"testing"

	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
	"github.com/shadesmith/shadesmith/internal/prettyprinter"
)

func TestGenerator_Determinism(t *testing.T) {
	opts := DefaultOptions()
	opts.EnabledFns = []string{"dot", "countOneBits"}

	p1 := New(12345, opts).GenerateProgram()
	p2 := New(12345, opts).GenerateProgram()

	s1 := prettyprinter.NewCodePrinter().Print(p1)
	s2 := prettyprinter.NewCodePrinter().Print(p2)
	if s1 != s2 {
		t.Error("same seed and options produced different programs")
	}

	p3 := New(54321, opts).GenerateProgram()
	if s3 := prettyprinter.NewCodePrinter().Print(p3); s3 == s1 {
		t.Error("different seeds produced identical programs")
	}
}

func TestGenerator_FromDataDeterminism(t *testing.T) {
	data := []byte{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3}
	opts := DefaultOptions()

	s1 := prettyprinter.NewCodePrinter().Print(NewFromData(data, opts).GenerateProgram())
	s2 := prettyprinter.NewCodePrinter().Print(NewFromData(data, opts).GenerateProgram())
	if s1 != s2 {
		t.Error("same data produced different programs")
	}
	if len(s1) == 0 {
		t.Error("generated program is empty")
	}
}

func TestGenerator_FromEmptyData(t *testing.T) {
	// An exhausted byte source degenerates to zeroes; generation must still
	// terminate and produce a structurally valid program.
	program := NewFromData(nil, DefaultOptions()).GenerateProgram()
	checkProgram(t, program)
}

func TestGenerator_ProgramShape(t *testing.T) {
	opts := DefaultOptions()
	opts.StructCount = 2

	program := New(7, opts).GenerateProgram()

	if len(program.Structs) != 2 {
		t.Fatalf("expected 2 structs, got %d", len(program.Structs))
	}
	for i, decl := range program.Structs {
		want := fmt.Sprintf("%s%d", config.StructNamePrefix, i+1)
		if decl.Name != want {
			t.Errorf("struct %d named %q, want %q", i, decl.Name, want)
		}
	}

	if len(program.Functions) == 0 {
		t.Fatal("program has no functions")
	}
	entry := program.Functions[len(program.Functions)-1]
	if entry.Name != config.EntryPointName {
		t.Errorf("last function is %q, want %q", entry.Name, config.EntryPointName)
	}
	if !entry.Return.Equals(ast.Scalar{Kind: ast.Sint}) {
		t.Errorf("entry point returns %s", entry.Return)
	}
}

func TestGenerator_EndToEndTwoMemberStructs(t *testing.T) {
	opts := DefaultOptions()
	opts.StructCount = 1
	opts.MinStructMembers = 2
	opts.MaxStructMembers = 2

	program := New(2024, opts).GenerateProgram()

	decl := program.Structs[0]
	if len(decl.Members) != 2 {
		t.Fatalf("expected exactly 2 members, got %d", len(decl.Members))
	}
	if decl.Members[0].Name != "a" || decl.Members[1].Name != "b" {
		t.Errorf("members named %q, %q; want a, b", decl.Members[0].Name, decl.Members[1].Name)
	}
	// With no structs registered yet, member types can only be scalar or
	// vector shapes.
	for _, m := range decl.Members {
		switch ty := m.Type.(type) {
		case ast.Scalar:
		case ast.Vector:
			if ty.Size < 2 || ty.Size > 4 {
				t.Errorf("member %s has vector arity %d", m.Name, ty.Size)
			}
		default:
			t.Errorf("member %s has unexpected type %s", m.Name, m.Type)
		}
	}
}

func TestGenerator_Invariants(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		opts := DefaultOptions()
		opts.EnabledFns = []string{"dot", "extractBits"}
		program := New(seed, opts).GenerateProgram()
		checkProgram(t, program)
		if t.Failed() {
			t.Fatalf("invariant violated at seed %d", seed)
		}
	}
}

func TestGenerator_DisabledBuiltinNeverCalled(t *testing.T) {
	disabled := map[string]bool{}
	for _, name := range config.OptionalBuiltins {
		disabled[name] = true
	}

	for seed := int64(0); seed < 25; seed++ {
		program := New(seed, DefaultOptions()).GenerateProgram()
		for _, fn := range program.Functions {
			walkExprs(fn.Body, func(e ast.Expression) {
				if call, ok := e.(*ast.CallExpr); ok && disabled[call.Name] {
					t.Fatalf("seed %d: call to disabled builtin %s", seed, call.Name)
				}
			})
		}
	}
}

// checkProgram verifies the structural invariants every generated program
// must satisfy: terminal returns of the declared type, and no reference to
// a binding that was not appended earlier in the same scope.
func checkProgram(t *testing.T, program *ast.Program) {
	t.Helper()

	registered := make(map[string]bool)
	for _, decl := range program.Structs {
		for _, m := range decl.Members {
			if named, ok := m.Type.(ast.Named); ok && !registered[named.Name] {
				t.Errorf("struct %s member %s references later struct %s", decl.Name, m.Name, named.Name)
			}
		}
		registered[decl.Name] = true
	}

	declared := make(map[string]bool)
	for _, fn := range program.Functions {
		checkTerminalReturn(t, fn)
		checkNoForwardRefs(t, fn)
		if declared[fn.Name] {
			t.Errorf("function name %s declared twice", fn.Name)
		}
		declared[fn.Name] = true
	}
}

func checkTerminalReturn(t *testing.T, fn *ast.FnDecl) {
	t.Helper()
	if fn.Return == nil {
		return
	}
	if len(fn.Body) == 0 {
		t.Errorf("%s has an empty body", fn.Name)
		return
	}
	ret, ok := fn.Body[len(fn.Body)-1].(*ast.ReturnStmt)
	if !ok {
		t.Errorf("%s does not end in a return", fn.Name)
		return
	}
	if ret.Expr == nil || !ret.Expr.DataType().Equals(fn.Return) {
		t.Errorf("%s terminal return does not produce %s", fn.Name, fn.Return)
	}
}

// checkNoForwardRefs replays the flat-scope discipline: a binding becomes
// visible after its declaration statement and stays visible for the rest of
// the body, including across if-block boundaries.
func checkNoForwardRefs(t *testing.T, fn *ast.FnDecl) {
	t.Helper()
	visible := make(map[string]bool)
	checkStmts(t, fn.Name, fn.Body, visible)
}

func checkStmts(t *testing.T, fnName string, stmts []ast.Statement, visible map[string]bool) {
	t.Helper()
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.LetDecl:
			checkExprRefs(t, fnName, s.Expr, visible)
			visible[s.Name] = true
		case *ast.VarDecl:
			checkExprRefs(t, fnName, s.Expr, visible)
			visible[s.Name] = true
		case *ast.Assignment:
			if !visible[s.Name] {
				t.Errorf("%s assigns to undeclared %s", fnName, s.Name)
			}
			checkExprRefs(t, fnName, s.Expr, visible)
		case *ast.ExprStmt:
			checkExprRefs(t, fnName, s.Expr, visible)
		case *ast.IfStmt:
			checkExprRefs(t, fnName, s.Cond, visible)
			checkStmts(t, fnName, s.Body, visible)
		case *ast.ReturnStmt:
			if s.Expr != nil {
				checkExprRefs(t, fnName, s.Expr, visible)
			}
		}
	}
}

func checkExprRefs(t *testing.T, fnName string, expr ast.Expression, visible map[string]bool) {
	t.Helper()
	walkExpr(expr, func(e ast.Expression) {
		if ref, ok := e.(*ast.VarRef); ok && !visible[ref.Name] {
			t.Errorf("%s references %s before its declaration", fnName, ref.Name)
		}
	})
}

func walkExprs(stmts []ast.Statement, visit func(ast.Expression)) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.LetDecl:
			walkExpr(s.Expr, visit)
		case *ast.VarDecl:
			walkExpr(s.Expr, visit)
		case *ast.Assignment:
			walkExpr(s.Expr, visit)
		case *ast.ExprStmt:
			walkExpr(s.Expr, visit)
		case *ast.IfStmt:
			walkExpr(s.Cond, visit)
			walkExprs(s.Body, visit)
		case *ast.ReturnStmt:
			if s.Expr != nil {
				walkExpr(s.Expr, visit)
			}
		}
	}
}

func walkExpr(expr ast.Expression, visit func(ast.Expression)) {
	visit(expr)
	switch e := expr.(type) {
	case *ast.TypeCons:
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
	case *ast.CallExpr:
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
	}
}
