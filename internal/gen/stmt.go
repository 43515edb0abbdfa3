package gen

import (
	"github.com/shadesmith/shadesmith/internal/ast"
)

// ScopedStmtGenerator produces an ordered block of statements, extending
// its scope as it goes: a declaration's binding is appended before the next
// statement is generated, so a statement can only ever reference bindings
// that already exist. The scope is flat: if-bodies extend the same scope,
// and their bindings remain selectable after the block ends.
type ScopedStmtGenerator struct {
	rng   RandomSource
	scope *Scope
	ret   ast.DataType
	fns   *FnRegistry
	types *TypeRegistry
	opts  *Options
	depth int
}

// NewScopedStmtGenerator returns a generator writing into scope. ret is the
// type a return statement must produce; nil means bare returns.
func NewScopedStmtGenerator(rng RandomSource, scope *Scope, ret ast.DataType, fns *FnRegistry, types *TypeRegistry, opts *Options) *ScopedStmtGenerator {
	return &ScopedStmtGenerator{rng: rng, scope: scope, ret: ret, fns: fns, types: types, opts: opts}
}

// GenBlock produces exactly n statements.
func (g *ScopedStmtGenerator) GenBlock(n int) []ast.Statement {
	stmts := make([]ast.Statement, 0, n)
	for i := 0; i < n; i++ {
		stmts = append(stmts, g.genStmt())
	}
	return stmts
}

// IntoScope hands the scope back after block generation, letting the caller
// synthesize a trailing return expression against the fully accumulated
// bindings.
func (g *ScopedStmtGenerator) IntoScope() *Scope {
	return g.scope
}

func (g *ScopedStmtGenerator) genStmt() ast.Statement {
	choice := g.rng.Intn(10)
	switch {
	case choice < 3:
		return g.genLetDecl()
	case choice < 6:
		return g.genVarDecl()
	case choice < 7:
		if g.scope.HasVars() {
			return g.genAssignment()
		}
		return g.genVarDecl()
	case choice < 8:
		return g.genExprStmt()
	case choice < 9:
		if g.depth < 3 {
			return g.genIf()
		}
		return g.genLetDecl()
	default:
		return g.genReturn()
	}
}

func (g *ScopedStmtGenerator) genLetDecl() ast.Statement {
	t := g.types.Select(g.rng)
	expr := g.exprGen().Gen(t)
	name := g.scope.NextName()
	g.scope.InsertLet(name, t)
	return &ast.LetDecl{Name: name, Type: t, Expr: expr}
}

func (g *ScopedStmtGenerator) genVarDecl() ast.Statement {
	t := g.types.Select(g.rng)
	expr := g.exprGen().Gen(t)
	name := g.scope.NextName()
	g.scope.InsertVar(name, t)
	return &ast.VarDecl{Name: name, Type: t, Expr: expr}
}

func (g *ScopedStmtGenerator) genAssignment() ast.Statement {
	b := g.scope.ChooseVar(g.rng)
	return &ast.Assignment{Name: b.Name, Type: b.Type, Expr: g.exprGen().Gen(b.Type)}
}

func (g *ScopedStmtGenerator) genExprStmt() ast.Statement {
	t := g.types.Select(g.rng)
	return &ast.ExprStmt{Expr: g.exprGen().Gen(t)}
}

// genIf generates a conditional whose body shares this generator's flat
// scope.
func (g *ScopedStmtGenerator) genIf() ast.Statement {
	cond := g.exprGen().Gen(ast.Scalar{Kind: ast.Bool})
	g.depth++
	body := g.GenBlock(intRange(g.rng, 1, 3))
	g.depth--
	return &ast.IfStmt{Cond: cond, Body: body}
}

// genReturn produces a mid-block return. It only appears here by explicit
// random choice; the forced terminal return is the caller's job.
func (g *ScopedStmtGenerator) genReturn() ast.Statement {
	if g.ret == nil {
		return &ast.ReturnStmt{}
	}
	return &ast.ReturnStmt{Expr: g.exprGen().Gen(g.ret)}
}

func (g *ScopedStmtGenerator) exprGen() *ExprGenerator {
	return NewExprGenerator(g.rng, g.scope, g.fns, g.types, g.opts)
}
