package gen

import (
	"fmt"

	"github.com/shadesmith/shadesmith/internal/ast"
)

// ExprGenerator produces a well-typed expression for a requested target
// type, choosing among literal construction, a reference to an in-scope
// binding of the exact type, component-wise construction, or a call to a
// registered function returning the exact type. Literal construction is
// total for every representable type, so generation never fails.
type ExprGenerator struct {
	rng   RandomSource
	scope *Scope
	fns   *FnRegistry
	types *TypeRegistry
	opts  *Options
	depth int
}

// NewExprGenerator returns a generator reading bindings from scope and
// callees from fns.
func NewExprGenerator(rng RandomSource, scope *Scope, fns *FnRegistry, types *TypeRegistry, opts *Options) *ExprGenerator {
	return &ExprGenerator{rng: rng, scope: scope, fns: fns, types: types, opts: opts}
}

// Gen produces one expression of exactly type t.
func (g *ExprGenerator) Gen(t ast.DataType) ast.Expression {
	if g.depth > g.opts.MaxExprDepth {
		return g.genLiteral(t)
	}
	g.depth++
	defer func() { g.depth-- }()

	choice := g.rng.Intn(8)
	switch {
	case choice < 2:
		return g.genLiteral(t)
	case choice < 4:
		if ref, ok := g.genVarRef(t); ok {
			return ref
		}
		return g.genLiteral(t)
	case choice < 6:
		if cons, ok := g.genCons(t); ok {
			return cons
		}
		return g.genLiteral(t)
	default:
		if call, ok := g.genCall(t); ok {
			return call
		}
		return g.genLiteral(t)
	}
}

// genLiteral is the guaranteed fallback: a scalar literal, or a constructor
// whose components are themselves literals. The recursion over struct
// members is well-founded because members only ever reference structs
// declared earlier.
func (g *ExprGenerator) genLiteral(t ast.DataType) ast.Expression {
	switch ty := t.(type) {
	case ast.Scalar:
		return g.genScalarLiteral(ty.Kind)
	case ast.Vector:
		args := make([]ast.Expression, ty.Size)
		for i := range args {
			args[i] = g.genScalarLiteral(ty.Elem)
		}
		return &ast.TypeCons{Type: ty, Args: args}
	case ast.Named:
		decl, ok := g.types.Lookup(ty.Name)
		if !ok {
			panic(fmt.Sprintf("gen: literal requested for unregistered struct %q", ty.Name))
		}
		args := make([]ast.Expression, len(decl.Members))
		for i, m := range decl.Members {
			args[i] = g.genLiteral(m.Type)
		}
		return &ast.TypeCons{Type: ty, Args: args}
	default:
		panic(fmt.Sprintf("gen: literal requested for unknown type %T", t))
	}
}

func (g *ExprGenerator) genScalarLiteral(kind ast.ScalarKind) ast.Expression {
	switch kind {
	case ast.Bool:
		return &ast.BoolLiteral{Value: g.rng.Intn(2) == 1}
	case ast.Sint:
		return &ast.IntLiteral{Kind: ast.Sint, Value: int64(g.rng.Intn(201) - 100)}
	case ast.Uint:
		return &ast.IntLiteral{Kind: ast.Uint, Value: int64(g.rng.Intn(200))}
	default:
		panic(fmt.Sprintf("gen: literal requested for unknown scalar kind %v", kind))
	}
}

// genVarRef references an in-scope binding of exactly type t, sampling
// uniformly among the candidates.
func (g *ExprGenerator) genVarRef(t ast.DataType) (ast.Expression, bool) {
	var matches []Binding
	for _, b := range g.scope.Bindings() {
		if b.Type.Equals(t) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	b := matches[g.rng.Intn(len(matches))]
	return &ast.VarRef{Name: b.Name, Type: b.Type}, true
}

// genCons builds a vector or struct constructor whose components are
// general sub-expressions. Scalars have no constructor form.
func (g *ExprGenerator) genCons(t ast.DataType) (ast.Expression, bool) {
	switch ty := t.(type) {
	case ast.Vector:
		args := make([]ast.Expression, ty.Size)
		for i := range args {
			args[i] = g.Gen(ast.Scalar{Kind: ty.Elem})
		}
		return &ast.TypeCons{Type: ty, Args: args}, true
	case ast.Named:
		decl, ok := g.types.Lookup(ty.Name)
		if !ok {
			return nil, false
		}
		args := make([]ast.Expression, len(decl.Members))
		for i, m := range decl.Members {
			args[i] = g.Gen(m.Type)
		}
		return &ast.TypeCons{Type: ty, Args: args}, true
	default:
		return nil, false
	}
}

// genCall calls a registered function returning exactly t. When none exists
// and the helper budget allows, a new one is synthesized on the spot and
// registered, so later generation sites can call it too.
func (g *ExprGenerator) genCall(t ast.DataType) (ast.Expression, bool) {
	sig, ok := g.fns.Select(g.rng, t)
	if !ok {
		if g.fns.Len() >= g.opts.MaxFns {
			return nil, false
		}
		sig = g.fns.Gen(g.rng, t)
	}
	args := make([]ast.Expression, len(sig.Params))
	for i, p := range sig.Params {
		args[i] = g.Gen(p)
	}
	return &ast.CallExpr{Name: sig.Name, Args: args, Return: sig.Return}, true
}
