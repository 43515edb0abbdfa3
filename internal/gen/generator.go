package gen

import (
	"fmt"

	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
)

// Generator drives one full generation pass: struct declarations first,
// then the entry function, with helper functions synthesized on demand
// while expressions are generated. The random source, type catalog and
// function registry are owned exclusively by the pass; nothing is shared
// or global, so a (seed, options) pair is replayable.
type Generator struct {
	opts  Options
	rng   RandomSource
	types *TypeRegistry
	fns   *FnRegistry
}

// New returns a seeded generator.
func New(seed int64, opts Options) *Generator {
	return newGenerator(NewRandSource(seed), opts)
}

// NewFromData returns a generator whose decisions are driven by a byte
// slice, for use under go test -fuzz.
func NewFromData(data []byte, opts Options) *Generator {
	return newGenerator(NewByteSource(data), opts)
}

func newGenerator(rng RandomSource, opts Options) *Generator {
	types := NewTypeRegistry()
	return &Generator{
		opts:  opts,
		rng:   rng,
		types: types,
		fns:   NewFnRegistry(&opts, types),
	}
}

// GenerateProgram produces one complete program: struct declarations in
// registration order, then every synthesized helper, then the entry
// function. Each helper is registered before any call site referencing it
// is finished, so declaration order is reference-valid by construction.
func (g *Generator) GenerateProgram() *ast.Program {
	for i := 0; i < g.opts.StructCount; i++ {
		name := fmt.Sprintf("%s%d", config.StructNamePrefix, i+1)
		g.types.Register(GenStructDecl(g.rng, g.types, &g.opts, name))
	}

	entry := g.genEntryPoint()

	return &ast.Program{
		Structs:   g.types.Structs(),
		Functions: append(g.fns.IntoFns(), entry),
	}
}

// genEntryPoint generates the main function. It returns an i32 so every
// backend has a single value to disagree about. The entry point is not
// registered: helpers must never call back into it.
func (g *Generator) genEntryPoint() *ast.FnDecl {
	ret := ast.Scalar{Kind: ast.Sint}

	stmtCount := intRange(g.rng, g.opts.MinStmts, g.opts.MaxStmts)
	sg := NewScopedStmtGenerator(g.rng, EmptyScope(), ret, g.fns, g.types, &g.opts)
	stmts := sg.GenBlock(stmtCount)
	scope := sg.IntoScope()

	if !endsInReturn(stmts) {
		expr := NewExprGenerator(g.rng, scope, g.fns, g.types, &g.opts).Gen(ret)
		stmts = append(stmts, &ast.ReturnStmt{Expr: expr})
	}

	return &ast.FnDecl{
		Name:   config.EntryPointName,
		Return: ret,
		Body:   stmts,
	}
}
