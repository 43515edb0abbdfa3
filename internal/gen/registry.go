package gen

import (
	"fmt"

	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
)

// FnSig is a callable signature: name, ordered parameter types and return
// type (nil when the function returns nothing). Signatures are immutable
// once created and shared read-only between the registry and every call
// site that references them.
type FnSig struct {
	Name   string
	Params []ast.DataType
	Return ast.DataType
}

// fnEntry pairs a signature with its body. Built-ins never materialize a
// body, so Decl is nil for them; generated functions always carry one.
type fnEntry struct {
	Sig  *FnSig
	Decl *ast.FnDecl
}

// FnRegistry is the ordered, append-only catalog of callable functions:
// built-in signatures first, functions synthesized during generation after.
// One registry lives for exactly one program: seeded once, grown by every
// successful function synthesis, and drained at the end into the program's
// function list.
type FnRegistry struct {
	entries []fnEntry
	count   int

	types *TypeRegistry
	opts  *Options
}

// NewFnRegistry seeds a registry with the built-in set allowed by opts.
func NewFnRegistry(opts *Options, types *TypeRegistry) *FnRegistry {
	reg := &FnRegistry{types: types, opts: opts}
	for _, sig := range builtinSigs(opts) {
		reg.entries = append(reg.entries, fnEntry{Sig: sig})
	}
	return reg
}

// Len is the number of functions synthesized so far, excluding built-ins.
func (r *FnRegistry) Len() int {
	return r.count
}

// Signatures returns every registered signature in registration order.
func (r *FnRegistry) Signatures() []*FnSig {
	out := make([]*FnSig, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Sig
	}
	return out
}

// HasReturnType reports whether some registered signature returns exactly t.
func (r *FnRegistry) HasReturnType(t ast.DataType) bool {
	for _, e := range r.entries {
		if e.Sig.Return != nil && e.Sig.Return.Equals(t) {
			return true
		}
	}
	return false
}

// Select samples uniformly among the signatures returning exactly t. The
// second result is false when no signature matches; the caller falls back
// (typically to a literal).
func (r *FnRegistry) Select(rng RandomSource, t ast.DataType) (*FnSig, bool) {
	var matches []*FnSig
	for _, e := range r.entries {
		if e.Sig.Return != nil && e.Sig.Return.Equals(t) {
			matches = append(matches, e.Sig)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	return matches[rng.Intn(len(matches))], true
}

// Insert computes the signature of a finished declaration, appends it with
// its body, and returns the shared signature handle.
func (r *FnRegistry) Insert(decl *ast.FnDecl) *FnSig {
	params := make([]ast.DataType, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = p.Type
	}
	sig := &FnSig{Name: decl.Name, Params: params, Return: decl.Return}
	r.entries = append(r.entries, fnEntry{Sig: sig, Decl: decl})
	return sig
}

// Gen synthesizes a brand-new function returning returnType, registers it,
// and returns its signature. The body is generated against a fresh empty
// scope; if the block does not already end in a return, one more expression
// of the return type is generated against the final scope state and
// appended as the terminal return.
func (r *FnRegistry) Gen(rng RandomSource, returnType ast.DataType) *FnSig {
	name := r.nextFnName()

	paramCount := rng.Intn(r.opts.MaxFnParams + 1)
	params := make([]ast.FnParam, paramCount)
	for i := range params {
		params[i] = ast.FnParam{
			Name: fmt.Sprintf("%s%d", config.ArgNamePrefix, i),
			Type: r.genParamType(rng),
		}
	}

	stmtCount := intRange(rng, r.opts.MinStmts, r.opts.MaxStmts)
	sg := NewScopedStmtGenerator(rng, EmptyScope(), returnType, r, r.types, r.opts)
	stmts := sg.GenBlock(stmtCount)
	scope := sg.IntoScope()

	if !endsInReturn(stmts) {
		expr := NewExprGenerator(rng, scope, r, r.types, r.opts).Gen(returnType)
		stmts = append(stmts, &ast.ReturnStmt{Expr: expr})
	}

	decl := &ast.FnDecl{
		Name:   name,
		Params: params,
		Return: returnType,
		Body:   stmts,
	}
	return r.Insert(decl)
}

// IntoFns returns the declarations of every generated function in
// registration order. Built-ins contribute nothing, they have no bodies.
func (r *FnRegistry) IntoFns() []*ast.FnDecl {
	var fns []*ast.FnDecl
	for _, e := range r.entries {
		if e.Decl != nil {
			fns = append(fns, e.Decl)
		}
	}
	return fns
}

// genParamType samples a parameter type from the restricted distribution:
// scalar or vector shapes only. Aggregates are excluded to bound the
// recursion a parameter list can trigger.
func (r *FnRegistry) genParamType(rng RandomSource) ast.DataType {
	kind := scalarKinds[rng.Intn(len(scalarKinds))]
	if rng.Intn(2) == 0 {
		return ast.Scalar{Kind: kind}
	}
	return ast.Vector{Size: intRange(rng, 2, 4), Elem: kind}
}

func (r *FnRegistry) nextFnName() string {
	r.count++
	return fmt.Sprintf("%s%d", config.FuncNamePrefix, r.count)
}

func endsInReturn(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}
