package gen

import (
	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
)

func vectorsOf(kind ast.ScalarKind) []ast.DataType {
	return []ast.DataType{
		ast.Vector{Size: 2, Elem: kind},
		ast.Vector{Size: 3, Elem: kind},
		ast.Vector{Size: 4, Elem: kind},
	}
}

func scalarAndVectorsOf(kind ast.ScalarKind) []ast.DataType {
	return append([]ast.DataType{ast.Scalar{Kind: kind}}, vectorsOf(kind)...)
}

// builtinSigs builds the built-in signature set for one generation pass.
// Mandatory built-ins are always present for every applicable shape;
// optional ones appear only when named in Options.EnabledFns. Built-ins
// have no bodies; only their signatures are registered.
func builtinSigs(opts *Options) []*FnSig {
	var sigs []*FnSig

	add := func(name string, params []ast.DataType, ret ast.DataType) {
		sigs = append(sigs, &FnSig{Name: name, Params: params, Return: ret})
	}

	boolScalar := ast.Scalar{Kind: ast.Bool}

	// Boolean reductions over boolean vectors.
	for _, ty := range vectorsOf(ast.Bool) {
		add(config.AllFuncName, []ast.DataType{ty}, boolScalar)
		add(config.AnyFuncName, []ast.DataType{ty}, boolScalar)
	}

	// Typed select: scalar-condition form for every shape, plus the
	// vector-mask form.
	for _, kind := range scalarKinds {
		for _, ty := range scalarAndVectorsOf(kind) {
			add(config.SelectFuncName, []ast.DataType{ty, ty, boolScalar}, ty)
		}
		for size := 2; size <= 4; size++ {
			vec := ast.Vector{Size: size, Elem: kind}
			mask := ast.Vector{Size: size, Elem: ast.Bool}
			add(config.SelectFuncName, []ast.DataType{vec, vec, mask}, vec)
		}
	}

	uintScalar := ast.Scalar{Kind: ast.Uint}

	for _, kind := range []ast.ScalarKind{ast.Sint, ast.Uint} {
		for _, ty := range scalarAndVectorsOf(kind) {
			add(config.ClampFuncName, []ast.DataType{ty, ty, ty}, ty)
			add(config.AbsFuncName, []ast.DataType{ty}, ty)

			for _, name := range []string{
				"countLeadingZeros",
				"countOneBits",
				"countTrailingZeros",
				"firstBitHigh",
				"firstBitLow",
				"reverseBits",
			} {
				if opts.fnEnabled(name) {
					add(name, []ast.DataType{ty}, ty)
				}
			}

			if opts.fnEnabled("extractBits") {
				add("extractBits", []ast.DataType{ty, uintScalar, uintScalar}, ty)
			}
			if opts.fnEnabled("insertBits") {
				add("insertBits", []ast.DataType{ty, ty, uintScalar, uintScalar}, ty)
			}

			add(config.MaxFuncName, []ast.DataType{ty, ty}, ty)
			add(config.MinFuncName, []ast.DataType{ty, ty}, ty)
		}

		if opts.fnEnabled("dot") {
			for _, ty := range vectorsOf(kind) {
				add("dot", []ast.DataType{ty, ty}, ast.Scalar{Kind: kind})
			}
		}
	}

	return sigs
}
