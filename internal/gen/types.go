package gen

import (
	"github.com/shadesmith/shadesmith/internal/ast"
)

var scalarKinds = []ast.ScalarKind{ast.Bool, ast.Sint, ast.Uint}

// TypeRegistry is the catalog of types legally usable as variable,
// parameter, return and struct member types: the fixed scalar and vector
// shapes plus every struct registered so far. Because a struct only becomes
// selectable after Register, a sampled type can never reference a struct
// that has not been declared yet.
type TypeRegistry struct {
	structs []*ast.StructDecl
	byName  map[string]*ast.StructDecl
}

// NewTypeRegistry returns a catalog holding only the primitive shapes.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]*ast.StructDecl)}
}

// Register makes a struct declaration selectable and constructible.
func (r *TypeRegistry) Register(decl *ast.StructDecl) {
	r.structs = append(r.structs, decl)
	r.byName[decl.Name] = decl
}

// Structs returns the registered struct declarations in registration order.
func (r *TypeRegistry) Structs() []*ast.StructDecl {
	return r.structs
}

// Lookup resolves a struct declaration by name. Constructor generation uses
// it to recover member types from a Named reference.
func (r *TypeRegistry) Lookup(name string) (*ast.StructDecl, bool) {
	decl, ok := r.byName[name]
	return decl, ok
}

// Select samples one constructible type. Sampling is total: it always
// yields a type, falling back to the primitive shapes when no structs have
// been registered. Structs take a quarter of the weight once present.
func (r *TypeRegistry) Select(rng RandomSource) ast.DataType {
	if len(r.structs) > 0 && rng.Intn(4) == 0 {
		return ast.Named{Name: r.structs[rng.Intn(len(r.structs))].Name}
	}
	return r.selectPrimitive(rng)
}

// selectPrimitive samples a scalar or vector shape, half and half.
func (r *TypeRegistry) selectPrimitive(rng RandomSource) ast.DataType {
	kind := scalarKinds[rng.Intn(len(scalarKinds))]
	if rng.Intn(2) == 0 {
		return ast.Scalar{Kind: kind}
	}
	return ast.Vector{Size: intRange(rng, 2, 4), Elem: kind}
}
