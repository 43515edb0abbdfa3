package ast

import (
	"fmt"
	"strings"
)

// --- Type System Nodes ---

// ScalarKind enumerates the primitive scalar kinds.
type ScalarKind int

const (
	Bool ScalarKind = iota
	Sint
	Uint
)

func (k ScalarKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Sint:
		return "i32"
	case Uint:
		return "u32"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

// DataType is the type of a value in a generated program.
// Compatibility between types is structural: two types are interchangeable
// exactly when Equals reports true, never merely because they share a name
// spelling.
type DataType interface {
	typeNode()

	// Equals reports structural equality with another type.
	Equals(other DataType) bool

	// String renders the type as it appears in source text.
	String() string
}

// Scalar is a primitive type: bool, i32 or u32.
type Scalar struct {
	Kind ScalarKind
}

func (s Scalar) typeNode() {}
func (s Scalar) Equals(other DataType) bool {
	o, ok := other.(Scalar)
	return ok && o.Kind == s.Kind
}
func (s Scalar) String() string { return s.Kind.String() }

// Vector is a fixed-arity composite of a scalar kind, e.g. vec3<u32>.
// Size is always in 2..4.
type Vector struct {
	Size int
	Elem ScalarKind
}

func (v Vector) typeNode() {}
func (v Vector) Equals(other DataType) bool {
	o, ok := other.(Vector)
	return ok && o.Size == v.Size && o.Elem == v.Elem
}
func (v Vector) String() string { return fmt.Sprintf("vec%d<%s>", v.Size, v.Elem) }

// Named references a previously declared struct type by name.
type Named struct {
	Name string
}

func (n Named) typeNode() {}
func (n Named) Equals(other DataType) bool {
	o, ok := other.(Named)
	return ok && o.Name == n.Name
}
func (n Named) String() string { return n.Name }

// FormatTypeList renders a parameter type list for diagnostics.
func FormatTypeList(types []DataType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
