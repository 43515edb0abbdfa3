package ast

// Expression is a Node that represents an expression. Every expression
// knows its own type; the generator guarantees well-typedness at
// construction time, so there is no separate checking pass.
type Expression interface {
	Node
	expressionNode()

	// DataType is the static type of the expression.
	DataType() DataType
}

// IntLiteral is a signed or unsigned integer literal. Kind is Sint or Uint.
type IntLiteral struct {
	Kind  ScalarKind
	Value int64
}

func (il *IntLiteral) node()              {}
func (il *IntLiteral) expressionNode()    {}
func (il *IntLiteral) DataType() DataType { return Scalar{Kind: il.Kind} }

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
}

func (bl *BoolLiteral) node()              {}
func (bl *BoolLiteral) expressionNode()    {}
func (bl *BoolLiteral) DataType() DataType { return Scalar{Kind: Bool} }

// VarRef references a binding that is already in scope.
type VarRef struct {
	Name string
	Type DataType
}

func (vr *VarRef) node()              {}
func (vr *VarRef) expressionNode()    {}
func (vr *VarRef) DataType() DataType { return vr.Type }

// TypeCons constructs a vector or struct value from component expressions.
// vec2<i32>(a, b) or Struct_1(x, y, z)
type TypeCons struct {
	Type DataType
	Args []Expression
}

func (tc *TypeCons) node()              {}
func (tc *TypeCons) expressionNode()    {}
func (tc *TypeCons) DataType() DataType { return tc.Type }

// CallExpr calls a built-in or generated function. Return is the callee's
// return type (never nil; calls to value-less functions only appear as
// statements, which generated programs currently never produce).
type CallExpr struct {
	Name   string
	Args   []Expression
	Return DataType
}

func (ce *CallExpr) node()              {}
func (ce *CallExpr) expressionNode()    {}
func (ce *CallExpr) DataType() DataType { return ce.Return }
