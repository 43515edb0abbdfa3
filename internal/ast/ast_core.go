package ast

// Node is the base interface for all AST nodes.
type Node interface {
	node()
}

// Statement is a Node that represents a statement inside a function body.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of every generated module: the ordered list of
// struct declarations followed by the ordered list of function declarations.
// Declaration order matters: a struct or function may only be referenced by
// declarations that come after it.
type Program struct {
	Structs   []*StructDecl
	Functions []*FnDecl
}

// StructMember is one named, typed field of a struct declaration.
type StructMember struct {
	Name string
	Type DataType
}

// StructDecl declares a named aggregate type.
// struct Struct_1 { a: i32, b: vec2<u32> }
type StructDecl struct {
	Name    string
	Members []StructMember
}

func (sd *StructDecl) node() {}

// FnParam is one formal parameter of a function declaration.
type FnParam struct {
	Name string
	Type DataType
}

// FnDecl declares a function. Return is nil for functions that do not
// return a value.
type FnDecl struct {
	Name   string
	Params []FnParam
	Return DataType
	Body   []Statement
}

func (fd *FnDecl) node() {}

// LetDecl binds an immutable value.
// let var_0: i32 = expr;
type LetDecl struct {
	Name string
	Type DataType
	Expr Expression
}

func (ld *LetDecl) node()          {}
func (ld *LetDecl) statementNode() {}

// VarDecl binds a mutable value.
// var var_1: vec2<bool> = expr;
type VarDecl struct {
	Name string
	Type DataType
	Expr Expression
}

func (vd *VarDecl) node()          {}
func (vd *VarDecl) statementNode() {}

// Assignment stores a new value into an existing mutable binding.
type Assignment struct {
	Name string
	Type DataType
	Expr Expression
}

func (as *Assignment) node()          {}
func (as *Assignment) statementNode() {}

// ExprStmt evaluates an expression for its side effects (of which generated
// programs have none; it exists to exercise backends on discarded values).
type ExprStmt struct {
	Expr Expression
}

func (es *ExprStmt) node()          {}
func (es *ExprStmt) statementNode() {}

// IfStmt is a conditional. There is no else branch; the body shares the
// enclosing function's flat binding scope.
type IfStmt struct {
	Cond Expression
	Body []Statement
}

func (is *IfStmt) node()          {}
func (is *IfStmt) statementNode() {}

// ReturnStmt returns from the enclosing function. Expr is nil for functions
// without a return type.
type ReturnStmt struct {
	Expr Expression
}

func (rs *ReturnStmt) node()          {}
func (rs *ReturnStmt) statementNode() {}
