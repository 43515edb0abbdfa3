package gen

import (
	"fmt"

	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
)

// Binding is one named, typed entry in a Scope.
type Binding struct {
	Name string
	Type ast.DataType
}

// Scope tracks the bindings visible at a generation point: an append-only
// ledger of immutable (let) bindings, a second one for mutable (var)
// bindings, and a counter for fresh local names. Once appended, a binding
// never moves or disappears for the lifetime of the scope.
//
// The model is deliberately flat: there is no push/pop on block entry and
// exit, so bindings declared inside an if-body remain visible and
// selectable after the block ends. Statement generation relies on this and
// threads one Scope through a whole function body.
type Scope struct {
	nextName int
	lets     []Binding
	vars     []Binding
}

// ScopeMark is a snapshot of a Scope taken at some point. Because the
// ledgers are append-only, remembering their lengths is enough to fork a
// speculative generation path and roll it back in O(1).
type ScopeMark struct {
	nextName int
	lets     int
	vars     int
}

// EmptyScope returns a scope with zero bindings.
func EmptyScope() *Scope {
	return &Scope{}
}

// Len is the total number of bindings.
func (s *Scope) Len() int {
	return len(s.lets) + len(s.vars)
}

// HasVars reports whether any mutable binding exists. Callers must check it
// before ChooseVar.
func (s *Scope) HasVars() bool {
	return len(s.vars) > 0
}

// Bindings returns every binding, immutable first, then mutable, each in
// insertion order. The returned slice is freshly allocated; the caller may
// keep it as a read-only snapshot while the scope keeps growing.
func (s *Scope) Bindings() []Binding {
	out := make([]Binding, 0, len(s.lets)+len(s.vars))
	out = append(out, s.lets...)
	out = append(out, s.vars...)
	return out
}

// ChooseVar samples a mutable binding uniformly. It panics if the scope has
// no mutable bindings; that is a precondition violation, not a recoverable
// condition.
func (s *Scope) ChooseVar(rng RandomSource) Binding {
	if len(s.vars) == 0 {
		panic("gen: ChooseVar on a scope with no mutable bindings")
	}
	return s.vars[rng.Intn(len(s.vars))]
}

// InsertLet appends an immutable binding.
func (s *Scope) InsertLet(name string, t ast.DataType) {
	s.lets = append(s.lets, Binding{Name: name, Type: t})
}

// InsertVar appends a mutable binding.
func (s *Scope) InsertVar(name string, t ast.DataType) {
	s.vars = append(s.vars, Binding{Name: name, Type: t})
}

// NextName returns a collision-free local identifier and advances the
// counter.
func (s *Scope) NextName() string {
	name := fmt.Sprintf("%s%d", config.VarNamePrefix, s.nextName)
	s.nextName++
	return name
}

// Mark snapshots the scope.
func (s *Scope) Mark() ScopeMark {
	return ScopeMark{nextName: s.nextName, lets: len(s.lets), vars: len(s.vars)}
}

// Rewind discards every binding appended after the mark was taken.
func (s *Scope) Rewind(m ScopeMark) {
	s.nextName = m.nextName
	s.lets = s.lets[:m.lets]
	s.vars = s.vars[:m.vars]
}
