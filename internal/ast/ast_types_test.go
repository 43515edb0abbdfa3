package ast

import "testing"

func TestDataType_StructuralEquality(t *testing.T) {
	cases := []struct {
		a, b  DataType
		equal bool
	}{
		{Scalar{Kind: Bool}, Scalar{Kind: Bool}, true},
		{Scalar{Kind: Sint}, Scalar{Kind: Uint}, false},
		{Scalar{Kind: Sint}, Vector{Size: 2, Elem: Sint}, false},
		{Vector{Size: 3, Elem: Uint}, Vector{Size: 3, Elem: Uint}, true},
		{Vector{Size: 3, Elem: Uint}, Vector{Size: 4, Elem: Uint}, false},
		{Vector{Size: 2, Elem: Bool}, Vector{Size: 2, Elem: Sint}, false},
		{Named{Name: "Struct_1"}, Named{Name: "Struct_1"}, true},
		{Named{Name: "Struct_1"}, Named{Name: "Struct_2"}, false},
		{Named{Name: "Struct_1"}, Scalar{Kind: Sint}, false},
	}
	for _, c := range cases {
		if got := c.a.Equals(c.b); got != c.equal {
			t.Errorf("%s.Equals(%s) = %t, want %t", c.a, c.b, got, c.equal)
		}
		if got := c.b.Equals(c.a); got != c.equal {
			t.Errorf("%s.Equals(%s) = %t, want %t (asymmetric)", c.b, c.a, got, c.equal)
		}
	}
}

func TestDataType_String(t *testing.T) {
	cases := map[string]DataType{
		"bool":      Scalar{Kind: Bool},
		"i32":       Scalar{Kind: Sint},
		"u32":       Scalar{Kind: Uint},
		"vec2<i32>": Vector{Size: 2, Elem: Sint},
		"vec4<bool>": Vector{Size: 4, Elem: Bool},
		"Struct_3":  Named{Name: "Struct_3"},
	}
	for want, ty := range cases {
		if got := ty.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
