package gen

import (
	"strings"
	"testing"
)

func TestParseOptions(t *testing.T) {
	data := []byte(`
enabled_fns:
  - dot
  - reverseBits
struct_count: 5
min_struct_members: 2
max_struct_members: 6
min_stmts: 3
max_stmts: 7
`)
	opts, err := ParseOptions(data, "test.yaml")
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}

	if opts.StructCount != 5 {
		t.Errorf("StructCount = %d, want 5", opts.StructCount)
	}
	if opts.MinStructMembers != 2 || opts.MaxStructMembers != 6 {
		t.Errorf("member bounds = [%d, %d], want [2, 6]", opts.MinStructMembers, opts.MaxStructMembers)
	}
	if !opts.fnEnabled("dot") || !opts.fnEnabled("reverseBits") {
		t.Error("enabled_fns not honored")
	}
	if opts.fnEnabled("insertBits") {
		t.Error("insertBits reported enabled")
	}
	// Unset fields fall back to defaults.
	if opts.MaxFnParams != 4 {
		t.Errorf("MaxFnParams = %d, want default 4", opts.MaxFnParams)
	}
}

func TestParseOptions_RejectsUnknownBuiltin(t *testing.T) {
	_, err := ParseOptions([]byte("enabled_fns: [frobnicate]"), "test.yaml")
	if err == nil {
		t.Fatal("unknown builtin accepted")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error %q does not name the offending builtin", err)
	}
}

func TestParseOptions_RejectsInvertedBounds(t *testing.T) {
	_, err := ParseOptions([]byte("min_struct_members: 5\nmax_struct_members: 2"), "test.yaml")
	if err == nil {
		t.Fatal("inverted member bounds accepted")
	}
}

func TestParseOptions_RejectsBadYAML(t *testing.T) {
	_, err := ParseOptions([]byte("enabled_fns: [unclosed"), "test.yaml")
	if err == nil {
		t.Fatal("malformed YAML accepted")
	}
}
