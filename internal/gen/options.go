// Package gen implements the type-directed random program generator.
//
// The generator synthesizes well-typed shading-language programs by
// construction: a type registry tracks the constructible types, a function
// registry tracks callable signatures, and a flat binding scope tracks the
// names visible at each generation point. There is no checking pass after
// the fact: every invariant (no undeclared references, no type mismatches,
// deterministic replay from a seed) is enforced by the bookkeeping done
// while the AST is built.
package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shadesmith/shadesmith/internal/config"
)

// Options configures one generation pass. Zero values are filled in by
// setDefaults; a loaded file is validated before use so the generator core
// can treat every Options it receives as well-formed.
type Options struct {
	// EnabledFns names the optional built-ins to register. Built-ins not
	// listed here never appear in any signature or call expression.
	// Mandatory built-ins (all, any, select, clamp, abs, min, max) are
	// always registered and need not be listed.
	EnabledFns []string `yaml:"enabled_fns,omitempty"`

	// StructCount is the number of struct declarations to generate before
	// the functions.
	StructCount int `yaml:"struct_count,omitempty"`

	// MinStructMembers and MaxStructMembers bound the member count of each
	// generated struct (inclusive). MaxStructMembers must not exceed the
	// member-name alphabet size (ten).
	MinStructMembers int `yaml:"min_struct_members,omitempty"`
	MaxStructMembers int `yaml:"max_struct_members,omitempty"`

	// MaxFnParams bounds the parameter count of synthesized helper
	// functions. Parameter count is sampled uniformly from [0, MaxFnParams].
	MaxFnParams int `yaml:"max_fn_params,omitempty"`

	// MinStmts and MaxStmts bound the statement count of each synthesized
	// function body (inclusive), not counting a forced trailing return.
	MinStmts int `yaml:"min_stmts,omitempty"`
	MaxStmts int `yaml:"max_stmts,omitempty"`

	// MaxFns budgets how many helper functions expression generation may
	// synthesize on demand in one pass.
	MaxFns int `yaml:"max_fns,omitempty"`

	// MaxExprDepth bounds expression nesting; past it only literals are
	// produced.
	MaxExprDepth int `yaml:"max_expr_depth,omitempty"`
}

// DefaultOptions returns the configuration used when no file is supplied.
func DefaultOptions() Options {
	var opts Options
	opts.setDefaults()
	return opts
}

// LoadOptions reads and parses an options YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options %s: %w", path, err)
	}
	return ParseOptions(data, path)
}

// ParseOptions parses options YAML content from bytes. The path argument is
// used only for error messages.
func ParseOptions(data []byte, path string) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	opts.setDefaults()
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

func (o *Options) setDefaults() {
	if o.StructCount == 0 {
		o.StructCount = 3
	}
	if o.MinStructMembers == 0 {
		o.MinStructMembers = 1
	}
	if o.MaxStructMembers == 0 {
		o.MaxStructMembers = 5
	}
	if o.MaxFnParams == 0 {
		o.MaxFnParams = 4
	}
	if o.MinStmts == 0 {
		o.MinStmts = 5
	}
	if o.MaxStmts == 0 {
		o.MaxStmts = 9
	}
	if o.MaxFns == 0 {
		o.MaxFns = 8
	}
	if o.MaxExprDepth == 0 {
		o.MaxExprDepth = 5
	}
}

// Validate rejects configurations the generator cannot honor. The
// member-count cap is the alphabet size: exceeding it would force member
// name reuse, so it is a configuration error rather than something to clamp
// silently.
func (o *Options) Validate() error {
	if o.MinStructMembers < 1 {
		return fmt.Errorf("min_struct_members must be at least 1, got %d", o.MinStructMembers)
	}
	if o.MaxStructMembers < o.MinStructMembers {
		return fmt.Errorf("max_struct_members (%d) is below min_struct_members (%d)",
			o.MaxStructMembers, o.MinStructMembers)
	}
	if cap := len(config.StructMemberNames); o.MaxStructMembers > cap {
		return fmt.Errorf("max_struct_members (%d) exceeds the member-name alphabet size (%d)",
			o.MaxStructMembers, cap)
	}
	if o.MinStmts < 1 {
		return fmt.Errorf("min_stmts must be at least 1, got %d", o.MinStmts)
	}
	if o.MaxStmts < o.MinStmts {
		return fmt.Errorf("max_stmts (%d) is below min_stmts (%d)", o.MaxStmts, o.MinStmts)
	}
	if o.MaxFnParams < 0 {
		return fmt.Errorf("max_fn_params must not be negative, got %d", o.MaxFnParams)
	}
	if o.StructCount < 0 {
		return fmt.Errorf("struct_count must not be negative, got %d", o.StructCount)
	}
	for _, name := range o.EnabledFns {
		if !isOptionalBuiltin(name) {
			return fmt.Errorf("unknown optional built-in %q in enabled_fns", name)
		}
	}
	return nil
}

// fnEnabled reports whether an optional built-in was enabled.
func (o *Options) fnEnabled(name string) bool {
	for _, fn := range o.EnabledFns {
		if fn == name {
			return true
		}
	}
	return false
}

func isOptionalBuiltin(name string) bool {
	for _, fn := range config.OptionalBuiltins {
		if fn == name {
			return true
		}
	}
	return false
}
