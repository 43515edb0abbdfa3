package config

const SourceFileExt = ".wgsl"

// StructMemberNames is the fixed alphabet struct member names are drawn
// from, in order. Its length is the hard upper bound on struct member
// counts; configurations asking for more are rejected up front.
var StructMemberNames = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

// Built-in function names that are always registered, for every applicable
// scalar/vector shape.
const (
	AllFuncName    = "all"
	AnyFuncName    = "any"
	SelectFuncName = "select"
	ClampFuncName  = "clamp"
	AbsFuncName    = "abs"
	MinFuncName    = "min"
	MaxFuncName    = "max"
)

// OptionalBuiltins are the gated built-ins: each is registered only when
// named in the enabled-functions set.
var OptionalBuiltins = []string{
	"countLeadingZeros",
	"countOneBits",
	"countTrailingZeros",
	"firstBitHigh",
	"firstBitLow",
	"reverseBits",
	"extractBits",
	"insertBits",
	"dot",
}

// Fresh-name prefixes used by the generator.
const (
	FuncNamePrefix   = "func_"
	VarNamePrefix    = "var_"
	ArgNamePrefix    = "arg_"
	StructNamePrefix = "Struct_"
)

// EntryPointName is the name of the generated entry function.
const EntryPointName = "main"
