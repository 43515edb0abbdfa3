package gen

import (
	"fmt"

	"github.com/shadesmith/shadesmith/internal/ast"
	"github.com/shadesmith/shadesmith/internal/config"
)

// GenStructDecl synthesizes one struct declaration: a member count sampled
// uniformly from the configured inclusive range, member names assigned in
// fixed order from the ten-symbol alphabet, and member types drawn from the
// catalog. A count beyond the alphabet cannot be honored without reusing
// names, so it panics rather than wrap around; Options.Validate rejects
// such configurations before generation starts.
func GenStructDecl(rng RandomSource, types *TypeRegistry, opts *Options, name string) *ast.StructDecl {
	count := intRange(rng, opts.MinStructMembers, opts.MaxStructMembers)
	if count > len(config.StructMemberNames) {
		panic(fmt.Sprintf("gen: struct member count %d exceeds the member-name alphabet size %d",
			count, len(config.StructMemberNames)))
	}

	members := make([]ast.StructMember, count)
	for i := range members {
		members[i] = ast.StructMember{
			Name: config.StructMemberNames[i],
			Type: types.Select(rng),
		}
	}

	return &ast.StructDecl{Name: name, Members: members}
}
