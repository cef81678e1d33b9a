package main

import (
	"fmt"
	"strings"
)

// RoleClass is how an operand role identifier is rendered.
type RoleClass string

const (
	RoleRegister  RoleClass = "reg"
	RoleImmediate RoleClass = "imm"
	RoleDropped   RoleClass = "none"
	RoleLiteral   RoleClass = "literal"
)

// classifyRole decides the class of a role identifier after overrides have
// been applied.
func classifyRole(role string) RoleClass {
	switch role {
	case "rs", "rt", "rd", "re":
		return RoleRegister
	case "imm", "offset", "target", "shamt":
		return RoleImmediate
	case "none":
		// structural markers, like the code field of SYSCALL and BREAK,
		// that never print anything
		return RoleDropped
	default:
		return RoleLiteral
	}
}

// groupTokens derives operand role tokens from an encoding group's name, so
// a group named "rd_rs_rt" has the tokens rd, rs and rt.
func groupTokens(groupName string) []string {
	var ret []string
	for _, tok := range strings.Split(strings.ToLower(groupName), "_") {
		if tok == "" {
			continue
		}
		ret = append(ret, tok)
	}
	return ret
}

// FieldAccess names one field of one physical instruction view.
type FieldAccess struct {
	Layout Layout
	Field  string
}

// Expr returns the field access as it appears in a printer body, where the
// decoded instruction parameter is always named "i".
func (f FieldAccess) Expr() string {
	return fmt.Sprintf("i.%s.%s", f.Layout, f.Field)
}

// OperandFormat is the rendering recipe for one encoding group: a format
// string with one placeholder per field, plus the fields in argument order.
// The leading "{s}" placeholder is for the mnemonic and has no entry in
// Fields.
type OperandFormat struct {
	Format string
	Fields []FieldAccess

	// Literals are the roles that were rendered verbatim because they
	// weren't recognized.
	Literals []string
}

// formatBraces escapes text that is to appear verbatim in a Zig format string.
var formatBraces = strings.NewReplacer("{", "{{", "}", "}}")

// resolveOperandFormat builds the rendering recipe for an instruction.
//
// There's no way to check here that the order of tokens in the group name
// matches the order the fields are declared in the physical view; that's up
// to whoever maintains the table.
func resolveOperandFormat(inst Instruction) OperandFormat {
	group := inst.Group
	var ret OperandFormat
	var displays []string

	for _, tok := range inst.Roles() {
		role := group.Overrides.Resolve(tok)
		switch classifyRole(role) {
		case RoleRegister:
			displays = append(displays, "$r{d}")
			ret.Fields = append(ret.Fields, FieldAccess{Layout: group.Layout, Field: role})
		case RoleImmediate:
			displays = append(displays, "{x}")
			ret.Fields = append(ret.Fields, FieldAccess{Layout: group.Layout, Field: role})
		case RoleDropped:
			// nothing to print
		default:
			displays = append(displays, formatBraces.Replace(role))
			ret.Literals = append(ret.Literals, role)
		}
	}

	if len(displays) == 0 {
		ret.Format = "{s}"
	} else {
		ret.Format = "{s} " + strings.Join(displays, ", ")
	}
	return ret
}
