package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testInstruction(group string, layout Layout, overrides OperandRoleOverride) Instruction {
	if overrides == nil {
		overrides = OperandRoleOverride{}
	}
	return Instruction{
		Mnemonic: "TEST",
		Group: &EncodingGroup{
			Name:      group,
			Layout:    layout,
			Tokens:    groupTokens(group),
			Overrides: overrides,
		},
	}
}

func TestGroupTokens(t *testing.T) {
	assert.Equal(t, []string{"rd", "rs", "rt"}, groupTokens("rd_rs_rt"))
	assert.Equal(t, []string{"rt", "imm", "rs"}, groupTokens("RT_IMM__rs"))
	assert.Equal(t, []string{"implied"}, groupTokens("implied"))
}

func TestClassifyRole(t *testing.T) {
	tests := map[string]RoleClass{
		"rs":     RoleRegister,
		"rt":     RoleRegister,
		"rd":     RoleRegister,
		"re":     RoleRegister,
		"imm":    RoleImmediate,
		"offset": RoleImmediate,
		"target": RoleImmediate,
		"shamt":  RoleImmediate,
		"none":   RoleDropped,
		"cop":    RoleLiteral,
		"RS":     RoleLiteral,
	}
	for role, want := range tests {
		assert.Equal(t, want, classifyRole(role), role)
	}
}

func TestResolveOperandFormatRegisters(t *testing.T) {
	got := resolveOperandFormat(testInstruction("rd_rs_rt", DefaultLayout, nil))
	assert.Equal(t, "{s} $r{d}, $r{d}, $r{d}", got.Format)
	assert.Equal(t, []FieldAccess{
		{Layout: LayoutR, Field: "rd"},
		{Layout: LayoutR, Field: "rs"},
		{Layout: LayoutR, Field: "rt"},
	}, got.Fields)
	assert.Empty(t, got.Literals)
}

func TestResolveOperandFormatImmediate(t *testing.T) {
	got := resolveOperandFormat(testInstruction("rt_rs_imm", LayoutI, nil))
	assert.Equal(t, "{s} $r{d}, $r{d}, {x}", got.Format)
	assert.Equal(t, []string{"i.I.rt", "i.I.rs", "i.I.imm"}, exprs(got.Fields))
}

func TestResolveOperandFormatOverrides(t *testing.T) {
	got := resolveOperandFormat(testInstruction("rs_off", LayoutI, OperandRoleOverride{"off": "offset"}))
	assert.Equal(t, "{s} $r{d}, {x}", got.Format)
	assert.Equal(t, []string{"i.I.rs", "i.I.offset"}, exprs(got.Fields))

	got = resolveOperandFormat(testInstruction("base", LayoutR, OperandRoleOverride{"base": "rs"}))
	assert.Equal(t, "{s} $r{d}", got.Format)
	assert.Equal(t, []string{"i.R.rs"}, exprs(got.Fields))
}

func TestResolveOperandFormatJump(t *testing.T) {
	got := resolveOperandFormat(testInstruction("target", LayoutJ, nil))
	assert.Equal(t, "{s} {x}", got.Format)
	assert.Equal(t, []string{"i.J.target"}, exprs(got.Fields))
}

func TestResolveOperandFormatDropped(t *testing.T) {
	got := resolveOperandFormat(testInstruction("code", LayoutR, OperandRoleOverride{"code": "none"}))
	assert.Equal(t, "{s}", got.Format)
	assert.Empty(t, got.Fields)

	got = resolveOperandFormat(testInstruction("rs_none", LayoutR, nil))
	assert.Equal(t, "{s} $r{d}", got.Format)
	assert.Equal(t, []string{"i.R.rs"}, exprs(got.Fields))
}

func TestResolveOperandFormatLiteral(t *testing.T) {
	got := resolveOperandFormat(testInstruction("rt_cop", LayoutR, nil))
	assert.Equal(t, "{s} $r{d}, cop", got.Format)
	assert.Equal(t, []string{"i.R.rt"}, exprs(got.Fields))
	assert.Equal(t, []string{"cop"}, got.Literals)

	got = resolveOperandFormat(testInstruction("sel", LayoutR, OperandRoleOverride{"sel": "{sel}"}))
	assert.Equal(t, "{s} {{sel}}", got.Format, "braces in literals are escaped")
	assert.Empty(t, got.Fields)
}

func exprs(fields []FieldAccess) []string {
	ret := make([]string, len(fields))
	for i, f := range fields {
		ret[i] = f.Expr()
	}
	return ret
}
