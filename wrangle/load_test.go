package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseGridString(t *testing.T, src string) (OpcodeTable, Diagnostics) {
	t.Helper()
	var diags Diagnostics
	tbl, err := parseOpcodeGrid("test", strings.NewReader(src), &diags)
	require.NoError(t, err)
	return tbl, diags
}

func TestParseOpcodeGrid(t *testing.T) {
	tbl, diags := parseGridString(t, `
  00h=SLL   08h=JR      10h=MFHI
  01h=N/A   09h=JALR    11h=MTHI
  02h=SRL   0Ah=N/A     12h=MFLO
`)
	assert.Empty(t, diags)
	assert.Equal(t, OpcodeTable{
		0x00: "SLL",
		0x02: "SRL",
		0x08: "JR",
		0x09: "JALR",
		0x10: "MFHI",
		0x11: "MTHI",
		0x12: "MFLO",
	}, tbl)
}

func TestParseOpcodeGridHexCase(t *testing.T) {
	tests := []struct {
		cell string
		want bits6
	}{
		{"0Ah=SLTI", 0x0a},
		{"0ah=SLTI", 0x0a},
		{"0AH=SLTI", 0x0a},
		{"3F=SLTI", 0x3f},
		{"3fh=SLTI", 0x3f},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			tbl, diags := parseGridString(t, tt.cell)
			assert.Empty(t, diags)
			assert.Equal(t, OpcodeTable{tt.want: "SLTI"}, tbl)
		})
	}
}

func TestParseOpcodeGridIgnoresNonCells(t *testing.T) {
	tbl, diags := parseGridString(t, `
# a comment with 00h=NOPE in it
    primary opcodes    04h=BEQ  |  05h=BNE
`)
	assert.Empty(t, diags)
	assert.Equal(t, OpcodeTable{0x04: "BEQ", 0x05: "BNE"}, tbl)
}

func TestParseOpcodeGridMalformed(t *testing.T) {
	tbl, diags := parseGridString(t, "xyh=BAD 40h=TOOBIG 01h= h=EMPTY 02h=OK 08h=ADDI=X 09h=ADD-IU")
	assert.Equal(t, OpcodeTable{0x02: "OK"}, tbl)
	require.Len(t, diags, 6)
	for _, d := range diags {
		assert.Equal(t, SeverityWarning, d.Severity)
		assert.Equal(t, "test", d.Source)
	}
	assert.Equal(t, []string{
		`line 1: cell "08h=ADDI=X" has an invalid mnemonic`,
		`line 1: cell "09h=ADD-IU" has an invalid mnemonic`,
	}, messages(diags, SeverityWarning)[4:])
}

func TestGenerateSkipsMalformedGridCells(t *testing.T) {
	var diags Diagnostics
	primary, err := parseOpcodeGrid("primary", strings.NewReader("02h=J 08h=ADDI=X 09h=ADD-IU"), &diags)
	require.NoError(t, err)

	isa := &ISA{
		Instructions: []string{"J", "ILLEGAL"},
		Mnemonics:    mnemonicSet(t, "J", "ILLEGAL"),
		Primary:      primary,
		Secondary:    OpcodeTable{},
		Groups:       map[string]*EncodingGroup{"target": groupOf("target", LayoutJ, "J")},
	}
	arts, err := generate(isa, AssembleOptions{}, &diags)
	require.NoError(t, err)
	assert.Contains(t, artifactText(t, arts, opcodesArtifact), "pub const primary = enum(u6) {\n    J = 2,\n};\n")
}

func TestParseOpcodeGridDuplicates(t *testing.T) {
	tbl, diags := parseGridString(t, "04h=BEQ 04h=BEQ")
	assert.Empty(t, diags)
	assert.Equal(t, OpcodeTable{0x04: "BEQ"}, tbl)

	var d Diagnostics
	_, err := parseOpcodeGrid("test", strings.NewReader("04h=BEQ\n04h=BNE"), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test:2")
	assert.Contains(t, err.Error(), "BEQ")
	assert.Contains(t, err.Error(), "BNE")
}

func TestParseInstructionTable(t *testing.T) {
	tbl, err := parseInstructionTable([]byte(`
instructions: [ADD, LW]
instruction_encoding:
  rd_rs_rt: [ADD]
  rt_imm_rs: [LW]
operand_encoding:
  rt_imm_rs: {t: I}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"ADD", "LW"}, tbl.Instructions)
	assert.Equal(t, map[string][]string{
		"rd_rs_rt":  {"ADD"},
		"rt_imm_rs": {"LW"},
	}, tbl.InstructionEncoding)
	assert.Equal(t, map[string]map[string]string{
		"rt_imm_rs": {"t": "I"},
	}, tbl.OperandEncoding)
}

func TestParseInstructionTableErrors(t *testing.T) {
	tests := map[string]string{
		"no instructions": `
instruction_encoding: {rd: [MFHI]}
`,
		"no encodings": `
instructions: [MFHI]
`,
		"unknown section": `
instructions: [MFHI]
instruction_encoding: {rd: [MFHI]}
opcode_encoding: {}
`,
		"duplicate group": `
instructions: [MFHI]
instruction_encoding:
  rd: [MFHI]
  rd: [MFLO]
`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseInstructionTable([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestBuildISA(t *testing.T) {
	isa, diags := loadTestISA(t)

	rd := isa.Groups["rd_rs_rt"]
	require.NotNil(t, rd)
	assert.Equal(t, LayoutR, rd.Layout, "layout defaults to R")
	assert.Equal(t, []string{"rd", "rs", "rt"}, rd.Tokens)
	assert.Equal(t, "print_rd_rs_rt", rd.FuncName)
	assert.Empty(t, rd.Overrides)

	off := isa.Groups["off"]
	require.NotNil(t, off)
	assert.Equal(t, LayoutI, off.Layout)
	assert.Equal(t, OperandRoleOverride{"off": "offset"}, off.Overrides)

	assert.Equal(t, LayoutI, isa.Groups["rt_imm_rs"].Layout, "layout tags are case insensitive")
	assert.Equal(t, LayoutJ, isa.Groups["target"].Layout)

	assert.Equal(t, 0, diags.Count(SeverityWarning))
}

func TestBuildISAInvalidLayout(t *testing.T) {
	tbl, err := parseInstructionTable([]byte(`
instructions: [ADD, ILLEGAL]
instruction_encoding: {rd_rs_rt: [ADD]}
operand_encoding: {rd_rs_rt: {t: X}}
`))
	require.NoError(t, err)

	var diags Diagnostics
	_, err = buildISA(tbl, OpcodeTable{}, OpcodeTable{}, &diags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rd_rs_rt")
}

func TestBuildISAOverrideWarnings(t *testing.T) {
	tbl, err := parseInstructionTable([]byte(`
instructions: [ADD, ILLEGAL]
instruction_encoding: {rd_rs_rt: [ADD], empty: []}
operand_encoding:
  rd_rs_rt: {imm: rt}
  nonexistent: {t: J}
`))
	require.NoError(t, err)

	var diags Diagnostics
	_, err = buildISA(tbl, OpcodeTable{}, OpcodeTable{}, &diags)
	require.NoError(t, err)

	var msgs []string
	for _, d := range diags {
		assert.Equal(t, SeverityWarning, d.Severity)
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{
		"empty has no members",
		`rd_rs_rt: override for "imm", which isn't one of its operands`,
		"nonexistent is not an encoding group",
	}, msgs)
}
