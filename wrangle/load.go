package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"
)

// Inputs names the files that describe the instruction set.
type Inputs struct {
	Instructions string
	Primary      string
	Secondary    string
}

func loadISAMeta(in Inputs, diags *Diagnostics) (*ISA, error) {
	primary, err := loadOpcodeGrid(in.Primary, diags)
	if err != nil {
		return nil, fmt.Errorf("failed to load primary opcodes: %w", err)
	}
	secondary, err := loadOpcodeGrid(in.Secondary, diags)
	if err != nil {
		return nil, fmt.Errorf("failed to load secondary opcodes: %w", err)
	}
	tbl, err := loadInstructionTable(in.Instructions)
	if err != nil {
		return nil, fmt.Errorf("failed to load instruction table: %w", err)
	}
	return buildISA(tbl, primary, secondary, diags)
}

func loadOpcodeGrid(filename string, diags *Diagnostics) (OpcodeTable, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return parseOpcodeGrid(filename, r, diags)
}

// parseOpcodeGrid reads a grid of cells like "0Ah=SLTI" or "14h=N/A",
// separated by any amount of whitespace. Anything that isn't a cell is
// skipped, and cells that look like cells but can't be parsed are skipped
// with a warning, since these grids are maintained by hand.
func parseOpcodeGrid(source string, r io.Reader, diags *Diagnostics) (OpcodeTable, error) {
	ret := make(OpcodeTable)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		for _, tok := range strings.Fields(trimComments(sc.Text())) {
			if !strings.Contains(tok, "=") {
				continue
			}
			rawCode, name := partition(tok, "=")
			if name == "N/A" {
				continue
			}
			if name == "" {
				diags.Warnf(source, "line %d: cell %q has no mnemonic", line, tok)
				continue
			}
			if !isIdent(name) {
				diags.Warnf(source, "line %d: cell %q has an invalid mnemonic", line, tok)
				continue
			}

			code, ok := parseHexCode(rawCode)
			if !ok {
				diags.Warnf(source, "line %d: cell %q has an invalid opcode value", line, tok)
				continue
			}

			if existing, exists := ret[code]; exists {
				if existing == name {
					continue
				}
				return nil, fmt.Errorf("%s:%d: opcode %s is assigned to both %s and %s", source, line, code, existing, name)
			}
			ret[code] = name
		}
	}

	return ret, sc.Err()
}

// parseHexCode parses the opcode part of a grid cell, like "0Ah".
func parseHexCode(raw string) (bits6, bool) {
	raw = strings.TrimSuffix(strings.TrimSuffix(raw, "h"), "H")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 16, 8)
	if err != nil || v > bits6Max {
		return 0, false
	}
	return bits6(v), true
}

// instructionTable is the YAML instruction description as written. The
// operand_encoding entries mix the optional "t" structural type with any
// number of operand role overrides, so they're decoded as flat string maps
// and separated in buildISA.
type instructionTable struct {
	Instructions        []string                     `yaml:"instructions"`
	InstructionEncoding map[string][]string          `yaml:"instruction_encoding"`
	OperandEncoding     map[string]map[string]string `yaml:"operand_encoding"`
}

func loadInstructionTable(filename string) (*instructionTable, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseInstructionTable(src)
}

func parseInstructionTable(src []byte) (*instructionTable, error) {
	var tbl instructionTable
	if err := yaml.UnmarshalStrict(src, &tbl); err != nil {
		return nil, err
	}
	if len(tbl.Instructions) == 0 {
		return nil, fmt.Errorf("no instructions listed")
	}
	if tbl.InstructionEncoding == nil {
		return nil, fmt.Errorf("missing instruction_encoding")
	}
	return &tbl, nil
}

const structuralTypeKey = "t"

// buildISA turns the loaded tables into the instruction set model. Each
// encoding group gets an explicit layout here, so nothing later has to know
// about the default.
func buildISA(tbl *instructionTable, primary, secondary OpcodeTable, diags *Diagnostics) (*ISA, error) {
	const source = "instruction_encoding"

	isa := &ISA{
		Instructions: tbl.Instructions,
		Primary:      primary,
		Secondary:    secondary,
		Groups:       make(map[string]*EncodingGroup),
	}
	isa.Mnemonics = expandMnemonics(tbl.Instructions, diags)

	for _, name := range sortedKeys(tbl.InstructionEncoding) {
		members := tbl.InstructionEncoding[name]
		group := &EncodingGroup{
			Name:      name,
			FuncName:  "print_" + makeIdentUnderscores(name),
			Layout:    DefaultLayout,
			Members:   members,
			Tokens:    groupTokens(name),
			Overrides: make(OperandRoleOverride),
		}

		if raw, ok := tbl.OperandEncoding[name]; ok {
			for _, key := range sortedKeys(raw) {
				val := raw[key]
				if key == structuralTypeKey {
					layout, err := ParseLayout(val)
					if err != nil {
						return nil, fmt.Errorf("operand_encoding %s: %w", name, err)
					}
					group.Layout = layout
					continue
				}
				if !slices.Contains(group.Tokens, key) {
					diags.Warnf("operand_encoding", "%s: override for %q, which isn't one of its operands", name, key)
				}
				group.Overrides[key] = val
			}
		}

		if len(members) == 0 {
			diags.Warnf(source, "%s has no members", name)
		}
		isa.Groups[name] = group
	}

	for _, name := range sortedKeys(tbl.OperandEncoding) {
		if _, ok := isa.Groups[name]; !ok {
			diags.Warnf("operand_encoding", "%s is not an encoding group", name)
		}
	}

	return isa, nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

func sortedKeys[V any](m map[string]V) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}
