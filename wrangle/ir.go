package main

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// The declarations below describe the generated source independently of how
// it's written out, so structural properties can be checked before any text
// exists.

// illegalMnemonic is the op variant that resolvers fall back to for any
// opcode value without a mnemonic.
const illegalMnemonic = "ILLEGAL"

type EnumMember struct {
	Name string

	// Value is the explicit discriminant, or nil for auto-numbering.
	Value *bits6
}

type EnumDecl struct {
	Name    string
	Doc     string
	Backing string
	Members []EnumMember
}

type SwitchArm struct {
	Value  bits6
	Result string
}

// ResolverDecl is a function mapping a field value to an op variant.
// Fallback is empty when every value has an arm.
type ResolverDecl struct {
	Name     string
	Enum     string
	Arms     []SwitchArm
	Fallback string
}

type PrinterDecl struct {
	Name   string
	Group  string
	Layout Layout
	OperandFormat
}

type PrinterRoute struct {
	Printer  string
	Variants []string
}

// DispatchDecl routes each op variant to its encoding group's printer.
// Fallback is empty when every variant has a route.
type DispatchDecl struct {
	Name     string
	Routes   []PrinterRoute
	Fallback string
}

const unknownPrinter = "print_unknown"

// Decls is the whole intermediate representation of one generation run.
type Decls struct {
	Primary    EnumDecl
	Subop      EnumDecl
	Op         EnumDecl
	ResolveOp  ResolverDecl
	ResolveSub ResolverDecl
	Printers   []PrinterDecl
	Dispatch   DispatchDecl
}

func buildDecls(isa *ISA, diags *Diagnostics) (*Decls, error) {
	if !isa.Mnemonics.Has(illegalMnemonic) {
		return nil, fmt.Errorf("the instruction list must include %s, which unrecognized opcodes resolve to", illegalMnemonic)
	}

	d := &Decls{
		Primary: tableEnumDecl("primary", "What is encoded in the uppermost bits in every instruction.", isa.Primary, diags),
		Subop:   tableEnumDecl("subop", "What is encoded in funct in R type instructions.", isa.Secondary, diags),
		Op:      opEnumDecl(isa.Mnemonics),
	}
	for _, decl := range []EnumDecl{d.Primary, d.Subop, d.Op} {
		for _, m := range decl.Members {
			if !isIdent(m.Name) {
				return nil, fmt.Errorf("%s: %q can't be used as an enum member name", decl.Name, m.Name)
			}
		}
	}
	if err := checkFamilyContiguity(d.Op, isa.Mnemonics); err != nil {
		return nil, err
	}

	d.ResolveOp = resolverDecl("resolve_op", "primary", isa.Primary, isa.Mnemonics, diags)
	d.ResolveSub = resolverDecl("resolve_subop", "secondary", isa.Secondary, isa.Mnemonics, diags)

	var err error
	d.Printers, d.Dispatch, err = printerDecls(isa, d.Op, diags)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// tableEnumDecl declares an enumeration of a grid's mnemonics with their
// opcode values as discriminants. Members are ordered by their rendered text
// so the output doesn't depend on map order. A mnemonic placed at more than
// one value is declared once, with the lowest of them.
func tableEnumDecl(name, doc string, tbl OpcodeTable, diags *Diagnostics) EnumDecl {
	ret := EnumDecl{
		Name:    name,
		Doc:     doc,
		Backing: "u6",
	}
	declared := make(map[string]bits6)
	for _, v := range tbl.Values() {
		mn := tbl[v]
		if first, dup := declared[mn]; dup {
			diags.Warnf(name, "%s is at both %s and %s; only %s is declared", mn, first, v, first)
			continue
		}
		declared[mn] = v
		ret.Members = append(ret.Members, EnumMember{Name: mn, Value: &v})
	}
	slices.SortFunc(ret.Members, func(a, b EnumMember) int {
		return strings.Compare(renderEnumMember(a), renderEnumMember(b))
	})
	return ret
}

func opEnumDecl(set *MnemonicSet) EnumDecl {
	ret := EnumDecl{
		Name: "op",
		Doc: "The mnemonics for all operations with coprocessor ids expanded. " +
			"(This doesn't correspond to anything in the ISA encoding!) " +
			"Coprocessor ones MUST be sequential, otherwise the decoder will break!",
		Backing: "u32",
	}
	for _, name := range orderedMnemonics(set) {
		ret.Members = append(ret.Members, EnumMember{Name: name})
	}
	return ret
}

// checkFamilyContiguity makes sure every coprocessor family occupies four
// consecutive positions of the op enumeration in id order, and that no name
// is declared twice. The decoder computes a variant as the id-0 variant plus
// the coprocessor number.
func checkFamilyContiguity(decl EnumDecl, set *MnemonicSet) error {
	pos := make(map[string]int, len(decl.Members))
	for i, m := range decl.Members {
		if m.Value != nil {
			return fmt.Errorf("%s.%s has an explicit value, so its position isn't meaningful", decl.Name, m.Name)
		}
		if prev, dup := pos[m.Name]; dup {
			return fmt.Errorf("%s declares %s twice, at positions %d and %d", decl.Name, m.Name, prev, i)
		}
		pos[m.Name] = i
	}

	for _, tmpl := range sortedKeys(set.Families) {
		fam := set.Families[tmpl]
		first, ok := pos[fam.Variants[0]]
		if !ok {
			return fmt.Errorf("%s: %s is missing from %s", tmpl, fam.Variants[0], decl.Name)
		}
		for id, v := range fam.Variants {
			got, ok := pos[v]
			if !ok {
				return fmt.Errorf("%s: %s is missing from %s", tmpl, v, decl.Name)
			}
			if got != first+id {
				return fmt.Errorf("%s: %s is at position %d but must be at %d to follow %s", tmpl, v, got, first+id, fam.Variants[0])
			}
		}
	}
	return nil
}

// resolverDecl declares the function mapping a grid's field values to op
// variants. Grid entries that aren't mnemonics, like SPECIAL, are left to
// the fallback; the decoder looks at another field for those.
func resolverDecl(name, source string, tbl OpcodeTable, set *MnemonicSet, diags *Diagnostics) ResolverDecl {
	ret := ResolverDecl{
		Name:     name,
		Enum:     "op",
		Fallback: illegalMnemonic,
	}
	for _, v := range tbl.Values() {
		mn := tbl[v]
		if !set.Has(mn) {
			diags.Notef(source, "%s at %s isn't an instruction, so %s resolves it to %s", mn, v, name, illegalMnemonic)
			continue
		}
		ret.Arms = append(ret.Arms, SwitchArm{Value: v, Result: mn})
	}
	slices.SortFunc(ret.Arms, func(a, b SwitchArm) int {
		return strings.Compare(renderSwitchArm(ret.Enum, a), renderSwitchArm(ret.Enum, b))
	})
	if len(ret.Arms) == bits6Max+1 {
		// Zig rejects an else prong that can't be reached.
		diags.Notef(source, "every value of %s has an arm, so it has no fallback", name)
		ret.Fallback = ""
	}
	return ret
}

// printerDecls declares one printer per encoding group and the dispatch
// between them. A variant reached from two different groups is an error,
// since the dispatch could only pick one.
func printerDecls(isa *ISA, op EnumDecl, diags *Diagnostics) ([]PrinterDecl, DispatchDecl, error) {
	dispatch := DispatchDecl{Name: "print"}
	var printers []PrinterDecl
	routed := make(map[string]string)
	funcNames := make(map[string]string)

	for _, name := range isa.GroupNames() {
		group := isa.Groups[name]
		if prev, ok := funcNames[group.FuncName]; ok {
			return nil, dispatch, fmt.Errorf("encoding groups %s and %s would both be printed by %s", prev, name, group.FuncName)
		}
		funcNames[group.FuncName] = name

		insts := groupInstructions(group, isa.Mnemonics)
		printer := PrinterDecl{
			Name:          group.FuncName,
			Group:         group.Name,
			Layout:        group.Layout,
			OperandFormat: groupFormat(group, insts),
		}
		for _, lit := range printer.Literals {
			diags.Notef("operand_encoding", "%s: %q isn't a known operand role, so it's printed as written", name, lit)
		}
		printers = append(printers, printer)

		route := PrinterRoute{Printer: group.FuncName}
		for _, inst := range insts {
			v := inst.Mnemonic
			if prev, ok := routed[v]; ok {
				if prev == name {
					continue
				}
				return nil, dispatch, fmt.Errorf("%s is in both encoding groups %s and %s", v, prev, name)
			}
			if !isa.Mnemonics.Has(v) {
				// Already reported by the encoding check; there's no
				// op variant to route.
				continue
			}
			routed[v] = name
			route.Variants = append(route.Variants, v)
		}
		if len(route.Variants) > 0 {
			dispatch.Routes = append(dispatch.Routes, route)
		}
	}

	for _, m := range op.Members {
		if _, ok := routed[m.Name]; !ok {
			dispatch.Fallback = unknownPrinter
			break
		}
	}
	return printers, dispatch, nil
}

// groupInstructions binds the concrete op variants of a group's members to
// the group, in enumeration order within each member.
func groupInstructions(group *EncodingGroup, set *MnemonicSet) []Instruction {
	var ret []Instruction
	for _, m := range group.Members {
		if fam, ok := set.Families[m]; ok {
			for _, v := range fam.Variants {
				ret = append(ret, Instruction{Mnemonic: v, Group: group})
			}
			continue
		}
		ret = append(ret, Instruction{Mnemonic: m, Group: group})
	}
	return ret
}

// groupFormat is the rendering shared by all instructions of a group. A
// group without members still gets a printer.
func groupFormat(group *EncodingGroup, insts []Instruction) OperandFormat {
	if len(insts) == 0 {
		return resolveOperandFormat(Instruction{Group: group})
	}
	return resolveOperandFormat(insts[0])
}
