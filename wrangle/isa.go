package main

import (
	"golang.org/x/exp/slices"
)

// OpcodeTable maps the value of a 6-bit opcode field to the mnemonic named
// for it in an opcode grid. Unassigned values are simply absent.
type OpcodeTable map[bits6]string

// Values returns the assigned values in ascending order.
func (t OpcodeTable) Values() []bits6 {
	ret := make([]bits6, 0, len(t))
	for v := range t {
		ret = append(ret, v)
	}
	slices.Sort(ret)
	return ret
}

// Family is a coprocessor placeholder mnemonic, like "MTCz", along with the
// concrete names it expands to, in ascending coprocessor id order.
type Family struct {
	Template string
	Variants [coprocessorCount]string
}

// MnemonicSet is the result of expanding the canonical instruction list.
// Names holds every concrete mnemonic exactly once. Families records which of
// those names came from a placeholder, so that the emitter can keep each
// family together.
type MnemonicSet struct {
	Names    map[string]struct{}
	Families map[string]*Family

	// FamilyOf maps each variant name back to its family.
	FamilyOf map[string]*Family
}

func (s *MnemonicSet) Has(name string) bool {
	_, ok := s.Names[name]
	return ok
}

// OperandRoleOverride maps an operand token, as it appears in an encoding group
// name, to the role identifier it should be treated as.
type OperandRoleOverride map[string]string

// Resolve returns the role identifier for the given token, which is the token
// itself unless overridden.
func (o OperandRoleOverride) Resolve(token string) string {
	if role, ok := o[token]; ok {
		return role
	}
	return token
}

// EncodingGroup is a family of instructions sharing one operand layout and
// one textual rendering.
type EncodingGroup struct {
	Name     string
	FuncName string
	Layout   Layout

	// Members are the mnemonics as written in the input, which may include
	// coprocessor placeholders.
	Members []string

	// Tokens are the operand role tokens taken from the group name, in
	// declaration order.
	Tokens    []string
	Overrides OperandRoleOverride
}

// Instruction is a concrete mnemonic bound to the operand role tokens of its
// encoding group.
type Instruction struct {
	Mnemonic string
	Group    *EncodingGroup
}

func (i Instruction) Roles() []string {
	return i.Group.Tokens
}

type ISA struct {
	// Instructions is the canonical instruction list, in input order.
	Instructions []string
	Mnemonics    *MnemonicSet

	Primary   OpcodeTable
	Secondary OpcodeTable

	Groups map[string]*EncodingGroup
}

// GroupNames returns the encoding group names in sorted order.
func (isa *ISA) GroupNames() []string {
	ret := make([]string, 0, len(isa.Groups))
	for name := range isa.Groups {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}
