package main

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// missingEncodings returns, in sorted order, the canonical instructions that
// aren't a member of any encoding group. Names are compared as written, so
// a placeholder like "MTCz" must be listed as "MTCz" in a group.
func missingEncodings(instructions []string, groups map[string][]string) []string {
	encoded := make(map[string]struct{})
	for _, members := range groups {
		for _, m := range members {
			encoded[m] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var ret []string
	for _, inst := range instructions {
		if _, ok := encoded[inst]; ok {
			continue
		}
		if _, dup := seen[inst]; dup {
			continue
		}
		seen[inst] = struct{}{}
		ret = append(ret, inst)
	}
	slices.Sort(ret)
	return ret
}

// unknownMembers is the reverse check: group members that aren't in the
// canonical instruction list, keyed by group name.
func unknownMembers(instructions []string, groups map[string][]string) map[string][]string {
	canonical := make(map[string]struct{}, len(instructions))
	for _, inst := range instructions {
		canonical[inst] = struct{}{}
	}

	ret := make(map[string][]string)
	for name, members := range groups {
		for _, m := range members {
			if _, ok := canonical[m]; !ok {
				ret[name] = append(ret[name], m)
			}
		}
	}
	for name := range ret {
		slices.Sort(ret[name])
	}
	return ret
}

func (isa *ISA) groupMembership() map[string][]string {
	ret := make(map[string][]string, len(isa.Groups))
	for name, g := range isa.Groups {
		ret[name] = g.Members
	}
	return ret
}

// checkEncodings reports encoding table drift. Nothing it finds stops
// generation: an instruction without a group is still emitted and just
// prints as unknown.
func checkEncodings(isa *ISA, diags *Diagnostics) {
	const source = "encodings"
	membership := isa.groupMembership()

	for _, inst := range missingEncodings(isa.Instructions, membership) {
		diags.Warnf(source, "%s doesn't have an encoding", inst)
	}

	unknown := unknownMembers(isa.Instructions, membership)
	for _, name := range sortedKeys(unknown) {
		for _, m := range unknown[name] {
			diags.Warnf(source, "%s lists %s, which isn't a known instruction", name, m)
		}
	}
}

// SlotSummary counts how much of a 6-bit opcode space a grid assigns.
type SlotSummary struct {
	Name    string
	Defined int
	Unused  []bits6
}

func summarizeSlots(name string, tbl OpcodeTable) SlotSummary {
	ret := SlotSummary{Name: name}
	for v := 0; v <= bits6Max; v++ {
		if _, ok := tbl[bits6(v)]; ok {
			ret.Defined++
			continue
		}
		ret.Unused = append(ret.Unused, bits6(v))
	}
	return ret
}

func (s SlotSummary) String() string {
	total := bits6Max + 1
	return fmt.Sprintf("%s: %d of %d opcodes defined, %d unused", s.Name, s.Defined, total, len(s.Unused))
}
