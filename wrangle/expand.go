package main

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// coprocessorPlaceholder marks the position of the coprocessor unit id in a
// mnemonic such as "MTCz". Real mnemonics are all uppercase, so the lowercase
// letter can't be mistaken for part of a name.
const coprocessorPlaceholder = "z"

const coprocessorCount = 4

func isPlaceholder(name string) bool {
	return strings.Contains(name, coprocessorPlaceholder)
}

// expandPlaceholder returns the concrete names for coprocessor ids 0 through 3.
func expandPlaceholder(name string) [coprocessorCount]string {
	var ret [coprocessorCount]string
	for id := range ret {
		ret[id] = strings.ReplaceAll(name, coprocessorPlaceholder, strconv.Itoa(id))
	}
	return ret
}

// expandMnemonics builds the set of concrete mnemonics from the canonical
// instruction list.
//
// A plain mnemonic that is also produced by a placeholder (MTC0 alongside
// MTCz, for example) is folded into the family so it's emitted exactly once,
// in the family's position, and a warning is reported.
func expandMnemonics(names []string, diags *Diagnostics) *MnemonicSet {
	ret := &MnemonicSet{
		Names:    make(map[string]struct{}),
		Families: make(map[string]*Family),
		FamilyOf: make(map[string]*Family),
	}

	for _, name := range names {
		if !isPlaceholder(name) {
			continue
		}
		if _, exists := ret.Families[name]; exists {
			continue
		}
		fam := &Family{
			Template: name,
			Variants: expandPlaceholder(name),
		}
		ret.Families[name] = fam
		for _, v := range fam.Variants {
			if other, exists := ret.FamilyOf[v]; exists {
				// e.g. "AzB0" and "AzBz" both produce "A0B0". The
				// second family is left with a hole, which the
				// contiguity check rejects.
				diags.Errorf("expand", "%s is produced by both %s and %s", v, other.Template, name)
				continue
			}
			ret.FamilyOf[v] = fam
			ret.Names[v] = struct{}{}
		}
	}

	for _, name := range names {
		if isPlaceholder(name) {
			continue
		}
		if fam, ok := ret.FamilyOf[name]; ok {
			diags.Warnf("expand", "%s is listed explicitly and also produced by %s; treating it as part of %s", name, fam.Template, fam.Template)
			continue
		}
		ret.Names[name] = struct{}{}
	}

	return ret
}

// orderedMnemonics returns every concrete mnemonic in the order the unified
// enumeration declares them.
//
// Plain mnemonics and families are sorted together, a family by its template
// name, and each family contributes its variants in id order. Plain
// lexicographic sorting would split families like BCzF and BCzT
// (BC0F, BC0T, BC1F, ...), which the decoder can't tolerate.
func orderedMnemonics(set *MnemonicSet) []string {
	keys := make([]string, 0, len(set.Names))
	for name := range set.Names {
		if _, ok := set.FamilyOf[name]; ok {
			continue
		}
		keys = append(keys, name)
	}
	for tmpl := range set.Families {
		keys = append(keys, tmpl)
	}
	slices.Sort(keys)

	ret := make([]string, 0, len(set.Names))
	for _, key := range keys {
		if fam, ok := set.Families[key]; ok {
			ret = append(ret, fam.Variants[:]...)
			continue
		}
		ret = append(ret, key)
	}
	return ret
}
