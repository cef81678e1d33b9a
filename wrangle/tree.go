package main

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// isaTree summarizes the model for people maintaining the tables: each
// encoding group with its rendering and members, then the grids.
func isaTree(isa *ISA) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%d instructions, %d concrete mnemonics", len(isa.Instructions), len(isa.Mnemonics.Names)))

	groups := tree.AddBranch("encoding groups")
	for _, name := range isa.GroupNames() {
		group := isa.Groups[name]
		insts := groupInstructions(group, isa.Mnemonics)
		format := groupFormat(group, insts)

		b := groups.AddMetaBranch(group.Layout.String(), name)
		b.AddMetaNode("format", zigString(format.Format))
		for _, f := range format.Fields {
			b.AddMetaNode("field", f.Expr())
		}
		members := b.AddBranch(fmt.Sprintf("members (%d instructions)", len(insts)))
		for _, m := range group.Members {
			if fam, ok := isa.Mnemonics.Families[m]; ok {
				fb := members.AddBranch(m)
				for _, v := range fam.Variants {
					fb.AddNode(v)
				}
				continue
			}
			members.AddNode(m)
		}
	}

	if missing := missingEncodings(isa.Instructions, isa.groupMembership()); len(missing) > 0 {
		mb := tree.AddBranch("without encoding")
		for _, m := range missing {
			mb.AddNode(m)
		}
	}

	grids := tree.AddBranch("opcode grids")
	for _, s := range []SlotSummary{
		summarizeSlots("primary", isa.Primary),
		summarizeSlots("secondary", isa.Secondary),
	} {
		grids.AddNode(s.String())
	}

	return tree
}
