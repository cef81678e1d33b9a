package main

import (
	"fmt"
	"strings"
)

// Layout is the structural type tag of an encoding group, identifying which
// physical view of the instruction word its operand fields are read from.
// The views themselves are defined by the consuming decoder.
type Layout byte

const (
	LayoutInvalid Layout = 0
	LayoutR       Layout = 'R' // register-type
	LayoutI       Layout = 'I' // immediate-type
	LayoutJ       Layout = 'J' // jump-type
)

// DefaultLayout is used for any encoding group that doesn't declare "t".
const DefaultLayout = LayoutR

func (l Layout) String() string {
	if l == LayoutInvalid {
		return "invalid"
	}
	return string(rune(l))
}

func (l Layout) Description() string {
	switch l {
	case LayoutR:
		return "register-type"
	case LayoutI:
		return "immediate-type"
	case LayoutJ:
		return "jump-type"
	default:
		return "invalid"
	}
}

// ParseLayout accepts a layout tag in either case. The empty string selects
// DefaultLayout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultLayout, nil
	case "R":
		return LayoutR, nil
	case "I":
		return LayoutI, nil
	case "J":
		return LayoutJ, nil
	default:
		return LayoutInvalid, fmt.Errorf("invalid structural type %q (want R, I or J)", s)
	}
}
