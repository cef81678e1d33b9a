package main

import (
	"fmt"
)

// bits6 is the value of one of the 6-bit opcode fields: the primary opcode
// in the top bits of every instruction word, or funct in R-type words.
type bits6 uint8

const bits6Max = 0x3f

func (v bits6) String() string {
	return fmt.Sprintf("0x%02x", uint8(v))
}
