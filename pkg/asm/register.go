package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// NumRegisters is the number of integer registers.
const NumRegisters = 32

// abiNames contains the ABI name of each register, indexed by number.
var abiNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

var registers = func() map[string]uint32 {
	m := make(map[string]uint32, 2*NumRegisters+1)
	for idx, name := range abiNames {
		m[name] = uint32(idx)
		m["x"+strconv.Itoa(idx)] = uint32(idx)
	}
	m["fp"] = 8
	return m
}()

// ResolveRegister maps a register name, either xN or an ABI alias,
// to its index. The lookup is case insensitive.
func ResolveRegister(name string) (uint32, error) {
	idx, found := registers[strings.ToLower(name)]
	if !found {
		return 0, fmt.Errorf("%w '%s'", ErrUnknownRegister, name)
	}
	return idx, nil
}

// RegisterName returns the ABI name of the given register.
func RegisterName(idx uint32) string {
	return abiNames[idx&0b1_1111]
}
