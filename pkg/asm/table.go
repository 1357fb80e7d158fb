package asm

import (
	"sort"
	"strings"
)

// Family is the structural format of an instruction. It determines the
// operand grammar and the bit layout of the encoded word.
type Family uint8

// The following constants define the instruction families.
const (
	FamilyR            = Family(iota) // rd, rs1, rs2
	FamilyI                           // rd, rs1, imm (arithmetic, logic, shifts)
	FamilyLoad                        // rd, imm(rs1)
	FamilyS                           // rs2, imm(rs1)
	FamilyB                           // rs1, rs2, offset
	FamilyU                           // rd, imm[31:12]
	FamilyJ                           // [rd,] offset
	FamilyJumpIndirect                // rd, rs1[, imm]
)

var familyNames = [...]string{
	FamilyR:            "R",
	FamilyI:            "I",
	FamilyLoad:         "Load",
	FamilyS:            "S",
	FamilyB:            "B",
	FamilyU:            "U",
	FamilyJ:            "J",
	FamilyJumpIndirect: "JumpIndirect",
}

// String implements fmt.Stringer
func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "Family(?)"
}

// The following constants define the RV32I major opcodes.
const (
	OpcodeLOAD   = uint32(0b000_0011)
	OpcodeOPIMM  = uint32(0b001_0011)
	OpcodeAUIPC  = uint32(0b001_0111)
	OpcodeSTORE  = uint32(0b010_0011)
	OpcodeOP     = uint32(0b011_0011)
	OpcodeLUI    = uint32(0b011_0111)
	OpcodeBRANCH = uint32(0b110_0011)
	OpcodeJALR   = uint32(0b110_0111)
	OpcodeJAL    = uint32(0b110_1111)
)

// Descriptor contains the fixed bit fields of a mnemonic. Descriptors
// are shared and must not be modified.
type Descriptor struct {
	Mnemonic string
	Family   Family
	Opcode   uint32
	Funct3   uint32
	Funct7   uint32

	// Shift is true for slli, srli, and srai. The immediate of these
	// instructions is a 5 bit shift amount and Funct7 occupies imm[11:5].
	Shift bool
}

var descriptors = map[string]*Descriptor{
	// R family
	"add":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b000, Funct7: 0b000_0000},
	"sub":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b000, Funct7: 0b010_0000},
	"sll":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b001, Funct7: 0b000_0000},
	"slt":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b010, Funct7: 0b000_0000},
	"sltu": {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b011, Funct7: 0b000_0000},
	"xor":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b100, Funct7: 0b000_0000},
	"srl":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b101, Funct7: 0b000_0000},
	"sra":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b101, Funct7: 0b010_0000},
	"or":   {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b110, Funct7: 0b000_0000},
	"and":  {Family: FamilyR, Opcode: OpcodeOP, Funct3: 0b111, Funct7: 0b000_0000},

	// I family
	"addi":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b000},
	"slti":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b010},
	"sltiu": {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b011},
	"xori":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b100},
	"ori":   {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b110},
	"andi":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b111},
	"slli":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b001, Shift: true},
	"srli":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b101, Shift: true},
	"srai":  {Family: FamilyI, Opcode: OpcodeOPIMM, Funct3: 0b101, Funct7: 0b010_0000, Shift: true},

	// Load family
	"lb":  {Family: FamilyLoad, Opcode: OpcodeLOAD, Funct3: 0b000},
	"lh":  {Family: FamilyLoad, Opcode: OpcodeLOAD, Funct3: 0b001},
	"lw":  {Family: FamilyLoad, Opcode: OpcodeLOAD, Funct3: 0b010},
	"lbu": {Family: FamilyLoad, Opcode: OpcodeLOAD, Funct3: 0b100},
	"lhu": {Family: FamilyLoad, Opcode: OpcodeLOAD, Funct3: 0b101},

	// S family
	"sb": {Family: FamilyS, Opcode: OpcodeSTORE, Funct3: 0b000},
	"sh": {Family: FamilyS, Opcode: OpcodeSTORE, Funct3: 0b001},
	"sw": {Family: FamilyS, Opcode: OpcodeSTORE, Funct3: 0b010},

	// B family
	"beq":  {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b000},
	"bne":  {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b001},
	"blt":  {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b100},
	"bge":  {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b101},
	"bltu": {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b110},
	"bgeu": {Family: FamilyB, Opcode: OpcodeBRANCH, Funct3: 0b111},

	// U family
	"lui":   {Family: FamilyU, Opcode: OpcodeLUI},
	"auipc": {Family: FamilyU, Opcode: OpcodeAUIPC},

	// J and JumpIndirect families
	"jal":  {Family: FamilyJ, Opcode: OpcodeJAL},
	"jalr": {Family: FamilyJumpIndirect, Opcode: OpcodeJALR, Funct3: 0b000},
}

func init() {
	for name, desc := range descriptors {
		desc.Mnemonic = name
	}
}

// Lookup returns the descriptor of the given mnemonic. The lookup
// is case insensitive.
func Lookup(mnemonic string) (*Descriptor, bool) {
	desc, found := descriptors[strings.ToLower(mnemonic)]
	return desc, found
}

// Descriptors returns all the descriptors sorted by mnemonic.
func Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Mnemonic < out[j].Mnemonic
	})
	return out
}
