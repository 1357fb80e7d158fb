package asm

// Instruction is a parsed instruction. There is one implementation
// for each Family and each implementation knows how to pack its
// operands into a 32-bit word.
type Instruction interface {
	// Line returns the line where the instruction appears in the input file.
	Line() int

	// Descriptor returns the fixed fields of the instruction's mnemonic.
	Descriptor() *Descriptor

	// Encode encodes the instruction. Immediates that do not fit in
	// their field are truncated to the field width.
	Encode() uint32
}

// encodeR packs the R layout.
func encodeR(desc *Descriptor, rd, rs1, rs2 uint32) uint32 {
	var out uint32
	out |= (desc.Funct7 & 0b111_1111) << 25
	out |= (rs2 & 0b1_1111) << 20
	out |= (rs1 & 0b1_1111) << 15
	out |= (desc.Funct3 & 0b111) << 12
	out |= (rd & 0b1_1111) << 7
	out |= desc.Opcode & 0b111_1111
	return out
}

// encodeI packs the I layout, which is shared by loads and jalr.
func encodeI(desc *Descriptor, rd, rs1, imm uint32) uint32 {
	var out uint32
	out |= (imm & 0b1111_1111_1111) << 20
	out |= (rs1 & 0b1_1111) << 15
	out |= (desc.Funct3 & 0b111) << 12
	out |= (rd & 0b1_1111) << 7
	out |= desc.Opcode & 0b111_1111
	return out
}

// InstructionR is an instruction of the R family.
type InstructionR struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	RS1    uint32
	RS2    uint32
}

// Line implements Instruction.Line
func (ia InstructionR) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionR) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionR) Encode() uint32 {
	return encodeR(ia.Desc, ia.RD, ia.RS1, ia.RS2)
}

var _ Instruction = InstructionR{}

// InstructionI is an instruction of the I family.
type InstructionI struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	RS1    uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionI) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionI) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionI) Encode() uint32 {
	imm := uint32(ia.Imm)
	if ia.Desc.Shift {
		// shamt lives in imm[4:0]; for srai Funct7 sets imm[10]
		imm = (imm & 0b1_1111) | (ia.Desc.Funct7&0b111_1111)<<5
	}
	return encodeI(ia.Desc, ia.RD, ia.RS1, imm)
}

var _ Instruction = InstructionI{}

// InstructionLoad is an instruction of the Load family.
type InstructionLoad struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	RS1    uint32 // base register
	Imm    int64  // offset
}

// Line implements Instruction.Line
func (ia InstructionLoad) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionLoad) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionLoad) Encode() uint32 {
	return encodeI(ia.Desc, ia.RD, ia.RS1, uint32(ia.Imm))
}

var _ Instruction = InstructionLoad{}

// InstructionS is an instruction of the S family. RS2 is the register
// whose value is stored, RS1 is the base register.
type InstructionS struct {
	Lineno int
	Desc   *Descriptor
	RS1    uint32
	RS2    uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionS) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionS) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionS) Encode() uint32 {
	imm := uint32(ia.Imm)
	var out uint32
	out |= ((imm >> 5) & 0b111_1111) << 25
	out |= (ia.RS2 & 0b1_1111) << 20
	out |= (ia.RS1 & 0b1_1111) << 15
	out |= (ia.Desc.Funct3 & 0b111) << 12
	out |= (imm & 0b1_1111) << 7
	out |= ia.Desc.Opcode & 0b111_1111
	return out
}

var _ Instruction = InstructionS{}

// InstructionB is an instruction of the B family. Imm is the byte
// offset of the target relative to this instruction.
type InstructionB struct {
	Lineno int
	Desc   *Descriptor
	RS1    uint32
	RS2    uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionB) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionB) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionB) Encode() uint32 {
	imm := uint32(ia.Imm)
	var out uint32
	out |= ((imm >> 12) & 0b1) << 31
	out |= ((imm >> 5) & 0b11_1111) << 25
	out |= (ia.RS2 & 0b1_1111) << 20
	out |= (ia.RS1 & 0b1_1111) << 15
	out |= (ia.Desc.Funct3 & 0b111) << 12
	out |= ((imm >> 1) & 0b1111) << 8
	out |= ((imm >> 11) & 0b1) << 7
	out |= ia.Desc.Opcode & 0b111_1111
	return out
}

var _ Instruction = InstructionB{}

// InstructionU is an instruction of the U family. Imm contains the
// upper 20 bits, not shifted.
type InstructionU struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionU) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionU) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionU) Encode() uint32 {
	var out uint32
	out |= (uint32(ia.Imm) & 0xf_ffff) << 12
	out |= (ia.RD & 0b1_1111) << 7
	out |= ia.Desc.Opcode & 0b111_1111
	return out
}

var _ Instruction = InstructionU{}

// InstructionJ is the jal instruction.
type InstructionJ struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionJ) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionJ) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionJ) Encode() uint32 {
	imm := uint32(ia.Imm)
	var out uint32
	out |= ((imm >> 20) & 0b1) << 31
	out |= ((imm >> 1) & 0b11_1111_1111) << 21
	out |= ((imm >> 11) & 0b1) << 20
	out |= ((imm >> 12) & 0b1111_1111) << 12
	out |= (ia.RD & 0b1_1111) << 7
	out |= ia.Desc.Opcode & 0b111_1111
	return out
}

var _ Instruction = InstructionJ{}

// InstructionJumpIndirect is the jalr instruction.
type InstructionJumpIndirect struct {
	Lineno int
	Desc   *Descriptor
	RD     uint32
	RS1    uint32
	Imm    int64
}

// Line implements Instruction.Line
func (ia InstructionJumpIndirect) Line() int {
	return ia.Lineno
}

// Descriptor implements Instruction.Descriptor
func (ia InstructionJumpIndirect) Descriptor() *Descriptor {
	return ia.Desc
}

// Encode implements Instruction.Encode
func (ia InstructionJumpIndirect) Encode() uint32 {
	return encodeI(ia.Desc, ia.RD, ia.RS1, uint32(ia.Imm))
}

var _ Instruction = InstructionJumpIndirect{}
