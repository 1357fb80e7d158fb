// Package disasm contains the RV32I disassembler.
//
// # Instruction formats
//
// Each instruction is 32 bits wide. The low seven bits are always the
// major opcode. The base integer instruction set uses six formats:
//
//	R: <funct7:7><rs2:5><rs1:5><funct3:3><rd:5><opcode:7>
//	I: <imm[11:0]:12><rs1:5><funct3:3><rd:5><opcode:7>
//	S: <imm[11:5]:7><rs2:5><rs1:5><funct3:3><imm[4:0]:5><opcode:7>
//	B: <imm[12]:1><imm[10:5]:6><rs2:5><rs1:5><funct3:3><imm[4:1]:4><imm[11]:1><opcode:7>
//	U: <imm[31:12]:20><rd:5><opcode:7>
//	J: <imm[20]:1><imm[10:1]:10><imm[11]:1><imm[19:12]:8><rd:5><opcode:7>
//
// Loads and jalr use the I format. The shift-by-immediate instructions
// use the I format with the shift amount in imm[4:0] and a funct7-like
// discriminator in imm[11:5].
//
// # Bytecode format
//
// Words are serialized as hex numbers, one per line, as emitted by the
// assembler. A leading 0x prefix and a trailing # comment are allowed,
// for example:
//
//	0x00500293   # addi x5, x0, 5
//
// # Assembly syntax
//
// Disassemble uses xN register names and decimal immediates so that its
// output can be fed back into the assembler.
package disasm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bassosimone/rv32asm/pkg/asm"
)

// DecodeOpcode decodes the major opcode of an instruction.
func DecodeOpcode(ci uint32) uint32 {
	return ci & 0b111_1111
}

// DecodeRD decodes the destination register of an instruction.
func DecodeRD(ci uint32) uint32 {
	return (ci >> 7) & 0b1_1111
}

// DecodeFunct3 decodes the funct3 field of an instruction.
func DecodeFunct3(ci uint32) uint32 {
	return (ci >> 12) & 0b111
}

// DecodeRS1 decodes the first source register of an instruction.
func DecodeRS1(ci uint32) uint32 {
	return (ci >> 15) & 0b1_1111
}

// DecodeRS2 decodes the second source register of an instruction.
func DecodeRS2(ci uint32) uint32 {
	return (ci >> 20) & 0b1_1111
}

// DecodeFunct7 decodes the funct7 field of an instruction.
func DecodeFunct7(ci uint32) uint32 {
	return (ci >> 25) & 0b111_1111
}

// DecodeImmI decodes the signed 12 bit immediate of the I format.
func DecodeImmI(ci uint32) int32 {
	return SignExtend(ci>>20, 12)
}

// DecodeImmS decodes the signed 12 bit immediate of the S format.
func DecodeImmS(ci uint32) int32 {
	imm := ((ci >> 25) << 5) | ((ci >> 7) & 0b1_1111)
	return SignExtend(imm, 12)
}

// DecodeImmB decodes the signed 13 bit offset of the B format.
func DecodeImmB(ci uint32) int32 {
	var imm uint32
	imm |= ((ci >> 31) & 0b1) << 12
	imm |= ((ci >> 7) & 0b1) << 11
	imm |= ((ci >> 25) & 0b11_1111) << 5
	imm |= ((ci >> 8) & 0b1111) << 1
	return SignExtend(imm, 13)
}

// DecodeImmU decodes the unsigned 20 bit upper immediate of the U format.
func DecodeImmU(ci uint32) uint32 {
	return ci >> 12
}

// DecodeImmJ decodes the signed 21 bit offset of the J format.
func DecodeImmJ(ci uint32) int32 {
	var imm uint32
	imm |= ((ci >> 31) & 0b1) << 20
	imm |= ((ci >> 12) & 0b1111_1111) << 12
	imm |= ((ci >> 20) & 0b1) << 11
	imm |= ((ci >> 21) & 0b11_1111_1111) << 1
	return SignExtend(imm, 21)
}

// SignExtend extends the sign of the low bits of v to 32 bit.
func SignExtend(v uint32, bits uint) int32 {
	if bits < 1 || bits > 32 {
		panic("bits value out of range")
	}
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// Decode returns the descriptor matching the fixed fields of ci.
func Decode(ci uint32) (*asm.Descriptor, bool) {
	opcode, funct3, funct7 := DecodeOpcode(ci), DecodeFunct3(ci), DecodeFunct7(ci)
	for _, desc := range asm.Descriptors() {
		if desc.Opcode != opcode {
			continue
		}
		switch desc.Family {
		case asm.FamilyU, asm.FamilyJ:
			return desc, true
		}
		if desc.Funct3 != funct3 {
			continue
		}
		if (desc.Family == asm.FamilyR || desc.Shift) && desc.Funct7 != funct7 {
			continue
		}
		return desc, true
	}
	return nil, false
}

// Disassemble disassembles a single instruction and returns valid
// assembly code implementing such instruction.
func Disassemble(ci uint32) string {
	desc, found := Decode(ci)
	if !found {
		return fmt.Sprintf("<unknown instruction: 0x%08x>", ci)
	}
	name, rd, rs1, rs2 := desc.Mnemonic, DecodeRD(ci), DecodeRS1(ci), DecodeRS2(ci)
	switch desc.Family {
	case asm.FamilyR:
		return fmt.Sprintf("%s x%d, x%d, x%d", name, rd, rs1, rs2)
	case asm.FamilyI:
		if desc.Shift {
			return fmt.Sprintf("%s x%d, x%d, %d", name, rd, rs1, (ci>>20)&0b1_1111)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", name, rd, rs1, DecodeImmI(ci))
	case asm.FamilyLoad:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, rd, DecodeImmI(ci), rs1)
	case asm.FamilyS:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, rs2, DecodeImmS(ci), rs1)
	case asm.FamilyB:
		return fmt.Sprintf("%s x%d, x%d, %d", name, rs1, rs2, DecodeImmB(ci))
	case asm.FamilyU:
		return fmt.Sprintf("%s x%d, %d", name, rd, DecodeImmU(ci))
	case asm.FamilyJ:
		return fmt.Sprintf("%s x%d, %d", name, rd, DecodeImmJ(ci))
	case asm.FamilyJumpIndirect:
		return fmt.Sprintf("%s x%d, x%d, %d", name, rd, rs1, DecodeImmI(ci))
	default:
		return fmt.Sprintf("<unknown instruction: 0x%08x>", ci)
	}
}

// LoadWords loads words from the specified io.Reader. Blank lines
// and comments are skipped.
func LoadWords(r io.Reader) ([]uint32, error) {
	var out []uint32
	reader := bufio.NewReader(r)
	var lineno int
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if index := strings.Index(line, "#"); index >= 0 {
			line = line[:index]
		}
		lineno++
		if line = strings.TrimSpace(line); line != "" {
			line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
			value, perr := strconv.ParseUint(line, 16, 32)
			if perr != nil {
				return nil, fmt.Errorf("disasm: line %d: %w", lineno, perr)
			}
			out = append(out, uint32(value))
		}
		if err != nil {
			return out, nil
		}
	}
}
