package asm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// offsetRe matches the offset(base) operand of loads and stores.
	offsetRe = regexp.MustCompile(`^([-+]?[0-9]+)\(([A-Za-z0-9]+)\)$`)

	// decimalRe matches a signed base-10 integer of any length.
	decimalRe = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

// Tokenize removes commas from a cleaned line and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, ",", " "))
}

// ParseImmediate parses a base-10 signed immediate. Values that do not
// fit in 64 bits wrap around, so their low 32 bits are preserved.
func ParseImmediate(token string) (int64, error) {
	if !decimalRe.MatchString(token) {
		return 0, fmt.Errorf("%w '%s'", ErrMalformedImmediate, token)
	}
	return parseDecimal(token), nil
}

// parseDecimal converts a string matching decimalRe, wrapping modulo 2^64.
func parseDecimal(token string) int64 {
	value, err := strconv.ParseInt(token, 10, 64)
	if err == nil || !errors.Is(err, strconv.ErrRange) {
		return value
	}
	negative := token[0] == '-'
	var acc uint64
	for _, c := range strings.TrimLeft(token, "+-") {
		acc = acc*10 + uint64(c-'0')
	}
	if negative {
		acc = -acc
	}
	return int64(acc)
}

// ParseOffset parses an operand like -4(sp) and returns the
// offset and the base register index.
func ParseOffset(token string) (int64, uint32, error) {
	m := offsetRe.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, fmt.Errorf("%w '%s'", ErrMalformedOffset, token)
	}
	offset := parseDecimal(m[1])
	base, err := ResolveRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	return offset, base, nil
}

// operands resolves tokens according to a pattern where 'r' is a
// register, 'i' an immediate, and 'o' an offset(base) pair. Registers
// and offset bases are appended to regs, immediates and offsets to imms.
func operands(pattern string, tokens []string) ([]uint32, []int64, error) {
	if len(tokens) != len(pattern) {
		return nil, nil, fmt.Errorf("%w: want %d, got %d", ErrOperandCount, len(pattern), len(tokens))
	}
	var (
		regs []uint32
		imms []int64
	)
	for idx, kind := range pattern {
		switch kind {
		case 'r':
			reg, err := ResolveRegister(tokens[idx])
			if err != nil {
				return nil, nil, err
			}
			regs = append(regs, reg)
		case 'i':
			imm, err := ParseImmediate(tokens[idx])
			if err != nil {
				return nil, nil, err
			}
			imms = append(imms, imm)
		case 'o':
			imm, base, err := ParseOffset(tokens[idx])
			if err != nil {
				return nil, nil, err
			}
			regs = append(regs, base)
			imms = append(imms, imm)
		}
	}
	return regs, imms, nil
}

// ParseInstruction parses a cleaned line into an Instruction. The
// lineno argument is only used to annotate the result.
func ParseInstruction(lineno int, text string) (Instruction, error) {
	tokens := Tokenize(text)
	if len(tokens) < 1 {
		return nil, fmt.Errorf("%w: empty line", ErrUnknownMnemonic)
	}
	desc, found := Lookup(tokens[0])
	if !found {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownMnemonic, tokens[0])
	}
	args := tokens[1:]
	switch desc.Family {
	case FamilyR:
		regs, _, err := operands("rrr", args)
		if err != nil {
			return nil, err
		}
		return InstructionR{Lineno: lineno, Desc: desc, RD: regs[0], RS1: regs[1], RS2: regs[2]}, nil
	case FamilyI:
		regs, imms, err := operands("rri", args)
		if err != nil {
			return nil, err
		}
		return InstructionI{Lineno: lineno, Desc: desc, RD: regs[0], RS1: regs[1], Imm: imms[0]}, nil
	case FamilyLoad:
		regs, imms, err := operands("ro", args)
		if err != nil {
			return nil, err
		}
		return InstructionLoad{Lineno: lineno, Desc: desc, RD: regs[0], RS1: regs[1], Imm: imms[0]}, nil
	case FamilyS:
		regs, imms, err := operands("ro", args)
		if err != nil {
			return nil, err
		}
		return InstructionS{Lineno: lineno, Desc: desc, RS2: regs[0], RS1: regs[1], Imm: imms[0]}, nil
	case FamilyB:
		regs, imms, err := operands("rri", args)
		if err != nil {
			return nil, err
		}
		return InstructionB{Lineno: lineno, Desc: desc, RS1: regs[0], RS2: regs[1], Imm: imms[0]}, nil
	case FamilyU:
		regs, imms, err := operands("ri", args)
		if err != nil {
			return nil, err
		}
		return InstructionU{Lineno: lineno, Desc: desc, RD: regs[0], Imm: imms[0]}, nil
	case FamilyJ:
		if len(args) != 1 && len(args) != 2 {
			return nil, fmt.Errorf("%w: want 1 or 2, got %d", ErrOperandCount, len(args))
		}
		if len(args) == 1 {
			// jal offset links into ra
			_, imms, err := operands("i", args)
			if err != nil {
				return nil, err
			}
			return InstructionJ{Lineno: lineno, Desc: desc, RD: 1, Imm: imms[0]}, nil
		}
		regs, imms, err := operands("ri", args)
		if err != nil {
			return nil, err
		}
		return InstructionJ{Lineno: lineno, Desc: desc, RD: regs[0], Imm: imms[0]}, nil
	case FamilyJumpIndirect:
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("%w: want 2 or 3, got %d", ErrOperandCount, len(args))
		}
		if len(args) == 2 {
			regs, _, err := operands("rr", args)
			if err != nil {
				return nil, err
			}
			return InstructionJumpIndirect{Lineno: lineno, Desc: desc, RD: regs[0], RS1: regs[1]}, nil
		}
		regs, imms, err := operands("rri", args)
		if err != nil {
			return nil, err
		}
		return InstructionJumpIndirect{Lineno: lineno, Desc: desc, RD: regs[0], RS1: regs[1], Imm: imms[0]}, nil
	default:
		return nil, fmt.Errorf("%w '%s': no operand grammar for family %s", ErrUnknownMnemonic, desc.Mnemonic, desc.Family)
	}
}
