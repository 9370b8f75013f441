// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"fmt"
	"strings"

	"github.com/lassandro/gochip8/pkg/encoding"
)

type Op uint8

const (
	OP_UNKNOWN Op = iota

	// Flow control
	OP_JUMP
	OP_JUMP_PLUS_V0
	OP_CALL
	OP_RETURN

	OP_SYSCALL
	OP_CLEAR_SCREEN
	OP_DRAW_SPRITE

	OP_SKIP_IF_REG_VAL_EQUAL
	OP_SKIP_IF_REG_VAL_NOT_EQUAL
	OP_SKIP_IF_REG_REG_EQUAL
	OP_SKIP_IF_REG_REG_NOT_EQUAL
	OP_SKIP_IF_KEY_PRESSED
	OP_SKIP_IF_KEY_NOT_PRESSED

	OP_LOAD_VAL_TO_REG
	OP_LOAD_REG_TO_REG
	OP_LOAD_DELAY_TIMER_TO_REG
	OP_LOAD_KEY_TO_REG
	OP_LOAD_REG_TO_DELAY_TIMER
	OP_LOAD_REG_TO_SOUND_TIMER
	OP_LOAD_VAL_TO_I
	OP_LOAD_SPRITE_LOCATION_TO_I
	OP_LOAD_REG_BCD_TO_MEM
	OP_LOAD_REGS_TO_MEM
	OP_LOAD_MEM_TO_REGS
	OP_LOAD_RANDOM_AND_VAL_TO_REG

	OP_ADD_VAL_TO_REG
	OP_ADD_REG_TO_REG
	OP_ADD_REG_TO_I
	OP_SUB_REG_FROM_REG
	OP_SUBN_REG_FROM_REG
	OP_OR_REG_REG
	OP_AND_REG_REG
	OP_XOR_REG_REG
	OP_SHIFT_RIGHT_REG
	OP_SHIFT_LEFT_REG
)

var opNames = [...]string{
	OP_UNKNOWN:                    "Unknown",
	OP_JUMP:                       "Jump",
	OP_JUMP_PLUS_V0:               "JumpPlusV0",
	OP_CALL:                       "Call",
	OP_RETURN:                     "Return",
	OP_SYSCALL:                    "SysCall",
	OP_CLEAR_SCREEN:               "ClearScreen",
	OP_DRAW_SPRITE:                "DrawSprite",
	OP_SKIP_IF_REG_VAL_EQUAL:      "SkipIfRegValEqual",
	OP_SKIP_IF_REG_VAL_NOT_EQUAL:  "SkipIfRegValNotEqual",
	OP_SKIP_IF_REG_REG_EQUAL:      "SkipIfRegRegEqual",
	OP_SKIP_IF_REG_REG_NOT_EQUAL:  "SkipIfRegRegNotEqual",
	OP_SKIP_IF_KEY_PRESSED:        "SkipIfKeyPressed",
	OP_SKIP_IF_KEY_NOT_PRESSED:    "SkipIfKeyNotPressed",
	OP_LOAD_VAL_TO_REG:            "LoadValToReg",
	OP_LOAD_REG_TO_REG:            "LoadRegToReg",
	OP_LOAD_DELAY_TIMER_TO_REG:    "LoadDelayTimerToReg",
	OP_LOAD_KEY_TO_REG:            "LoadKeyToReg",
	OP_LOAD_REG_TO_DELAY_TIMER:    "LoadRegToDelayTimer",
	OP_LOAD_REG_TO_SOUND_TIMER:    "LoadRegToSoundTimer",
	OP_LOAD_VAL_TO_I:              "LoadValToI",
	OP_LOAD_SPRITE_LOCATION_TO_I:  "LoadSpriteLocationToI",
	OP_LOAD_REG_BCD_TO_MEM:        "LoadRegBcdToMem",
	OP_LOAD_REGS_TO_MEM:           "LoadRegsToMem",
	OP_LOAD_MEM_TO_REGS:           "LoadMemToRegs",
	OP_LOAD_RANDOM_AND_VAL_TO_REG: "LoadRandomAndValToReg",
	OP_ADD_VAL_TO_REG:             "AddValToReg",
	OP_ADD_REG_TO_REG:             "AddRegToReg",
	OP_ADD_REG_TO_I:               "AddRegToI",
	OP_SUB_REG_FROM_REG:           "SubRegFromReg",
	OP_SUBN_REG_FROM_REG:          "SubnRegFromReg",
	OP_OR_REG_REG:                 "OrRegReg",
	OP_AND_REG_REG:                "AndRegReg",
	OP_XOR_REG_REG:                "XorRegReg",
	OP_SHIFT_RIGHT_REG:            "ShiftRightReg",
	OP_SHIFT_LEFT_REG:             "ShiftLeftReg",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

type Class uint8

const (
	CLASS_UNKNOWN Class = iota
	CLASS_FLOW_CONTROL
	CLASS_REGULAR
)

func (c Class) String() string {
	switch c {
	case CLASS_FLOW_CONTROL:
		return "FlowControl"
	case CLASS_REGULAR:
		return "Regular"
	default:
		return "Unknown"
	}
}

// Instruction is a decoded opcode. Only the operand fields named by the
// opcode's shape are set, the rest stay zero.
type Instruction struct {
	Op  Op
	Raw uint16

	X     uint8
	Y     uint8
	N     uint8
	Value uint8
	Addr  uint16
}

func (ins Instruction) Class() Class {
	switch ins.Op {
	case OP_UNKNOWN:
		return CLASS_UNKNOWN
	case OP_JUMP, OP_JUMP_PLUS_V0, OP_CALL, OP_RETURN:
		return CLASS_FLOW_CONTROL
	default:
		return CLASS_REGULAR
	}
}

type operand uint8

const (
	operandX operand = 1 << iota
	operandY
	operandN     // low nibble
	operandCount // second nibble, stored in N
	operandValue
	operandAddr
)

type shape struct {
	mask     uint16
	value    uint16
	op       Op
	operands operand
}

// Exact patterns come before the generic pattern sharing their leading
// nibble; the first match wins.
var shapes = [...]shape{
	{0xFFFF, 0x00E0, OP_CLEAR_SCREEN, 0},
	{0xFFFF, 0x00EE, OP_RETURN, 0},
	{0xF000, 0x0000, OP_SYSCALL, operandAddr},
	{0xF000, 0x1000, OP_JUMP, operandAddr},
	{0xF000, 0x2000, OP_CALL, operandAddr},
	{0xF000, 0x3000, OP_SKIP_IF_REG_VAL_EQUAL, operandX | operandValue},
	{0xF000, 0x4000, OP_SKIP_IF_REG_VAL_NOT_EQUAL, operandX | operandValue},
	{0xF00F, 0x5000, OP_SKIP_IF_REG_REG_EQUAL, operandX | operandY},
	{0xF000, 0x6000, OP_LOAD_VAL_TO_REG, operandX | operandValue},
	{0xF000, 0x7000, OP_ADD_VAL_TO_REG, operandX | operandValue},
	{0xF00F, 0x8000, OP_LOAD_REG_TO_REG, operandX | operandY},
	{0xF00F, 0x8001, OP_OR_REG_REG, operandX | operandY},
	{0xF00F, 0x8002, OP_AND_REG_REG, operandX | operandY},
	{0xF00F, 0x8003, OP_XOR_REG_REG, operandX | operandY},
	{0xF00F, 0x8004, OP_ADD_REG_TO_REG, operandX | operandY},
	{0xF00F, 0x8005, OP_SUB_REG_FROM_REG, operandX | operandY},
	{0xF00F, 0x8006, OP_SHIFT_LEFT_REG, operandX | operandY},
	{0xF00F, 0x8007, OP_SUBN_REG_FROM_REG, operandX | operandY},
	{0xF00F, 0x800E, OP_SHIFT_RIGHT_REG, operandX | operandY},
	{0xF00F, 0x9000, OP_SKIP_IF_REG_REG_NOT_EQUAL, operandX | operandY},
	{0xF000, 0xA000, OP_LOAD_VAL_TO_I, operandAddr},
	{0xF000, 0xB000, OP_JUMP_PLUS_V0, operandAddr},
	{0xF000, 0xC000, OP_LOAD_RANDOM_AND_VAL_TO_REG, operandX | operandValue},
	{0xF000, 0xD000, OP_DRAW_SPRITE, operandX | operandY | operandN},
	{0xF0FF, 0xE09E, OP_SKIP_IF_KEY_PRESSED, operandX},
	{0xF0FF, 0xE0A1, OP_SKIP_IF_KEY_NOT_PRESSED, operandX},
	{0xF0FF, 0xF007, OP_LOAD_DELAY_TIMER_TO_REG, operandX},
	{0xF0FF, 0xF00A, OP_LOAD_KEY_TO_REG, operandX},
	{0xF0FF, 0xF015, OP_LOAD_REG_TO_DELAY_TIMER, operandX},
	{0xF0FF, 0xF018, OP_LOAD_REG_TO_SOUND_TIMER, operandX},
	{0xF0FF, 0xF01E, OP_ADD_REG_TO_I, operandX},
	{0xF0FF, 0xF029, OP_LOAD_SPRITE_LOCATION_TO_I, operandX},
	{0xF0FF, 0xF033, OP_LOAD_REG_BCD_TO_MEM, operandX},
	{0xF0FF, 0xF055, OP_LOAD_REGS_TO_MEM, operandCount},
	{0xF0FF, 0xF065, OP_LOAD_MEM_TO_REGS, operandCount},
}

var shapeByOp = func() map[Op]shape {
	result := make(map[Op]shape, len(shapes))
	for _, s := range shapes {
		result[s.op] = s
	}
	return result
}()

// Decode classifies a 16-bit word. Every word decodes to something;
// unmatched patterns come back as OP_UNKNOWN carrying the raw word.
func Decode(word uint16) Instruction {
	for _, s := range shapes {
		if word&s.mask != s.value {
			continue
		}

		ins := Instruction{Op: s.op, Raw: word}
		nibbles := encoding.Nibbles(word)

		if s.operands&operandX != 0 {
			ins.X = nibbles[1]
		}
		if s.operands&operandY != 0 {
			ins.Y = nibbles[2]
		}
		if s.operands&operandN != 0 {
			ins.N = nibbles[3]
		}
		if s.operands&operandCount != 0 {
			ins.N = nibbles[1]
		}
		if s.operands&operandValue != 0 {
			ins.Value = encoding.Immediate(word)
		}
		if s.operands&operandAddr != 0 {
			ins.Addr = encoding.Address(word)
		}

		return ins
	}

	return Instruction{Op: OP_UNKNOWN, Raw: word}
}

// Encode is the inverse of Decode. Unknown instructions encode to their
// raw word.
func Encode(ins Instruction) uint16 {
	s, ok := shapeByOp[ins.Op]
	if !ok {
		return ins.Raw
	}

	word := s.value

	if s.operands&operandX != 0 {
		word |= uint16(ins.X&0xF) << 8
	}
	if s.operands&operandY != 0 {
		word |= uint16(ins.Y&0xF) << 4
	}
	if s.operands&operandN != 0 {
		word |= uint16(ins.N & 0xF)
	}
	if s.operands&operandCount != 0 {
		word |= uint16(ins.N&0xF) << 8
	}
	if s.operands&operandValue != 0 {
		word |= uint16(ins.Value)
	}
	if s.operands&operandAddr != 0 {
		word |= ins.Addr & 0x0FFF
	}

	return word
}

// String renders the structured form, e.g. LoadValToReg{x:0x5 value:0xab}.
func (ins Instruction) String() string {
	if ins.Op == OP_UNKNOWN {
		return fmt.Sprintf("Unknown{%#04x}", ins.Raw)
	}

	s, ok := shapeByOp[ins.Op]
	if !ok || s.operands == 0 {
		return ins.Op.String()
	}

	fields := make([]string, 0, 3)

	if s.operands&operandX != 0 {
		fields = append(fields, fmt.Sprintf("x:%#x", ins.X))
	}
	if s.operands&operandY != 0 {
		fields = append(fields, fmt.Sprintf("y:%#x", ins.Y))
	}
	if s.operands&(operandN|operandCount) != 0 {
		fields = append(fields, fmt.Sprintf("n:%#x", ins.N))
	}
	if s.operands&operandValue != 0 {
		fields = append(fields, fmt.Sprintf("value:%#02x", ins.Value))
	}
	if s.operands&operandAddr != 0 {
		fields = append(fields, fmt.Sprintf("addr:%#03x", ins.Addr))
	}

	return ins.Op.String() + "{" + strings.Join(fields, " ") + "}"
}

// Mnemonic renders the instruction in conventional CHIP-8 assembly.
func (ins Instruction) Mnemonic() string {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OP_CLEAR_SCREEN:
		return "CLS"
	case OP_RETURN:
		return "RET"
	case OP_SYSCALL:
		return fmt.Sprintf("SYS #%03X", ins.Addr)
	case OP_JUMP:
		return fmt.Sprintf("JP #%03X", ins.Addr)
	case OP_JUMP_PLUS_V0:
		return fmt.Sprintf("JP V0, #%03X", ins.Addr)
	case OP_CALL:
		return fmt.Sprintf("CALL #%03X", ins.Addr)
	case OP_SKIP_IF_REG_VAL_EQUAL:
		return fmt.Sprintf("SE V%X, #%02X", x, ins.Value)
	case OP_SKIP_IF_REG_VAL_NOT_EQUAL:
		return fmt.Sprintf("SNE V%X, #%02X", x, ins.Value)
	case OP_SKIP_IF_REG_REG_EQUAL:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case OP_SKIP_IF_REG_REG_NOT_EQUAL:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case OP_SKIP_IF_KEY_PRESSED:
		return fmt.Sprintf("SKP V%X", x)
	case OP_SKIP_IF_KEY_NOT_PRESSED:
		return fmt.Sprintf("SKNP V%X", x)
	case OP_LOAD_VAL_TO_REG:
		return fmt.Sprintf("LD V%X, #%02X", x, ins.Value)
	case OP_LOAD_REG_TO_REG:
		return fmt.Sprintf("LD V%X, V%X", x, y)
	case OP_LOAD_DELAY_TIMER_TO_REG:
		return fmt.Sprintf("LD V%X, DT", x)
	case OP_LOAD_KEY_TO_REG:
		return fmt.Sprintf("LD V%X, K", x)
	case OP_LOAD_REG_TO_DELAY_TIMER:
		return fmt.Sprintf("LD DT, V%X", x)
	case OP_LOAD_REG_TO_SOUND_TIMER:
		return fmt.Sprintf("LD ST, V%X", x)
	case OP_LOAD_VAL_TO_I:
		return fmt.Sprintf("LD I, #%03X", ins.Addr)
	case OP_LOAD_SPRITE_LOCATION_TO_I:
		return fmt.Sprintf("LD F, V%X", x)
	case OP_LOAD_REG_BCD_TO_MEM:
		return fmt.Sprintf("LD B, V%X", x)
	case OP_LOAD_REGS_TO_MEM:
		return fmt.Sprintf("LD [I], V%X", ins.N)
	case OP_LOAD_MEM_TO_REGS:
		return fmt.Sprintf("LD V%X, [I]", ins.N)
	case OP_LOAD_RANDOM_AND_VAL_TO_REG:
		return fmt.Sprintf("RND V%X, #%02X", x, ins.Value)
	case OP_ADD_VAL_TO_REG:
		return fmt.Sprintf("ADD V%X, #%02X", x, ins.Value)
	case OP_ADD_REG_TO_REG:
		return fmt.Sprintf("ADD V%X, V%X", x, y)
	case OP_ADD_REG_TO_I:
		return fmt.Sprintf("ADD I, V%X", x)
	case OP_SUB_REG_FROM_REG:
		return fmt.Sprintf("SUB V%X, V%X", x, y)
	case OP_SUBN_REG_FROM_REG:
		return fmt.Sprintf("SUBN V%X, V%X", x, y)
	case OP_OR_REG_REG:
		return fmt.Sprintf("OR V%X, V%X", x, y)
	case OP_AND_REG_REG:
		return fmt.Sprintf("AND V%X, V%X", x, y)
	case OP_XOR_REG_REG:
		return fmt.Sprintf("XOR V%X, V%X", x, y)
	case OP_SHIFT_RIGHT_REG:
		return fmt.Sprintf("SHR V%X", x)
	case OP_SHIFT_LEFT_REG:
		return fmt.Sprintf("SHL V%X", x)
	case OP_DRAW_SPRITE:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, ins.N)
	default:
		return fmt.Sprintf("DW #%04X", ins.Raw)
	}
}
