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
	"io"

	"github.com/lassandro/gochip8/pkg/encoding"
)

func (mc *MachineState) Reset() {
	*mc = MachineState{}

	// Everything below MEMSPACE_PROGRAM belongs to the interpreter
	mc.Program = MEMSPACE_PROGRAM
}

// Clone returns a copy that shares no storage with mc.
func (mc *MachineState) Clone() MachineState {
	clone := *mc
	if mc.Stack != nil {
		clone.Stack = make([]uint16, len(mc.Stack))
		copy(clone.Stack, mc.Stack)
	}
	return clone
}

func (mc *Machine) LoadROM(reader io.Reader) error {
	mc.State.Reset()

	rom, err := io.ReadAll(io.LimitReader(reader, PROGRAM_SIZE+1))

	if err != nil {
		return err
	}

	if len(rom) > PROGRAM_SIZE {
		return ErrROMTooLarge
	}

	copy(mc.State.Memory[MEMSPACE_PROGRAM:], rom)

	return nil
}

// Fetch reads the big-endian instruction word at the program counter.
func (mc *MachineState) Fetch() (uint16, error) {
	if err := checkBounds(mc.Program, int(INSTRUCTION_SIZE)); err != nil {
		return 0, err
	}

	return encoding.Word(mc.Memory[mc.Program], mc.Memory[mc.Program+1]), nil
}

func (mc *MachineState) sprite(n uint8) ([]byte, error) {
	if err := checkBounds(mc.Index, int(n)); err != nil {
		return nil, err
	}

	return mc.Memory[mc.Index : int(mc.Index)+int(n)], nil
}

// Execute applies one decoded instruction. Flow control instructions set
// the program counter themselves; everything else is followed by a 2 byte
// advance. A failed instruction leaves the state untouched.
func (mc *MachineState) Execute(ins Instruction) error {
	switch ins.Op {
	// 1nnn JP addr
	case OP_JUMP:
		mc.Program = ins.Addr
		return nil

	// Bnnn JP V0, addr
	case OP_JUMP_PLUS_V0:
		mc.Program = ins.Addr + uint16(mc.V[0])
		return nil

	// 2nnn CALL addr
	case OP_CALL:
		mc.Stack = append(mc.Stack, mc.Program)
		mc.Program = ins.Addr
		return nil

	// 00EE RET
	case OP_RETURN:
		if len(mc.Stack) == 0 {
			return ErrStackUnderflow
		}

		top := len(mc.Stack) - 1
		mc.Program = mc.Stack[top]
		mc.Stack = mc.Stack[:top]
		return nil
	}

	if err := mc.executeRegular(ins); err != nil {
		return err
	}

	mc.Program += INSTRUCTION_SIZE

	return nil
}

func (mc *MachineState) executeRegular(ins Instruction) error {
	switch ins.Op {
	// 6xkk LD Vx, byte
	case OP_LOAD_VAL_TO_REG:
		mc.V[ins.X] = ins.Value

	// Annn LD I, addr
	case OP_LOAD_VAL_TO_I:
		mc.Index = ins.Addr

	// Cxkk RND Vx, byte
	case OP_LOAD_RANDOM_AND_VAL_TO_REG:
		mc.V[ins.X] = mc.random() & ins.Value

	// 7xkk ADD Vx, byte
	case OP_ADD_VAL_TO_REG:
		mc.V[ins.X] += ins.Value

	// 3xkk SE Vx, byte
	case OP_SKIP_IF_REG_VAL_EQUAL:
		// The regular advance follows, giving a 4 byte skip
		if mc.V[ins.X] == ins.Value {
			mc.Program += INSTRUCTION_SIZE
		}

	// Dxyn DRW Vx, Vy, nibble
	case OP_DRAW_SPRITE:
		sprite, err := mc.sprite(ins.N)

		if err != nil {
			return err
		}

		if mc.Display.DrawSprite(sprite, mc.V[ins.X], mc.V[ins.Y]) {
			mc.V[REG_FLAG] = 1
		} else {
			mc.V[REG_FLAG] = 0
		}

	// 0nnn SYS addr, unknown words, and every opcode without an
	// implementation leave the state alone
	default:
	}

	return nil
}

// random yields the alternating 0/1 sequence the RND instruction masks.
func (mc *MachineState) random() uint8 {
	var bit uint8
	if mc.Rng {
		bit = 1
	}

	mc.Rng = !mc.Rng

	return bit
}

func (mc *Machine) watch(addr uint16, count int) {
	if mc.Debugger == nil {
		return
	}

	for i := 0; i < count; i++ {
		mc.Debugger.Read(addr+uint16(i), mc)
	}
}

// Step runs one fetch, decode and execute cycle and returns the decoded
// instruction.
func (mc *Machine) Step() (Instruction, error) {
	pc := mc.State.Program

	word, err := mc.State.Fetch()

	if err != nil {
		return Instruction{}, fmt.Errorf("step %#04x: %w", pc, err)
	}

	mc.watch(pc, int(INSTRUCTION_SIZE))

	ins := Decode(word)

	if err := mc.State.Execute(ins); err != nil {
		return ins, fmt.Errorf("step %#04x: %s: %w", pc, ins, err)
	}

	if ins.Op == OP_DRAW_SPRITE {
		mc.watch(mc.State.Index, int(ins.N))
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return ins, nil
}
