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

package machine_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/retroenv/retrogolib/assert"
)

func newMachine(t *testing.T, rom ...byte) *machine.Machine {
	t.Helper()

	var mc machine.Machine
	assert.NoError(t, mc.LoadROM(bytes.NewReader(rom)))

	return &mc
}

func TestReset(t *testing.T) {
	var state machine.MachineState

	state.V[3] = 9
	state.Stack = []uint16{0x300}
	state.Rng = true
	state.Reset()

	assert.Equal(t, machine.MEMSPACE_PROGRAM, state.Program)
	assert.Equal(t, uint8(0), state.V[3])
	assert.Equal(t, 0, len(state.Stack))
	assert.False(t, state.Rng)
}

func TestLoadROM(t *testing.T) {
	mc := newMachine(t, 0x12, 0x34, 0x56)

	assert.Equal(t, uint16(0x200), mc.State.Program)
	assert.Equal(t, byte(0x12), mc.State.Memory[0x200])
	assert.Equal(t, byte(0x34), mc.State.Memory[0x201])
	assert.Equal(t, byte(0x56), mc.State.Memory[0x202])
	assert.Equal(t, byte(0x00), mc.State.Memory[0x1FF])
}

func TestLoadROMFillsProgramSpace(t *testing.T) {
	rom := bytes.Repeat([]byte{0xAA}, machine.PROGRAM_SIZE)

	var mc machine.Machine
	assert.NoError(t, mc.LoadROM(bytes.NewReader(rom)))
	assert.Equal(t, byte(0xAA), mc.State.Memory[machine.MEMORY_SIZE-1])
}

func TestLoadROMTooLarge(t *testing.T) {
	rom := make([]byte, machine.PROGRAM_SIZE+1)

	var mc machine.Machine
	err := mc.LoadROM(bytes.NewReader(rom))
	assert.True(t, errors.Is(err, machine.ErrROMTooLarge))
}

func TestStepReturnsInstruction(t *testing.T) {
	mc := newMachine(t, 0x65, 0xAB)

	ins, err := mc.Step()
	assert.NoError(t, err)
	assert.Equal(t, machine.OP_LOAD_VAL_TO_REG, ins.Op)
	assert.Equal(t, uint8(0xAB), mc.State.V[5])
	assert.Equal(t, uint16(0x202), mc.State.Program)
}

func TestStepStackUnderflow(t *testing.T) {
	mc := newMachine(t, 0x00, 0xEE)
	before := mc.State.Clone()

	_, err := mc.Step()
	assert.Error(t, err, "step 0x0200: Return: return with empty stack")
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, before.Program, mc.State.Program)
}

func TestStepFetchOutOfBounds(t *testing.T) {
	var mc machine.Machine
	mc.State.Reset()
	mc.State.Program = machine.MEMORY_SIZE - 1

	_, err := mc.Step()
	assert.True(t, errors.Is(err, machine.ErrOutOfBounds))

	var boundsErr *machine.OutOfBoundsError
	assert.True(t, errors.As(err, &boundsErr))
	assert.Equal(t, uint16(machine.MEMORY_SIZE-1), boundsErr.Addr)
	assert.Equal(t, 2, boundsErr.Len)
}

func TestStepFetchLastWord(t *testing.T) {
	var mc machine.Machine
	mc.State.Reset()
	mc.State.Program = machine.MEMORY_SIZE - 2
	mc.State.Memory[machine.MEMORY_SIZE-2] = 0x61
	mc.State.Memory[machine.MEMORY_SIZE-1] = 0x07

	_, err := mc.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), mc.State.V[1])
}

func TestStepSpriteOutOfBounds(t *testing.T) {
	mc := newMachine(t, 0xD0, 0x15)
	mc.State.Index = machine.MEMORY_SIZE - 2
	mc.State.V[0xF] = 0x42
	before := mc.State.Clone()

	_, err := mc.Step()
	assert.True(t, errors.Is(err, machine.ErrOutOfBounds))
	assert.Equal(t, before.Program, mc.State.Program)
	assert.Equal(t, uint8(0x42), mc.State.V[0xF])
	assert.Equal(t, 0, mc.State.Display.Lit())
}

func TestStepDrawsSprite(t *testing.T) {
	mc := newMachine(t,
		0xA2, 0x08, // LD I, #208
		0x60, 0x3C, // LD V0, 60
		0xD0, 0x11, // DRW V0, V1, 1
		0xD0, 0x11, // DRW V0, V1, 1
		0xFF,
	)

	for i := 0; i < 3; i++ {
		_, err := mc.Step()
		assert.NoError(t, err)
	}

	assert.Equal(t, 8, mc.State.Display.Lit())
	assert.Equal(t, uint8(0), mc.State.V[0xF])

	_, err := mc.Step()
	assert.NoError(t, err)
	assert.Equal(t, 0, mc.State.Display.Lit())
	assert.Equal(t, uint8(1), mc.State.V[0xF])
}

func TestCloneIsIndependent(t *testing.T) {
	mc := newMachine(t, 0x23, 0x00)
	_, err := mc.Step()
	assert.NoError(t, err)

	clone := mc.State.Clone()
	clone.Stack[0] = 0x999
	clone.V[0] = 1
	clone.Memory[0x200] = 0

	assert.Equal(t, uint16(0x200), mc.State.Stack[0])
	assert.Equal(t, uint8(0), mc.State.V[0])
	assert.Equal(t, byte(0x23), mc.State.Memory[0x200])
}

type recordingDebugger struct {
	steps int
	reads []uint16
}

func (d *recordingDebugger) Step(mc *machine.Machine) {
	d.steps++
}

func (d *recordingDebugger) Read(addr uint16, mc *machine.Machine) {
	d.reads = append(d.reads, addr)
}

func TestStepDebuggerHooks(t *testing.T) {
	mc := newMachine(t, 0xA2, 0x04, 0xD0, 0x02, 0xF0, 0x90)

	dbg := &recordingDebugger{}
	mc.Debugger = dbg

	for i := 0; i < 2; i++ {
		_, err := mc.Step()
		assert.NoError(t, err)
	}

	assert.Equal(t, 2, dbg.steps)
	assert.Equal(t, []uint16{0x200, 0x201, 0x202, 0x203, 0x204, 0x205}, dbg.reads)
}
