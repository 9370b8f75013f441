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

type Framebuffer [DISPLAY_SIZE]bool

type MachineState struct {
	Memory  [MEMORY_SIZE]byte
	Program uint16

	V     [REGISTER_COUNT]uint8
	Index uint16

	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	Keyboard [KEY_COUNT]bool
	Display  Framebuffer

	// Alternates on every random draw; not a random source
	Rng bool
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
}

type Machine struct {
	State    MachineState
	Debugger MachineDebugger
}
