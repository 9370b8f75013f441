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

const (
	MEMORY_SIZE = 0x1000

	MEMSPACE_INTERPRETER uint16 = 0x0000
	MEMSPACE_PROGRAM     uint16 = 0x0200

	PROGRAM_SIZE = MEMORY_SIZE - 0x0200
)

const (
	REGISTER_COUNT = 16
	KEY_COUNT      = 16

	// VF doubles as the sprite collision flag
	REG_FLAG = 0xF
)

const (
	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32
	DISPLAY_SIZE   = DISPLAY_WIDTH * DISPLAY_HEIGHT

	SPRITE_WIDTH = 8
)

const INSTRUCTION_SIZE uint16 = 2
