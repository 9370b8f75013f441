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
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow = errors.New("return with empty stack")
	ErrOutOfBounds    = errors.New("memory access out of bounds")
	ErrROMTooLarge    = errors.New("rom does not fit in program memory")
)

// OutOfBoundsError reports a read of Len bytes at Addr past the end of
// memory.
type OutOfBoundsError struct {
	Addr uint16
	Len  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at %#04x exceeds memory", e.Len, e.Addr)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

func checkBounds(addr uint16, length int) error {
	if int(addr)+length > MEMORY_SIZE {
		return &OutOfBoundsError{Addr: addr, Len: length}
	}
	return nil
}
