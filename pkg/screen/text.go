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

package screen

import (
	"bufio"
	"io"

	"github.com/lassandro/gochip8/pkg/machine"
)

// Text writes each frame as DISPLAY_HEIGHT lines of DISPLAY_WIDTH glyphs.
type Text struct {
	Output *bufio.Writer

	Lit   byte
	Unlit byte

	// Moves the cursor home before each frame so frames overdraw
	Home bool
}

func NewText(w io.Writer) *Text {
	return &Text{
		Output: bufio.NewWriter(w),
		Lit:    '#',
		Unlit:  ' ',
	}
}

func (t *Text) Present(fb *machine.Framebuffer) error {
	if t.Home {
		if _, err := t.Output.WriteString("\033[H"); err != nil {
			return err
		}
	}

	for y := 0; y < machine.DISPLAY_HEIGHT; y++ {
		for x := 0; x < machine.DISPLAY_WIDTH; x++ {
			glyph := t.Unlit
			if fb.Pixel(x, y) {
				glyph = t.Lit
			}

			if err := t.Output.WriteByte(glyph); err != nil {
				return err
			}
		}

		if err := t.Output.WriteByte('\n'); err != nil {
			return err
		}
	}

	return t.Output.Flush()
}

func (t *Text) Close() error {
	return t.Output.Flush()
}
