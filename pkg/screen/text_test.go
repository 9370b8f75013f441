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

package screen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/screen"
	"github.com/retroenv/retrogolib/assert"
)

func TestTextPresent(t *testing.T) {
	var buf bytes.Buffer
	var fb machine.Framebuffer

	fb.DrawSprite([]byte{0xC0, 0x80}, 62, 0)

	text := screen.NewText(&buf)
	assert.NoError(t, text.Present(&fb))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, machine.DISPLAY_HEIGHT+1, len(lines))
	assert.Equal(t, "", lines[machine.DISPLAY_HEIGHT])

	blank := strings.Repeat(" ", machine.DISPLAY_WIDTH)
	assert.Equal(t, strings.Repeat(" ", 62)+"##", lines[0])
	assert.Equal(t, strings.Repeat(" ", 62)+"# ", lines[1])
	for _, line := range lines[2:machine.DISPLAY_HEIGHT] {
		assert.Equal(t, blank, line)
	}
}

func TestTextPresentHome(t *testing.T) {
	var buf bytes.Buffer
	var fb machine.Framebuffer

	text := screen.NewText(&buf)
	text.Home = true
	text.Lit, text.Unlit = '*', '.'

	fb.DrawSprite([]byte{0x80}, 0, 0)
	assert.NoError(t, text.Present(&fb))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[H*."))
	assert.Equal(t, machine.DISPLAY_SIZE-1, strings.Count(out, "."))
}

func TestDiscard(t *testing.T) {
	var p screen.Presenter = screen.Discard{}
	var fb machine.Framebuffer

	assert.NoError(t, p.Present(&fb))
	assert.NoError(t, p.Close())
}
