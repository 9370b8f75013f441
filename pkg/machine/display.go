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

func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb[x%DISPLAY_WIDTH+DISPLAY_WIDTH*(y%DISPLAY_HEIGHT)]
}

// Lit counts the pixels currently on.
func (fb *Framebuffer) Lit() int {
	count := 0
	for _, pixel := range fb {
		if pixel {
			count++
		}
	}
	return count
}

func (fb *Framebuffer) Clear() {
	for i := range fb {
		fb[i] = false
	}
}

// DrawSprite XORs one 8-pixel row per sprite byte onto the framebuffer,
// starting at (startX, startY). Both axes wrap around the screen edges.
// Returns true if any lit pixel was turned off.
func (fb *Framebuffer) DrawSprite(sprite []byte, startX, startY uint8) bool {
	collision := false

	for yy, line := range sprite {
		row := (int(startY) + yy) % DISPLAY_HEIGHT

		for xx := 0; xx < SPRITE_WIDTH; xx++ {
			// Most significant bit is the leftmost pixel
			pixel := (line>>(SPRITE_WIDTH-1-xx))&0x1 == 1
			pos := (int(startX)+xx)%DISPLAY_WIDTH + DISPLAY_WIDTH*row

			if fb[pos] && pixel {
				collision = true
			}

			fb[pos] = fb[pos] != pixel
		}
	}

	return collision
}
