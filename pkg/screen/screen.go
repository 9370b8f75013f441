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

// Package screen presents a CHIP-8 framebuffer to the user.
package screen

import (
	"github.com/lassandro/gochip8/pkg/machine"
)

// Presenter shows a completed frame. Implementations own their output
// surface and release it on Close.
type Presenter interface {
	Present(fb *machine.Framebuffer) error
	Close() error
}

// Discard drops every frame.
type Discard struct{}

func (Discard) Present(*machine.Framebuffer) error { return nil }

func (Discard) Close() error { return nil }
