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

package main

import (
	"log"
	"os"

	"github.com/lassandro/gochip8/pkg/machine"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var termRestore *unix.Termios

func enterRawTerm() {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)

	if err != nil {
		panic(err)
	}

	restore := *termios
	termRestore = &restore
	termstate := *termios

	// Output processing stays on so frames keep their line breaks
	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		panic(err)
	}
}

func exitRawTerm() {
	if termRestore == nil {
		return
	}

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlSetTermios, termRestore,
	); err != nil {
		panic(err)
	}

	termRestore = nil
}

// checkTermSize warns when a whole frame will not fit on screen.
func checkTermSize() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))

	if err != nil {
		return
	}

	if width < machine.DISPLAY_WIDTH || height < machine.DISPLAY_HEIGHT {
		log.Printf(
			"terminal is %dx%d, frames need %dx%d\n",
			width, height, machine.DISPLAY_WIDTH, machine.DISPLAY_HEIGHT,
		)
	}
}
