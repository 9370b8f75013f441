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
	"sync"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/nsf/termbox-go"
)

// Termbox paints lit pixels as solid cells on a termbox surface. Only one
// may be open at a time.
//
// termbox owns the terminal while open, so SIGINT is never delivered.
// Instead a poller goroutine reads key events: Esc and Ctrl-C call quit,
// any key releases Wait.
type Termbox struct {
	Foreground termbox.Attribute

	quit   func()
	keys   chan termbox.Key
	done   chan struct{}
	closed sync.Once
}

// NewTermbox takes over the terminal. quit is called from the poller
// goroutine and must be safe for concurrent use.
func NewTermbox(quit func()) (*Termbox, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	tb := newTermbox(quit)

	go tb.poll()

	return tb, nil
}

func newTermbox(quit func()) *Termbox {
	return &Termbox{
		Foreground: termbox.ColorWhite,
		quit:       quit,
		keys:       make(chan termbox.Key, 1),
		done:       make(chan struct{}),
	}
}

func (tb *Termbox) poll() {
	defer close(tb.done)

	for tb.handle(termbox.PollEvent()) {
	}
}

// handle reacts to one input event and reports whether polling continues.
func (tb *Termbox) handle(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventInterrupt, termbox.EventError:
		return false

	case termbox.EventKey:
		if isQuitKey(ev.Key) && tb.quit != nil {
			tb.quit()
		}

		select {
		case tb.keys <- ev.Key:
		default:
		}
	}

	return true
}

func isQuitKey(key termbox.Key) bool {
	return key == termbox.KeyEsc || key == termbox.KeyCtrlC
}

// Wait blocks until a key is pressed after the call, or the terminal input
// fails. Keys pressed before Wait are discarded.
func (tb *Termbox) Wait() {
	select {
	case <-tb.keys:
	default:
	}

	select {
	case <-tb.keys:
	case <-tb.done:
	}
}

func (tb *Termbox) Present(fb *machine.Framebuffer) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}

	for y := 0; y < machine.DISPLAY_HEIGHT; y++ {
		for x := 0; x < machine.DISPLAY_WIDTH; x++ {
			if fb.Pixel(x, y) {
				termbox.SetCell(x, y, ' ', tb.Foreground, tb.Foreground)
			}
		}
	}

	return termbox.Flush()
}

// Close stops the poller and restores the terminal. Safe to call twice.
func (tb *Termbox) Close() error {
	tb.closed.Do(func() {
		// Interrupt blocks until PollEvent takes it, which never happens
		// if the poller already exited on an input error.
		go termbox.Interrupt()
		<-tb.done
		termbox.Close()
	})

	return nil
}
