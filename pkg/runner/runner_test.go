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

package runner_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/runner"
	"github.com/retroenv/retrogolib/assert"
)

type framePresenter struct {
	frames []int
	err    error
	closed bool
}

func (p *framePresenter) Present(fb *machine.Framebuffer) error {
	p.frames = append(p.frames, fb.Lit())
	return p.err
}

func (p *framePresenter) Close() error {
	p.closed = true
	return nil
}

func load(t *testing.T, rom ...byte) *machine.Machine {
	t.Helper()

	var mc machine.Machine
	assert.NoError(t, mc.LoadROM(bytes.NewReader(rom)))

	return &mc
}

// Draws the sprite at #20A, then flips it back off, forever
var blinkROM = []byte{
	0xA2, 0x0A, // 200: LD I, #20A
	0xD0, 0x01, // 202: DRW V0, V0, 1
	0xD0, 0x01, // 204: DRW V0, V0, 1
	0x12, 0x02, // 206: JP #202
	0x00, 0x00, // 208
	0xF0, // 20A
}

func TestRunBudget(t *testing.T) {
	mc := load(t, blinkROM...)
	presenter := &framePresenter{}

	r := runner.Runner{Machine: mc, Presenter: presenter, Steps: 7}
	done, err := r.Run()

	assert.NoError(t, err)
	assert.Equal(t, uint(7), done)
	assert.Equal(t, []int{4, 0, 4, 0}, presenter.frames)
	assert.Equal(t, uint16(0x202), mc.State.Program)
}

func TestRunTrace(t *testing.T) {
	mc := load(t, 0x65, 0xAB, 0xA1, 0x23)

	var trace bytes.Buffer
	r := runner.Runner{Machine: mc, Trace: &trace, Steps: 2}
	_, err := r.Run()
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "0200 65AB LoadValToReg{x:0x5 value:0xab}"))
	assert.True(t, strings.HasSuffix(lines[0], "I=0000 V=[00 00 00 00 00 AB 00 00 00 00 00 00 00 00 00 00]"))
	assert.True(t, strings.HasPrefix(lines[1], "0202 A123 LoadValToI{addr:0x123}"))
	assert.True(t, strings.Contains(lines[1], "I=0123"))
}

func TestRunStopsOnError(t *testing.T) {
	mc := load(t, 0x60, 0x01, 0x00, 0xEE)

	r := runner.Runner{Machine: mc, Steps: 10}
	done, err := r.Run()

	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint(1), done)
	assert.Equal(t, uint16(0x202), mc.State.Program)
}

func TestRunPresenterError(t *testing.T) {
	mc := load(t, blinkROM...)
	failure := errors.New("surface gone")

	r := runner.Runner{Machine: mc, Presenter: &framePresenter{err: failure}, Steps: 10}
	done, err := r.Run()

	assert.True(t, errors.Is(err, failure))
	assert.Equal(t, uint(2), done)
}

type haltAfter struct {
	r     *runner.Runner
	steps int
}

func (h *haltAfter) Step(mc *machine.Machine) {
	h.steps--
	if h.steps == 0 {
		h.r.Halt()
	}
}

func (h *haltAfter) Read(uint16, *machine.Machine) {}

func TestRunUnboundedUntilHalt(t *testing.T) {
	mc := load(t, blinkROM...)

	r := &runner.Runner{Machine: mc}
	mc.Debugger = &haltAfter{r: r, steps: 25}

	done, err := r.Run()
	assert.NoError(t, err)
	assert.Equal(t, uint(25), done)
	assert.True(t, r.Halted())
}
