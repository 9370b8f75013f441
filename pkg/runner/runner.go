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

// Package runner drives a machine for a fixed number of steps, presenting
// the framebuffer after every sprite draw.
package runner

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/screen"
)

type Runner struct {
	Machine   *machine.Machine
	Presenter screen.Presenter

	// Receives one line per step with the decoded instruction and the
	// resulting index and V registers. Nil disables tracing.
	Trace io.Writer

	// Iteration budget; zero runs until Halt
	Steps uint

	halted atomic.Bool
}

// Halt stops Run after the step in progress. Safe to call from another
// goroutine.
func (r *Runner) Halt() {
	r.halted.Store(true)
}

func (r *Runner) Halted() bool {
	return r.halted.Load()
}

// Run steps the machine until the budget is spent, Halt is called or a
// step fails, and reports how many steps completed.
func (r *Runner) Run() (uint, error) {
	var done uint

	for !r.halted.Load() && (r.Steps == 0 || done < r.Steps) {
		pc := r.Machine.State.Program

		ins, err := r.Machine.Step()

		if err != nil {
			return done, err
		}

		done++

		if r.Trace != nil {
			if err := r.trace(pc, ins); err != nil {
				return done, fmt.Errorf("writing trace: %w", err)
			}
		}

		if ins.Op == machine.OP_DRAW_SPRITE && r.Presenter != nil {
			if err := r.Presenter.Present(&r.Machine.State.Display); err != nil {
				return done, fmt.Errorf("presenting frame: %w", err)
			}
		}
	}

	return done, nil
}

func (r *Runner) trace(pc uint16, ins machine.Instruction) error {
	state := &r.Machine.State

	_, err := fmt.Fprintf(
		r.Trace,
		"%04X %04X %-40s I=%04X V=[% X]\n",
		pc,
		ins.Raw,
		ins,
		state.Index,
		state.V[:],
	)

	return err
}
