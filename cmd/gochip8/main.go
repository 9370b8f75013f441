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
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/runner"
	"github.com/lassandro/gochip8/pkg/screen"
	"github.com/retroenv/retrogolib/buildinfo"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var helpvar bool
var debugvar bool
var tracevar bool
var versionvar bool
var stepsvar uint
var displayvar string

// Shared with the debugger REPL
var run *runner.Runner
var romImage []byte

const usage = "gochip8 [-debug] [-trace] [-steps N] [-display text|termbox|none] filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.BoolVar(
		&tracevar, "trace", false,
		"Prints every executed instruction with the resulting I and V "+
			"registers to stderr",
	)
	flag.BoolVar(&versionvar, "version", false, "Displays the version")
	flag.UintVar(
		&stepsvar, "steps", 1200,
		"Number of instructions to execute before exiting, 0 for no limit",
	)
	flag.StringVar(
		&displayvar, "display", "text",
		"Frame output: 'text' writes frames to stdout, 'termbox' paints "+
			"them on the terminal, 'none' discards them",
	)
	flag.Parse()
}

func newPresenter(name string, halt func()) (screen.Presenter, error) {
	switch name {
	case "text":
		text := screen.NewText(os.Stdout)
		text.Home = term.IsTerminal(int(os.Stdout.Fd()))

		if text.Home {
			checkTermSize()
			fmt.Print("\033[H\033[2J")
		}

		return text, nil

	case "termbox":
		if debugvar {
			return nil, errors.New("termbox display cannot share the terminal with -debug")
		}

		return screen.NewTermbox(halt)

	case "none":
		return screen.Discard{}, nil

	default:
		return nil, fmt.Errorf("unknown display '%s'", name)
	}
}

func gochip8() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if versionvar {
		fmt.Printf("gochip8 %s\n", buildinfo.Version(version, commit, date))
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	var err error
	romImage, err = os.ReadFile(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	var mc machine.Machine

	if err := mc.LoadROM(bytes.NewReader(romImage)); err != nil {
		log.Printf("loading %s: %v\n", args[0], err)
		return 1
	}

	run = &runner.Runner{
		Machine: &mc,
		Steps:   stepsvar,
	}

	presenter, err := newPresenter(displayvar, run.Halt)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer presenter.Close()

	run.Presenter = presenter

	if tracevar {
		run.Trace = os.Stderr
	}

	c := make(chan os.Signal, 1)
	defer signal.Stop(c)

	signal.Notify(c, os.Interrupt)

	var dbg *debugger.Debugger

	if debugvar {
		dbg = &debugger.Debugger{
			HandleBreak: handleBreak,
			HandleRead:  handleRead,
		}
		mc.Debugger = dbg

		go func() {
			for range c {
				fmt.Println()
				dbg.Interrupt()
			}
		}()
	} else {
		go func() {
			for range c {
				run.Halt()
			}
		}()
	}

	if displayvar != "termbox" {
		enterRawTerm()
		defer exitRawTerm()
	}

	if debugvar {
		debugREPL(dbg, &mc)
	}

	steps, err := run.Run()

	if tb, ok := presenter.(*screen.Termbox); ok {
		if !run.Halted() {
			tb.Wait()
		}

		// The error below must reach the restored terminal
		tb.Close()
	}

	if err != nil {
		exitRawTerm()
		log.Printf("halted after %d steps: %v\n", steps, err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(gochip8())
}
