/*
 * synacorvm - Debugger command parser.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package command implements the interactive debugger's command
// language: step, continue, breakpoints, register/memory/stack
// inspection and disassembly. It is grounded in the teacher's
// command/parser package — a prefix-matched command table plus a
// small cursor over the input line — simplified down from the
// teacher's device-attach vocabulary to the handful of verbs a
// single-machine debugger needs.
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rcornwell/synacorvm/internal/disasm"
	"github.com/rcornwell/synacorvm/internal/vm"
	"github.com/rcornwell/synacorvm/util/hexfmt"
)

// cmd is one debugger verb: a name, the minimum unambiguous prefix
// length a user may type, and the handler that executes it.
type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *Debugger) (quit bool, err error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "continue", min: 1, process: cont},
	{name: "break", min: 2, process: breakCmd},
	{name: "delete", min: 3, process: deleteCmd},
	{name: "registers", min: 3, process: regs},
	{name: "memory", min: 3, process: mem},
	{name: "stack", min: 2, process: stackCmd},
	{name: "disassemble", min: 4, process: disassembleCmd},
	{name: "quit", min: 1, process: quit},
}

// Debugger drives a vm.Machine one instruction (or run-to-breakpoint)
// at a time, in response to ProcessCommand lines from the console
// reader. Unlike the teacher's CPU core, which runs on its own
// goroutine signaled over channels by a telnet-backed console, this
// debugger calls vm.Machine.Step directly between prompts — the VM is
// strictly synchronous (spec.md §5) and there is no second thread to
// coordinate with.
type Debugger struct {
	Machine     *vm.Machine
	Breakpoints map[uint16]bool
	Out         func(string)
}

// NewDebugger returns a Debugger wrapping m. out receives every line
// the debugger prints (registers, memory, disassembly, errors); the
// caller typically passes fmt.Println or a writer shared with the
// console reader's prompt.
func NewDebugger(m *vm.Machine, out func(string)) *Debugger {
	return &Debugger{Machine: m, Breakpoints: map[uint16]bool{}, Out: out}
}

// ProcessCommand parses and executes one command line. It reports quit
// only for the `quit` command; a machine that halts during
// `continue`/`step` is reported as halted and the session stays open.
func ProcessCommand(commandLine string, d *Debugger) (quit bool, err error) {
	line := &cmdLine{line: commandLine}
	name := line.getWord()

	matches := matchList(name)
	switch len(matches) {
	case 0:
		return false, fmt.Errorf("command not found: %s", name)
	case 1:
		return matches[0].process(line, d)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

// CompleteCmd returns the set of command names that could complete the
// (possibly partial) command typed so far, for the console reader's
// tab-completion.
func CompleteCmd(commandLine string) []string {
	line := &cmdLine{line: commandLine}
	name := line.getWord()
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, name) {
			out = append(out, c.name)
		}
	}
	return out
}

// matchCommand reports whether command is a prefix of match.name at
// least match.min characters long. Ambiguity across commands is
// decided by ProcessCommand from matchList's result.
func matchCommand(match cmd, command string) bool {
	if len(command) < match.min || len(command) > len(match.name) {
		return false
	}
	return strings.HasPrefix(match.name, command)
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var out []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			out = append(out, m)
		}
	}
	return out
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && line.line[line.pos] == ' ' {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

// getWord returns the next space-delimited token, advancing past it
// and any trailing spaces.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for line.pos < len(line.line) && line.line[line.pos] != ' ' {
		line.pos++
	}
	word := line.line[start:line.pos]
	line.skipSpace()
	return word
}

// getAddress parses the next token as a decimal or 0x-prefixed
// hexadecimal address in 0..vm.M-1. pc is the machine's current
// program counter, carried only as context for AddressOutOfRangeError
// — the debugger is the one place a user can type an address the VM
// itself would never produce, since resolveSource/resolveDest never
// yield one (see DESIGN.md).
func (line *cmdLine) getAddress(pc uint16) (uint16, error) {
	tok := line.getWord()
	if tok == "" {
		return 0, errors.New("expected an address")
	}
	base := 10
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		tok = tok[2:]
		base = 16
	}
	v, err := strconv.ParseUint(tok, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", tok, err)
	}
	if v >= vm.M {
		return 0, &vm.AddressOutOfRangeError{Addr: uint16(v), PC: pc}
	}
	return uint16(v), nil
}

// getCount parses the next token as a decimal count, defaulting to def
// when the line has nothing left.
func (line *cmdLine) getCount(def int) (int, error) {
	line.skipSpace()
	if line.isEOL() {
		return def, nil
	}
	tok := line.getWord()
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", tok, err)
	}
	return v, nil
}

// step n: execute n instructions (default 1), stopping early on halt,
// error, or a breakpoint.
func step(line *cmdLine, d *Debugger) (bool, error) {
	n, err := line.getCount(1)
	if err != nil {
		return false, err
	}
	slog.Debug("Command Step", "count", n)
	for i := 0; i < n; i++ {
		if d.Machine.Halted() {
			d.Out("machine halted")
			return false, nil
		}
		if err := d.Machine.Step(); err != nil {
			return false, err
		}
		if d.Breakpoints[d.Machine.PC()] {
			d.Out(fmt.Sprintf("breakpoint at %04x", d.Machine.PC()))
			break
		}
	}
	return false, nil
}

// continue: run until halt, error, or a breakpoint is reached.
func cont(_ *cmdLine, d *Debugger) (bool, error) {
	slog.Debug("Command Continue")
	for !d.Machine.Halted() {
		if err := d.Machine.Step(); err != nil {
			return false, err
		}
		if d.Breakpoints[d.Machine.PC()] {
			d.Out(fmt.Sprintf("breakpoint at %04x", d.Machine.PC()))
			return false, nil
		}
	}
	d.Out("machine halted")
	return false, nil
}

// break addr: set a breakpoint at addr.
func breakCmd(line *cmdLine, d *Debugger) (bool, error) {
	addr, err := line.getAddress(d.Machine.PC())
	if err != nil {
		return false, err
	}
	slog.Debug("Command Break", "addr", addr)
	d.Breakpoints[addr] = true
	return false, nil
}

// delete addr: clear a breakpoint at addr.
func deleteCmd(line *cmdLine, d *Debugger) (bool, error) {
	addr, err := line.getAddress(d.Machine.PC())
	if err != nil {
		return false, err
	}
	slog.Debug("Command Delete", "addr", addr)
	delete(d.Breakpoints, addr)
	return false, nil
}

// registers: print the PC and all 8 registers.
func regs(_ *cmdLine, d *Debugger) (bool, error) {
	slog.Debug("Command Registers")
	r := d.Machine.Registers()
	var pc strings.Builder
	hexfmt.FormatWord(&pc, d.Machine.PC())
	d.Out("pc=" + pc.String())
	for i, v := range r {
		var b strings.Builder
		hexfmt.FormatWord(&b, v)
		d.Out(fmt.Sprintf("r%d=%s", i, b.String()))
	}
	return false, nil
}

// memory addr [count]: print count words (default 8) starting at addr.
func mem(line *cmdLine, d *Debugger) (bool, error) {
	addr, err := line.getAddress(d.Machine.PC())
	if err != nil {
		return false, err
	}
	count, err := line.getCount(8)
	if err != nil {
		return false, err
	}
	slog.Debug("Command Memory", "addr", addr, "count", count)
	words := make([]uint16, 0, count)
	for i := 0; i < count; i++ {
		if int(addr)+i >= vm.M {
			break
		}
		words = append(words, d.Machine.MemoryAt(addr+uint16(i)))
	}
	var b strings.Builder
	hexfmt.FormatWords(&b, words)
	var a strings.Builder
	hexfmt.FormatWord(&a, addr)
	d.Out(fmt.Sprintf("%s: %s", a.String(), b.String()))
	return false, nil
}

// stack: print the stack, bottom first.
func stackCmd(_ *cmdLine, d *Debugger) (bool, error) {
	slog.Debug("Command Stack")
	s := d.Machine.Stack()
	if len(s) == 0 {
		d.Out("stack empty")
		return false, nil
	}
	var b strings.Builder
	hexfmt.FormatWords(&b, s)
	d.Out(b.String())
	return false, nil
}

// disassemble [addr] [count]: disassemble count instructions (default
// 1) starting at addr (default PC).
func disassembleCmd(line *cmdLine, d *Debugger) (bool, error) {
	line.skipSpace()
	addr := d.Machine.PC()
	if !line.isEOL() {
		a, err := line.getAddress(d.Machine.PC())
		if err != nil {
			return false, err
		}
		addr = a
	}
	count, err := line.getCount(1)
	if err != nil {
		return false, err
	}
	slog.Debug("Command Disassemble", "addr", addr, "count", count)
	for i := 0; i < count; i++ {
		text, next := disasm.One(d.Machine.MemoryAt, addr)
		d.Out(text)
		addr = next
	}
	return false, nil
}

// quit: end the debugger session.
func quit(_ *cmdLine, _ *Debugger) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
