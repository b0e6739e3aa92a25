/*
 * synacorvm - Machine state: memory, registers and stack.
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

// Package vm implements the Synacor 15-bit word machine: a flat memory
// image, 8 registers, an untyped value/call stack, and the 22-opcode
// dispatcher that interprets a loaded program.
package vm

import "io"

const (
	// M is the arithmetic modulus and the address-space ceiling. Every
	// word stored in memory or a register satisfies 0 <= v < M.
	M = 32768

	// NumRegisters is the size of the register file.
	NumRegisters = 8

	// regBase is the first operand-slot value that refers to a register.
	// Slots in [regBase, regBase+NumRegisters) address registers 0..7;
	// slots below it are literal values or, as a destination, direct
	// memory addresses; slots at or above regBase+NumRegisters are
	// invalid.
	regBase = M
)

// Machine holds the full state of one Synacor VM instance: memory,
// registers, stack and program counter. A Machine owns its resources
// exclusively; nothing about it is safe for concurrent use by more than
// one goroutine.
type Machine struct {
	memory   [M]uint16
	regs     [NumRegisters]uint16
	stack    []uint16
	pc       uint16
	halted   bool
	dispatch [NumOpcodes]func(m *Machine) error

	// Stdin and Stdout are the byte streams opcodes `in` and `out`
	// exchange with the host. They default to nil; callers must set
	// them (typically os.Stdin / os.Stdout, or a seeded reader) before
	// calling Run or Step on a program that performs I/O.
	Stdin  io.ByteReader
	Stdout io.Writer

	// Trace, if non-nil, is called with the PC of every instruction
	// immediately before it executes. Used by the --trace CLI flag and
	// the interactive debugger; nil disables tracing entirely (the
	// hot path performs no tracing work when it is unset).
	Trace func(pc uint16)
}

// New returns a Machine with zeroed registers, an empty stack, and PC
// at address 0 — the documented initial state. The memory image starts
// out all zero; callers load a program into it with Load before Run.
func New() *Machine {
	m := &Machine{}
	m.buildDispatch()
	return m
}

// PC returns the current program counter.
func (m *Machine) PC() uint16 { return m.pc }

// Halted reports whether the halt flag has been set.
func (m *Machine) Halted() bool { return m.halted }

// Registers returns a copy of the register file, for inspection by the
// debugger and by tests.
func (m *Machine) Registers() [NumRegisters]uint16 { return m.regs }

// SetRegister preloads register r (0..7) to value, for test harnesses
// that exercise an opcode in isolation without running a full loader
// step (spec.md scenario 2's preload-then-run form).
func (m *Machine) SetRegister(r int, value uint16) { m.regs[r] = value }

// Stack returns a copy of the current stack, bottom first, for
// inspection by the debugger and by tests.
func (m *Machine) Stack() []uint16 {
	s := make([]uint16, len(m.stack))
	copy(s, m.stack)
	return s
}

// Load copies program into memory starting at address 0, zero-filling
// the remainder of the address space. It is a programming error to call
// Load with more than M words; callers that read from an external
// source should use the loader package, which enforces the ceiling as
// ProgramTooLargeError before this point is ever reached.
func (m *Machine) Load(program []uint16) {
	n := copy(m.memory[:], program)
	for i := n; i < M; i++ {
		m.memory[i] = 0
	}
}

// MemoryAt returns the raw word stored at addr, without the
// register-addressing interpretation resolve applies. Used by the
// debugger's `memory` and `disassemble` commands and by the --trace
// hook.
func (m *Machine) MemoryAt(addr uint16) uint16 { return m.memory[addr] }

// SetPC forces the program counter.
func (m *Machine) SetPC(pc uint16) { m.pc = pc }
