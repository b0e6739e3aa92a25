/*
 * synacorvm - Disassembler for trace output and the debugger.
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

// Package disasm renders one dispatched instruction as a human-readable
// mnemonic line, the way the teacher's emu/opcodemap (opcode -> name
// table) and emu/disassemble (formatter over that table) do for the
// IBM 370 instruction set.
package disasm

import (
	"fmt"
	"strings"

	"github.com/rcornwell/synacorvm/internal/vm"
)

// operandString renders a raw operand slot as the debugger would show
// it: "Rn" for a register reference, the bare literal otherwise.
func operandString(slot uint16) string {
	if slot >= vm.M && slot < vm.M+vm.NumRegisters {
		return fmt.Sprintf("R%d", slot-vm.M)
	}
	return fmt.Sprintf("%d", slot)
}

// One reads the instruction at addr from mem (as returned by
// vm.Machine.MemoryAt) and returns its disassembled text plus the
// address one past the instruction's last word. Reading past the end
// of a short, constructed program (e.g. mid-instruction at the image's
// tail) yields zero words rather than panicking, matching
// vm.Machine.MemoryAt's own read-of-zero-beyond-image behavior.
func One(at func(addr uint16) uint16, addr uint16) (text string, next uint16) {
	op := at(addr)
	if op >= vm.NumOpcodes {
		return fmt.Sprintf("%04x: <unknown opcode %d>", addr, op), addr + 1
	}

	n := vm.OperandCount[op]
	var b strings.Builder
	fmt.Fprintf(&b, "%04x: %-5s", addr, vm.Mnemonic[op])
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, " %s", operandString(at(addr+1+uint16(i))))
	}
	return b.String(), addr + 1 + uint16(n)
}
