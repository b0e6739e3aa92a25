package vm

import (
	"bytes"
	"strings"
	"testing"
)

// newLoaded returns a Machine with program written at address 0 and
// Stdout wired to a buffer, ready to Step/Run.
func newLoaded(program []uint16) (*Machine, *bytes.Buffer) {
	m := New()
	m.Load(program)
	out := &bytes.Buffer{}
	m.Stdout = out
	return m, out
}

func TestHalt(t *testing.T) {
	m, _ := newLoaded([]uint16{OpHalt})
	if err := m.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Halted() {
		t.Fatal("expected machine to be halted")
	}
	if m.PC() != 1 {
		t.Fatalf("halt must advance PC past its opcode word, got %d", m.PC())
	}
}

func TestSetLiteralAndRegister(t *testing.T) {
	// set r0 4; set r1 r0
	m, _ := newLoaded([]uint16{OpSet, M, 4, OpSet, M + 1, M, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := m.Registers()
	if r[0] != 4 {
		t.Fatalf("r0 = %d, want 4", r[0])
	}
	if r[1] != 4 {
		t.Fatalf("r1 = %d, want 4", r[1])
	}
}

func TestPushPop(t *testing.T) {
	m, _ := newLoaded([]uint16{OpPush, 7, OpPop, M, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Registers()[0] != 7 {
		t.Fatalf("r0 = %d, want 7", m.Registers()[0])
	}
	if len(m.Stack()) != 0 {
		t.Fatalf("stack should be empty after pop, got %v", m.Stack())
	}
}

func TestPopUnderflow(t *testing.T) {
	m, _ := newLoaded([]uint16{OpPop, M})
	err := m.Step()
	if _, ok := err.(*StackUnderflowError); !ok {
		t.Fatalf("expected *StackUnderflowError, got %v (%T)", err, err)
	}
}

func TestEqGt(t *testing.T) {
	tests := []struct {
		op        uint16
		b, c      uint16
		wantFlag  uint16
	}{
		{OpEq, 4, 4, 1},
		{OpEq, 4, 5, 0},
		{OpGt, 5, 4, 1},
		{OpGt, 4, 5, 0},
		{OpGt, 4, 4, 0},
	}
	for _, tc := range tests {
		m, _ := newLoaded([]uint16{tc.op, M, tc.b, tc.c, OpHalt})
		if err := m.Run(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Registers()[0]; got != tc.wantFlag {
			t.Fatalf("op %d(%d,%d) = %d, want %d", tc.op, tc.b, tc.c, got, tc.wantFlag)
		}
	}
}

func TestJmp(t *testing.T) {
	// jmp 4; out 65 (skipped); halt at 4
	m, out := newLoaded([]uint16{OpJmp, 4, OpOut, 65, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, jmp should have skipped the out instruction, got %q", out.String())
	}
}

func TestJtJf(t *testing.T) {
	// jt 1 4 -> jumps since 1 != 0
	m, _ := newLoaded([]uint16{OpJt, 1, 4, OpOut, 0, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PC() != 5 {
		t.Fatalf("expected halt at 4 (pc=5 after step), got %d", m.PC())
	}

	// jf 0 4 -> jumps since 0 == 0
	m2, _ := newLoaded([]uint16{OpJf, 0, 4, OpOut, 0, OpHalt})
	if err := m2.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m2.PC() != 5 {
		t.Fatalf("expected halt at 4 (pc=5 after step), got %d", m2.PC())
	}
}

func TestAddWrapsModulo(t *testing.T) {
	// add r0 32767 5 -> (32767+5) mod 32768 = 4
	m, _ := newLoaded([]uint16{OpAdd, M, 32767, 5, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 4 {
		t.Fatalf("add wraparound = %d, want 4", got)
	}
}

func TestMultWrapsModulo(t *testing.T) {
	// mult r0 200 200 -> 40000 mod 32768 = 7232
	m, _ := newLoaded([]uint16{OpMult, M, 200, 200, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 7232 {
		t.Fatalf("mult wraparound = %d, want 7232", got)
	}
}

func TestModByZero(t *testing.T) {
	m, _ := newLoaded([]uint16{OpMod, M, 4, 0})
	err := m.Step()
	if _, ok := err.(*DivideByZeroError); !ok {
		t.Fatalf("expected *DivideByZeroError, got %v (%T)", err, err)
	}
}

func TestMod(t *testing.T) {
	m, _ := newLoaded([]uint16{OpMod, M, 17, 5, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 2 {
		t.Fatalf("17 mod 5 = %d, want 2", got)
	}
}

func TestAndOr(t *testing.T) {
	m, _ := newLoaded([]uint16{OpAnd, M, 0b1100, 0b1010, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 0b1000 {
		t.Fatalf("and = %b, want %b", got, 0b1000)
	}

	m2, _ := newLoaded([]uint16{OpOr, M, 0b1100, 0b1010, OpHalt})
	if err := m2.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m2.Registers()[0]; got != 0b1110 {
		t.Fatalf("or = %b, want %b", got, 0b1110)
	}
}

func TestNot(t *testing.T) {
	m, _ := newLoaded([]uint16{OpNot, M, 0, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 0x7fff {
		t.Fatalf("not 0 = %d, want %d", got, 0x7fff)
	}
}

func TestRmemWmem(t *testing.T) {
	// wmem 10 42 ; rmem r0 10 ; halt
	m, _ := newLoaded([]uint16{OpWmem, 10, 42, OpRmem, M, 10, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != 42 {
		t.Fatalf("rmem after wmem = %d, want 42", got)
	}
}

func TestCallRet(t *testing.T) {
	// call 5; out 88 (after return); halt; out 65; ret
	m, out := newLoaded([]uint16{OpCall, 5, OpOut, 88, OpHalt, OpOut, 65, OpRet})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "AX" {
		t.Fatalf("call/ret output = %q, want %q", out.String(), "AX")
	}
}

func TestRetOnEmptyStackHaltsCleanly(t *testing.T) {
	m, _ := newLoaded([]uint16{OpRet})
	if err := m.Step(); err != nil {
		t.Fatalf("ret on empty stack must not error, got %v", err)
	}
	if !m.Halted() {
		t.Fatal("ret on empty stack must halt cleanly")
	}
}

func TestOut(t *testing.T) {
	m, out := newLoaded([]uint16{OpOut, 72, OpOut, 105, OpHalt})
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Hi" {
		t.Fatalf("out output = %q, want %q", out.String(), "Hi")
	}
}

func TestIn(t *testing.T) {
	m, _ := newLoaded([]uint16{OpIn, M, OpHalt})
	m.Stdin = strings.NewReader("Z")
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Registers()[0]; got != uint16('Z') {
		t.Fatalf("in = %d, want %d", got, 'Z')
	}
}

func TestInExhausted(t *testing.T) {
	m, _ := newLoaded([]uint16{OpIn, M})
	m.Stdin = strings.NewReader("")
	err := m.Step()
	if _, ok := err.(*InputExhaustedError); !ok {
		t.Fatalf("expected *InputExhaustedError, got %v (%T)", err, err)
	}
}

func TestNoop(t *testing.T) {
	m, _ := newLoaded([]uint16{OpNoop, OpHalt})
	if err := m.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PC() != 1 {
		t.Fatalf("noop pc = %d, want 1", m.PC())
	}
}

func TestUnknownOpcode(t *testing.T) {
	m, _ := newLoaded([]uint16{9999})
	err := m.Step()
	uo, ok := err.(*UnknownOpcodeError)
	if !ok {
		t.Fatalf("expected *UnknownOpcodeError, got %v (%T)", err, err)
	}
	if uo.Op != 9999 || uo.PC != 0 {
		t.Fatalf("unexpected error fields: %+v", uo)
	}
}

func TestInvalidOperand(t *testing.T) {
	// slot M+NumRegisters is past the last valid register.
	m, _ := newLoaded([]uint16{OpPush, M + NumRegisters})
	err := m.Step()
	if _, ok := err.(*InvalidOperandError); !ok {
		t.Fatalf("expected *InvalidOperandError, got %v (%T)", err, err)
	}
}

func TestSetRegisterPreload(t *testing.T) {
	m, out := newLoaded([]uint16{OpOut, M, OpHalt})
	m.SetRegister(0, 33)
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "!" {
		t.Fatalf("out with preloaded register = %q, want %q", out.String(), "!")
	}
}

// TestProgramCountingLoop runs a small end-to-end program that ties
// set, out, add (wrapping as a decrement) and jt together: it counts
// r0 down from 3 and prints each value until r0 reaches 0.
func TestProgramCountingLoop(t *testing.T) {
	// r0 = 3; loop: out r0; add r0 r0 32767 (r0--); jt r0 loop; halt
	program := []uint16{
		OpSet, M, 3, // 0: set r0 3
		OpOut, M, // 3: out r0
		OpAdd, M, M, 32767, // 5: add r0 r0 -1
		OpJt, M, 3, // 9: jt r0 3
		OpHalt, // 12
	}
	m, out := newLoaded(program)
	if err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := string([]byte{3, 2, 1})
	if out.String() != want {
		t.Fatalf("counting loop output = %v, want %v", []byte(out.String()), []byte(want))
	}
}

func TestLoadZeroFillsRemainder(t *testing.T) {
	m := New()
	m.Load([]uint16{1, 2, 3})
	m.memory[0] = 9
	m.Load([]uint16{5})
	if m.MemoryAt(0) != 5 {
		t.Fatalf("memory[0] = %d, want 5", m.MemoryAt(0))
	}
	if m.MemoryAt(1) != 0 {
		t.Fatalf("memory[1] = %d, want 0 (zero-filled by second Load)", m.MemoryAt(1))
	}
}
