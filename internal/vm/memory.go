package vm

// dest identifies where a resolved destination operand writes: either
// a direct memory address or a register index. Exactly one of the two
// forms is meaningful, selected by isRegister. The handle is purely a
// dispatch aid and never persisted; the stack itself stays an untyped
// []uint16.
type dest struct {
	addr       uint16
	reg        int
	isRegister bool
}

// resolveSource interprets a 16-bit operand slot under the
// addressing-mode rule: 0..M-1 is a literal value, M..M+7 is a
// register reference, anything higher is invalid.
func (m *Machine) resolveSource(slot uint16, pc uint16) (uint16, error) {
	if slot < M {
		return slot, nil
	}
	if slot < M+NumRegisters {
		return m.regs[slot-M], nil
	}
	return 0, &InvalidOperandError{Slot: slot, PC: pc}
}

// resolveDest interprets a 16-bit operand slot as a destination: a
// direct memory address below M, or a register reference at M..M+7.
func (m *Machine) resolveDest(slot uint16, pc uint16) (dest, error) {
	if slot < M {
		return dest{addr: slot}, nil
	}
	if slot < M+NumRegisters {
		return dest{reg: int(slot - M), isRegister: true}, nil
	}
	return dest{}, &InvalidOperandError{Slot: slot, PC: pc}
}

// write stores value (already reduced mod M by the caller) into a
// resolved destination.
func (m *Machine) write(d dest, value uint16) {
	if d.isRegister {
		m.regs[d.reg] = value
		return
	}
	m.memory[d.addr] = value
}

// fetchOperand reads the raw slot at pc+offset and resolves it as a
// source in one step — the common case for every arithmetic/logic op.
func (m *Machine) fetchOperand(pc uint16, offset uint16) (uint16, error) {
	slot := m.memory[pc+offset]
	return m.resolveSource(slot, pc)
}

// fetchDest reads the raw slot at pc+offset and resolves it as a
// destination.
func (m *Machine) fetchDest(pc uint16, offset uint16) (dest, error) {
	slot := m.memory[pc+offset]
	return m.resolveDest(slot, pc)
}

// push appends a word to the stack.
func (m *Machine) push(value uint16) {
	m.stack = append(m.stack, value)
}

// pop removes and returns the top of the stack. ok is false on an
// empty stack; the caller decides whether that is an error (`pop`) or
// a clean halt (`ret`).
func (m *Machine) pop() (value uint16, ok bool) {
	if len(m.stack) == 0 {
		return 0, false
	}
	n := len(m.stack) - 1
	value, m.stack = m.stack[n], m.stack[:n]
	return value, true
}
