package vm

// Opcode definitions, one per dispatch-table slot. Named the way the
// teacher names its instruction set (Op-prefixed constants in a
// dedicated block), but there are only 22 of them here against the
// teacher's 256-entry IBM 370 instruction set.
const (
	OpHalt uint16 = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop

	// NumOpcodes is one past the highest valid opcode; also the
	// dispatch table's length.
	NumOpcodes
)

// OperandCount gives the number of operand slots following the opcode
// word for each instruction. The handlers in dispatch.go do not read
// this table: straight-line ops pass their own count to advance, and
// branch-shaped ops (jmp, jt, jf, call, ret) set PC themselves. It is
// used by the disassembler, which must know how many words an
// instruction spans regardless of whether it branches.
var OperandCount = [NumOpcodes]int{
	OpHalt: 0,
	OpSet:  2,
	OpPush: 1,
	OpPop:  1,
	OpEq:   3,
	OpGt:   3,
	OpJmp:  1,
	OpJt:   2,
	OpJf:   2,
	OpAdd:  3,
	OpMult: 3,
	OpMod:  3,
	OpAnd:  3,
	OpOr:   3,
	OpNot:  2,
	OpRmem: 2,
	OpWmem: 2,
	OpCall: 1,
	OpRet:  0,
	OpOut:  1,
	OpIn:   1,
	OpNoop: 0,
}

// Mnemonic names the opcode at index op, for the disassembler and
// trace output.
var Mnemonic = [NumOpcodes]string{
	OpHalt: "halt",
	OpSet:  "set",
	OpPush: "push",
	OpPop:  "pop",
	OpEq:   "eq",
	OpGt:   "gt",
	OpJmp:  "jmp",
	OpJt:   "jt",
	OpJf:   "jf",
	OpAdd:  "add",
	OpMult: "mult",
	OpMod:  "mod",
	OpAnd:  "and",
	OpOr:   "or",
	OpNot:  "not",
	OpRmem: "rmem",
	OpWmem: "wmem",
	OpCall: "call",
	OpRet:  "ret",
	OpOut:  "out",
	OpIn:   "in",
	OpNoop: "noop",
}
