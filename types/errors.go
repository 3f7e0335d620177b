package types

import "fmt"

// Execution faults. At the boundary all of these collapse into the single
// ReturnException code; the typed values exist for engine-internal handling
// and diagnostic logging only and never cross the protocol.

// OutOfGasError signals that the gas budget was exhausted.
type OutOfGasError struct{}

var _ error = OutOfGasError{}

func (o OutOfGasError) Error() string {
	return "out of gas"
}

// InvalidOpcodeError signals an undefined or unavailable instruction.
type InvalidOpcodeError struct {
	Opcode byte
}

var _ error = InvalidOpcodeError{}

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02x", e.Opcode)
}

// StackUnderflowError signals an instruction popping more operands than the
// stack holds.
type StackUnderflowError struct{}

var _ error = StackUnderflowError{}

func (e StackUnderflowError) Error() string {
	return "stack underflow"
}

// StackOverflowError signals that the operand stack limit was exceeded.
type StackOverflowError struct{}

var _ error = StackOverflowError{}

func (e StackOverflowError) Error() string {
	return "stack overflow"
}

// InvalidJumpError signals a jump to a destination that is not a JUMPDEST.
type InvalidJumpError struct {
	Dest uint64
}

var _ error = InvalidJumpError{}

func (e InvalidJumpError) Error() string {
	return fmt.Sprintf("invalid jump destination %d", e.Dest)
}

// CallDepthError signals that the call nesting limit was reached.
type CallDepthError struct {
	Depth int
}

var _ error = CallDepthError{}

func (e CallDepthError) Error() string {
	return fmt.Sprintf("max call depth exceeded at depth %d", e.Depth)
}
