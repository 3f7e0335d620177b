package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Params carries the inputs of one execution. Depth is the current call
// nesting level; a host servicing a nested call re-enters the engine with
// the callee frame's depth so the engine can enforce MaxCallDepth without
// hidden shared state.
type Params struct {
	// CodeHash identifies the bytecode, usually its Keccak-256 hash. The
	// engine uses it as the code cache key; the host usually has the hash
	// already.
	CodeHash Hash
	// Code is the bytecode to execute.
	Code []byte
	// Gas is the execution budget, in [0, 2^63-1].
	Gas Gas
	// Input is the call input data.
	Input []byte
	// Value is the call value, host-endian.
	Value uint256.Int
	// Depth is the call nesting level, 0 for a top-level execution.
	Depth int
}

// Validate checks the parameter ranges the boundary contract requires.
func (p *Params) Validate() error {
	if p.Gas < 0 {
		return fmt.Errorf("gas must be non-negative, got %d", p.Gas)
	}
	if p.Depth < 0 {
		return fmt.Errorf("depth must be non-negative, got %d", p.Depth)
	}
	return nil
}
