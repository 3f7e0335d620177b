package types

import (
	"fmt"
	"sync"
)

// ReturnCode discriminates the outcome of an execution.
type ReturnCode int32

const (
	// ReturnStop means the execution ended by STOP or RETURN.
	ReturnStop ReturnCode = 0
	// ReturnSelfDestruct means the execution ended by SELFDESTRUCT.
	ReturnSelfDestruct ReturnCode = 1
	// ReturnException means the execution ended with an exception:
	// out of gas, invalid instruction, stack misuse, invalid jump or
	// call depth overflow. The protocol does not expose a finer-grained
	// fault reason at this layer.
	ReturnException ReturnCode = -1
)

func (c ReturnCode) String() string {
	switch c {
	case ReturnStop:
		return "stop"
	case ReturnSelfDestruct:
		return "selfdestruct"
	case ReturnException:
		return "exception"
	default:
		return fmt.Sprintf("ReturnCode(%d)", int32(c))
	}
}

// Result is the outcome of one execution. Exactly one terminal state is
// reached per execution:
//
//   - ReturnStop: Output and GasLeft are populated, GasLeft >= 0.
//   - ReturnSelfDestruct: Beneficiary is populated, there is no output.
//   - ReturnException: no payload at all, no partial success leaks out.
//
// A non-empty Output references engine-owned memory. The holder must call
// Release exactly once when done with it; after Release the Output slice
// must not be touched. Releasing twice or never is misuse the contract does
// not defend against, mirroring a manually scoped resource.
type Result struct {
	Code        ReturnCode
	Output      []byte
	GasLeft     Gas
	Beneficiary Address

	mem *outputBuffer
}

// Release returns the result's engine-owned output memory. It must be
// called exactly once per result; results without output memory tolerate
// the call as a no-op.
func (r *Result) Release() {
	if r.mem != nil {
		releaseOutput(r.mem)
		r.mem = nil
	}
	r.Output = nil
}

// StopResult builds a normal-stop result, copying output into engine-owned
// memory that the holder releases later. gasLeft must be non-negative.
func StopResult(output []byte, gasLeft Gas) Result {
	if gasLeft < 0 {
		panic("negative gas left in stop result")
	}
	if len(output) == 0 {
		return Result{Code: ReturnStop, GasLeft: gasLeft}
	}
	mem := borrowOutput(len(output))
	copy(mem.b, output)
	return Result{Code: ReturnStop, Output: mem.b, GasLeft: gasLeft, mem: mem}
}

// SelfDestructResult builds a self-destruct result. The remaining value of
// the contract goes to the beneficiary; there is no output and no gas field
// to consider.
func SelfDestructResult(beneficiary Address) Result {
	return Result{Code: ReturnSelfDestruct, Beneficiary: beneficiary}
}

// ExceptionResult builds an exception result.
func ExceptionResult() Result {
	return Result{Code: ReturnException}
}

// Output buffers are pooled so that Release has a real effect: it hands the
// memory back for reuse by later executions.

type outputBuffer struct {
	b []byte
}

var outputPool = sync.Pool{
	New: func() any {
		return &outputBuffer{b: make([]byte, 0, 256)}
	},
}

func borrowOutput(size int) *outputBuffer {
	mem := outputPool.Get().(*outputBuffer)
	if cap(mem.b) < size {
		mem.b = make([]byte, size)
	}
	mem.b = mem.b[:size]
	return mem
}

func releaseOutput(mem *outputBuffer) {
	mem.b = mem.b[:0]
	outputPool.Put(mem)
}
