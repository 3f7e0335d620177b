package types

import "fmt"

// CallKind is the kind of nested invocation requested through the call
// channel. The kinds differ in how value, address and state are scoped to
// the callee; the engine only selects the kind, the host implements the
// scoping.
type CallKind int32

const (
	// Call is a plain message call, CALL.
	Call CallKind = iota
	// DelegateCall runs the callee's code in the caller's context,
	// DELEGATECALL. The value parameter is ignored.
	DelegateCall
	// CallCode runs the callee's code against the caller's storage, CALLCODE.
	CallCode
	// Create deploys a new contract, CREATE. The input is init code, the
	// value is the endowment and the target address is ignored.
	Create
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case DelegateCall:
		return "delegatecall"
	case CallCode:
		return "callcode"
	case Create:
		return "create"
	default:
		return fmt.Sprintf("CallKind(%d)", int32(k))
	}
}

// CreateOutputSize is the minimum size in bytes of the output buffer the
// engine supplies for Create calls. The host writes the created contract's
// address into the first AddressLen bytes. On a failed create the buffer
// contents are undefined; the host need not zero it.
const CreateOutputSize = 160

// MaxLogTopics is the largest number of topics a single log emission
// can carry.
const MaxLogTopics = 4
