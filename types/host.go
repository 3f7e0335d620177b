package types

import (
	"errors"

	"github.com/holiman/uint256"
)

// QueryFunc answers read-only environment and state queries. The argument is
// meaningful only for keys where QueryKey.HasArg is true and must be of
// ArgKind; the result must be of ResultKind for the key. There is no error
// channel: a host that cannot answer returns the zero value of the expected
// kind. Queries must be free of side effects.
type QueryFunc func(key QueryKey, arg Variant) Variant

// StoreStorageFunc writes a value to persistent storage under a key.
// Writing the zero value deletes the key. The write must be idempotent:
// applying the same key/value pair twice leaves state unchanged. Rolling
// back writes when the surrounding execution reverts is the host's
// responsibility.
type StoreStorageFunc func(key, value *uint256.Int)

// CallFunc services a nested call or contract creation. The input slice is
// call data or init code; the output slice is engine-owned scratch memory
// the host fills for the duration of the call only. For Create the output
// is at least CreateOutputSize bytes and the host writes the created
// contract's address into its first AddressLen bytes.
//
// A non-negative return is the gas remaining after the nested call. A
// negative return means the nested call raised an exception; the output
// contents are then undefined and the engine treats all forwarded gas as
// consumed.
//
// Servicing a call typically re-enters the engine recursively. The host
// must bound the recursion depth and carry the same callback contract
// through every nested invocation.
type CallFunc func(kind CallKind, gas Gas, addr Address, value *uint256.Int, input []byte, output []byte) Gas

// LogFunc records an emitted log. data is the non-indexed payload, topics
// holds between 0 and MaxLogTopics big-endian 256-bit values. Fire and
// forget: no return value, no failure signal. Emissions arrive in program
// order.
type LogFunc func(data []byte, topics []Hash)

// HostFuncs bundles the four callbacks an engine instance is bound to at
// creation. The opaque environment handle of a C-style registration is
// replaced by closure capture: each function carries whatever host state it
// needs, which keeps instances independently testable and avoids shared
// mutable globals. The engine never retains host state beyond the execution
// it was supplied for.
type HostFuncs struct {
	Query        QueryFunc
	StoreStorage StoreStorageFunc
	Call         CallFunc
	Log          LogFunc
}

// Validate checks that all four callbacks are bound.
func (h HostFuncs) Validate() error {
	if h.Query == nil {
		return errors.New("query callback is required")
	}
	if h.StoreStorage == nil {
		return errors.New("storage callback is required")
	}
	if h.Call == nil {
		return errors.New("call callback is required")
	}
	if h.Log == nil {
		return errors.New("log callback is required")
	}
	return nil
}
