package types

// Gas is an execution budget. The boundary carries it as a signed 64-bit
// integer: execute accepts values in [0, 2^63-1], and the call channel uses
// negative values to signal a failed nested call.
type Gas = int64

// MaxCallDepth is the largest nesting depth of calls an execution may
// reach. A call attempted at this depth fails without reaching the host.
const MaxCallDepth = 1024
