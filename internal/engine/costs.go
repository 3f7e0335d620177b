package engine

// Fixed gas costs. Halting instructions (STOP, RETURN) are free, so a
// program that halts immediately returns its full budget.
const (
	GasZero     uint64 = 0  // STOP, RETURN
	GasBase     uint64 = 2  // ADDRESS, CALLER, CALLVALUE, PC, MSIZE, GAS, ...
	GasVeryLow  uint64 = 3  // ADD, SUB, PUSH, DUP, SWAP, MLOAD, MSTORE, ...
	GasLow      uint64 = 5  // MUL, DIV, MOD
	GasMid      uint64 = 8  // JUMP
	GasHigh     uint64 = 10 // JUMPI
	GasExt      uint64 = 20 // BALANCE, EXTCODESIZE, EXTCODECOPY base
	GasSload    uint64 = 50
	GasJumpDest uint64 = 1
)

// Storage write costs depend on whether the slot transitions from zero.
const (
	GasSstoreSet   uint64 = 20000 // zero -> non-zero
	GasSstoreReset uint64 = 5000  // any other transition
)

// Log costs.
const (
	GasLog      uint64 = 375 // per LOG instruction
	GasLogTopic uint64 = 375 // per topic
	GasLogData  uint64 = 8   // per byte of log data
)

// Call and create costs, charged before gas is forwarded to the host.
const (
	GasCall   uint64 = 40
	GasCreate uint64 = 32000
)

// GasMemoryWord is charged per 32-byte word of memory growth.
const GasMemoryWord uint64 = 3

// GasCopyWord is charged per 32-byte word copied by *COPY instructions.
const GasCopyWord uint64 = 3
