// Package evmvm is the boundary between a host application and an EVM
// bytecode execution engine. The host binds four callbacks (query, storage
// write, call, log) to a VM instance; during execution the engine calls
// back into the host, synchronously and in program order, whenever bytecode
// touches external state. The host knows nothing about interpretation, the
// engine knows nothing about storage or the account model.
package evmvm

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/evmvm/evmvm/internal/engine"
	"github.com/evmvm/evmvm/types"
)

// HostFuncs is the callback bundle a VM is bound to at creation.
type HostFuncs = types.HostFuncs

// Params carries the inputs of one execution.
type Params = types.Params

// Result is the outcome of one execution. Call Release exactly once on
// results carrying output memory.
type Result = types.Result

// VM is the main entry point to this library. One VM is one isolation
// domain: it owns a code cache and a configuration and is safe to share
// across concurrent executions. Separate VMs share nothing.
type VM struct {
	inst *engine.Instance
}

// Option configures a VM at creation time.
type Option func(*vmConfig)

type vmConfig struct {
	logger *zap.Logger
}

// WithLogger attaches a logger to the VM. Without it the VM is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(c *vmConfig) {
		c.logger = logger
	}
}

// NewVM creates a VM bound to the given host callbacks. All four callbacks
// are required; a nil callback is an error.
func NewVM(host HostFuncs, opts ...Option) (*VM, error) {
	cfg := vmConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	inst, err := engine.New(host, cfg.logger)
	if err != nil {
		return nil, err
	}
	return &VM{inst: inst}, nil
}

// SetOption applies a named configuration option and reports whether it
// was recognized and applied. Recognized options:
//
//	"compat"     - compatibility epoch: "frontier", "homestead", "metropolis"
//	"code-cache" - code cache behavior: "on", "off", "read-only"
//
// Options may be changed any number of times before or between executions.
func (vm *VM) SetOption(name, value string) bool {
	return vm.inst.SetOption(name, value)
}

// Execute runs bytecode against the VM's callbacks and returns exactly one
// terminal result: normal stop, self destruct or exception. The call does
// not return until every nested query, storage, call and log interaction
// it triggered has completed.
func (vm *VM) Execute(p Params) Result {
	return vm.inst.Execute(p)
}

// Destroy releases the VM. It must be called exactly once; any use of the
// VM after Destroy is undefined.
func (vm *VM) Destroy() {
	vm.inst.Close()
}

// CodeHash computes the Keccak-256 hash of bytecode, the conventional code
// identifier passed in Params.CodeHash. Hosts that already track code
// hashes need not use it.
func CodeHash(code []byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(code)
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}
