package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/evmvm/evmvm/types"

	enginecache "github.com/evmvm/evmvm/internal/engine/cache"
)

// CompatMode selects the protocol compatibility epoch.
type CompatMode int32

const (
	CompatFrontier CompatMode = iota
	CompatHomestead
	CompatMetropolis
)

// HasDelegateCall reports whether DELEGATECALL exists in this epoch.
func (m CompatMode) HasDelegateCall() bool {
	return m >= CompatHomestead
}

func (m CompatMode) String() string {
	switch m {
	case CompatFrontier:
		return "frontier"
	case CompatHomestead:
		return "homestead"
	case CompatMetropolis:
		return "metropolis"
	default:
		return "unknown"
	}
}

// Option names understood by SetOption.
const (
	OptionCompat    = "compat"
	OptionCodeCache = "code-cache"
)

// Instance is one isolation domain of the engine. It holds the callback
// bindings, the per-instance code cache and the configuration. An instance
// is safe to share across concurrent executions; separate instances share
// nothing.
type Instance struct {
	host   types.HostFuncs
	cache  *enginecache.Cache
	logger *zap.Logger

	mu        sync.RWMutex
	compat    CompatMode
	cacheMode enginecache.Mode
}

// New creates an instance bound to the given callbacks. All four are
// required.
func New(host types.HostFuncs, logger *zap.Logger) (*Instance, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instance{
		host:   host,
		cache:  enginecache.New(),
		logger: logger,
	}, nil
}

// SetOption applies a named configuration option. Unrecognized names or
// values report failure without mutating state.
func (i *Instance) SetOption(name, value string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch name {
	case OptionCompat:
		switch value {
		case "frontier":
			i.compat = CompatFrontier
		case "homestead":
			i.compat = CompatHomestead
		case "metropolis":
			i.compat = CompatMetropolis
		default:
			return false
		}
	case OptionCodeCache:
		switch value {
		case "on":
			i.cacheMode = enginecache.ModeOn
		case "off":
			i.cacheMode = enginecache.ModeOff
		case "read-only":
			i.cacheMode = enginecache.ModeReadOnly
		default:
			return false
		}
	default:
		return false
	}
	i.logger.Debug("option set", zap.String("name", name), zap.String("value", value))
	return true
}

// Execute runs bytecode to one terminal state. All faults collapse into an
// exception result; the typed fault only reaches the debug log.
func (i *Instance) Execute(p types.Params) types.Result {
	if err := p.Validate(); err != nil {
		i.logger.Debug("invalid execution params", zap.Error(err))
		return types.ExceptionResult()
	}
	if p.Depth >= types.MaxCallDepth {
		i.logger.Debug("execution fault", zap.Error(types.CallDepthError{Depth: p.Depth}))
		return types.ExceptionResult()
	}

	i.mu.RLock()
	compat := i.compat
	cacheMode := i.cacheMode
	i.mu.RUnlock()

	entry := i.analyzed(p.CodeHash, p.Code, cacheMode)
	f := newFrame(i.host, compat, entry, &p)

	i.logger.Debug("execute",
		zap.Stringer("code_hash", p.CodeHash),
		zap.Int64("gas", p.Gas),
		zap.Int("depth", p.Depth))

	result, err := f.run()
	if err != nil {
		i.logger.Debug("execution fault", zap.Error(err))
		return types.ExceptionResult()
	}
	i.logger.Debug("execution done",
		zap.Stringer("code", result.Code),
		zap.Int64("gas_left", result.GasLeft))
	return result
}

// analyzed returns the jumpdest analysis for the code, served from the
// cache when the mode allows it.
func (i *Instance) analyzed(codeHash types.Hash, code []byte, mode enginecache.Mode) *cacheEntry {
	if mode != enginecache.ModeOff {
		if e, ok := i.cache.Load(codeHash); ok {
			return &cacheEntry{code: e.Code, jumpDests: e.JumpDests}
		}
	}
	bitmap := analyzeJumpDests(code)
	if mode == enginecache.ModeOn {
		i.cache.Save(codeHash, &enginecache.Entry{Code: code, JumpDests: bitmap})
	}
	return &cacheEntry{code: code, jumpDests: bitmap}
}

// Cache exposes the instance's code cache for inspection.
func (i *Instance) Cache() *enginecache.Cache {
	return i.cache
}

// Close releases instance resources. No operation on the instance is
// defined after Close.
func (i *Instance) Close() {
	i.cache.Clear()
	i.logger.Debug("instance closed")
}
