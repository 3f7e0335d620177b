package main

import (
	"encoding/hex"
	"fmt"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	evmvm "github.com/evmvm/evmvm"
	"github.com/evmvm/evmvm/types"
)

const demoGas = 200000

// Stores 42 in slot 0, loads it back and returns it as a 32-byte word.
var demoCode = []byte{
	0x60, 0x2a, 0x60, 0x00, 0x55, // PUSH1 42, PUSH1 0, SSTORE
	0x60, 0x00, 0x54, // PUSH1 0, SLOAD
	0x60, 0x00, 0x52, // PUSH1 0, MSTORE
	0x60, 0x20, 0x60, 0x00, 0xf3, // PUSH1 32, PUSH1 0, RETURN
}

// demoHost backs the storage channel with an in-memory database and
// answers everything else with fixed values.
type demoHost struct {
	db *dbm.MemDB
}

func (h *demoHost) query(key types.QueryKey, arg types.Variant) types.Variant {
	switch key {
	case types.QueryNumber:
		return types.Int64Variant(1_234_567)
	case types.QueryTimestamp:
		return types.Int64Variant(1_700_000_000)
	case types.QueryGasLimit:
		return types.Int64Variant(30_000_000)
	case types.QueryStorage:
		raw := types.WordToHash(arg.Word())
		value, err := h.db.Get(raw.Bytes())
		if err != nil {
			panic(err)
		}
		if len(value) == 0 {
			return types.WordVariant(new(uint256.Int))
		}
		var stored types.Hash
		copy(stored[:], value)
		return types.WordVariant(types.HashToWord(stored))
	default:
		return types.ZeroVariant(key.ResultKind())
	}
}

func (h *demoHost) storeStorage(key, value *uint256.Int) {
	raw := types.WordToHash(key)
	if value.IsZero() {
		if err := h.db.Delete(raw.Bytes()); err != nil {
			panic(err)
		}
		return
	}
	stored := types.WordToHash(value)
	if err := h.db.Set(raw.Bytes(), stored.Bytes()); err != nil {
		panic(err)
	}
}

func (h *demoHost) call(kind types.CallKind, gas int64, addr types.Address, value *uint256.Int, input, output []byte) int64 {
	fmt.Printf("nested %s to %s refused\n", kind, addr)
	return -1
}

func (h *demoHost) log(data []byte, topics []types.Hash) {
	fmt.Printf("log: %d topics, data %s\n", len(topics), hex.EncodeToString(data))
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	host := &demoHost{db: dbm.NewMemDB()}
	vm, err := evmvm.NewVM(evmvm.HostFuncs{
		Query:        host.query,
		StoreStorage: host.storeStorage,
		Call:         host.call,
		Log:          host.log,
	}, evmvm.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer vm.Destroy()

	fmt.Printf("evmvm %s\n", evmvm.Version())

	result := vm.Execute(evmvm.Params{
		CodeHash: evmvm.CodeHash(demoCode),
		Code:     demoCode,
		Gas:      demoGas,
	})
	defer result.Release()

	fmt.Printf("result:   %s\n", result.Code)
	fmt.Printf("gas left: %d of %d\n", result.GasLeft, demoGas)
	fmt.Printf("output:   %s\n", hex.EncodeToString(result.Output))
}
