package evmvm

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmvm/evmvm/types"
)

func execute(t *testing.T, vm *VM, code []byte, gasBudget int64) Result {
	t.Helper()
	return vm.Execute(Params{
		CodeHash: CodeHash(code),
		Code:     code,
		Gas:      gasBudget,
	})
}

// Returns the 32-byte word found in storage slot 0.
var returnSlotZero = []byte{
	0x60, 0x00, 0x54, // PUSH1 0, SLOAD
	0x60, 0x00, 0x52, // PUSH1 0, MSTORE
	0x60, 0x20, 0x60, 0x00, 0xf3, // PUSH1 32, PUSH1 0, RETURN
}

// Stores 42 in slot 0.
var storeFortyTwo = []byte{
	0x60, 0x2a, 0x60, 0x00, 0x55, // PUSH1 42, PUSH1 0, SSTORE
	0x00, // STOP
}

func TestExecuteImmediateHalt(t *testing.T) {
	vm, _ := newMockVM(t)
	result := execute(t, vm, []byte{0x00}, TESTING_GAS)
	defer result.Release()

	require.Equal(t, types.ReturnStop, result.Code)
	// The halt instruction is free, so the whole budget comes back.
	assert.Equal(t, int64(TESTING_GAS), result.GasLeft)
	assert.Empty(t, result.Output)
}

func TestExecuteZeroGas(t *testing.T) {
	vm, _ := newMockVM(t)
	result := execute(t, vm, storeFortyTwo, 0)
	assert.Equal(t, types.ReturnException, result.Code)
}

func TestGasLeftNeverExceedsBudget(t *testing.T) {
	vm, _ := newMockVM(t)
	for _, code := range [][]byte{{0x00}, storeFortyTwo, returnSlotZero} {
		result := execute(t, vm, code, TESTING_GAS)
		if result.Code == types.ReturnStop {
			assert.GreaterOrEqual(t, result.GasLeft, int64(0))
			assert.LessOrEqual(t, result.GasLeft, int64(TESTING_GAS))
		}
		result.Release()
	}
}

func TestStorageWriteThenRead(t *testing.T) {
	vm, _ := newMockVM(t)

	result := execute(t, vm, storeFortyTwo, TESTING_GAS)
	require.Equal(t, types.ReturnStop, result.Code)
	result.Release()

	result = execute(t, vm, returnSlotZero, TESTING_GAS)
	defer result.Release()
	require.Equal(t, types.ReturnStop, result.Code)

	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.True(t, uint256.NewInt(42).Eq(types.HashToWord(out)))
}

func TestStorageWriteIdempotence(t *testing.T) {
	vm, _ := newMockVM(t)

	// Writing the same key/value twice must be observably identical to
	// writing it once.
	for i := 0; i < 2; i++ {
		result := execute(t, vm, storeFortyTwo, TESTING_GAS)
		require.Equal(t, types.ReturnStop, result.Code)
		result.Release()
	}

	result := execute(t, vm, returnSlotZero, TESTING_GAS)
	defer result.Release()
	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.True(t, uint256.NewInt(42).Eq(types.HashToWord(out)))
}

func TestStorageLoadUnsetIsZero(t *testing.T) {
	vm, _ := newMockVM(t)
	result := execute(t, vm, returnSlotZero, TESTING_GAS)
	defer result.Release()

	require.Equal(t, types.ReturnStop, result.Code)
	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.True(t, types.HashToWord(out).IsZero())
}

func TestNestedCallThroughHost(t *testing.T) {
	vm, host := newMockVM(t)

	// Callee: returns 0x2a as one word.
	callee := []byte{
		0x60, 0x2a, 0x60, 0x00, 0x52, // PUSH1 42, PUSH1 0, MSTORE
		0x60, 0x20, 0x60, 0x00, 0xf3, // PUSH1 32, PUSH1 0, RETURN
	}
	target := addr(0x05)
	host.contracts[target] = callee

	// Caller: CALL the callee with output region memory[0:32], then
	// return that region.
	caller := []byte{
		0x60, 0x20, // out size
		0x60, 0x00, // out offset
		0x60, 0x00, // in size
		0x60, 0x00, // in offset
		0x60, 0x00, // value
		0x60, 0x05, // address
		0x61, 0xc3, 0x50, // PUSH2 50000 gas
		0xf1,             // CALL
		0x50,             // POP success flag
		0x60, 0x20, 0x60, 0x00, 0xf3, // RETURN memory[0:32]
	}

	result := execute(t, vm, caller, TESTING_GAS)
	defer result.Release()
	require.Equal(t, types.ReturnStop, result.Code)

	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.True(t, uint256.NewInt(42).Eq(types.HashToWord(out)), "callee output must land in the caller's buffer")
	assert.Equal(t, []types.CallKind{types.Call}, host.callKinds)
}

func TestFailedCreateDoesNotAbortCaller(t *testing.T) {
	host := newMockHost(t)
	failCreate := host.Funcs()
	failCreate.Call = func(kind types.CallKind, gas int64, target types.Address, value *uint256.Int, input, output []byte) int64 {
		require.Equal(t, types.Create, kind)
		require.GreaterOrEqual(t, len(output), types.CreateOutputSize)
		return -1
	}
	vm, err := NewVM(failCreate)
	require.NoError(t, err)
	host.vm = vm
	defer vm.Destroy()

	// CREATE with empty init code, then return the pushed result word.
	code := []byte{
		0x60, 0x00, // size
		0x60, 0x00, // offset
		0x60, 0x00, // endowment
		0xf0,       // CREATE
		0x60, 0x00, 0x52, // MSTORE
		0x60, 0x20, 0x60, 0x00, 0xf3, // RETURN
	}
	result := execute(t, vm, code, TESTING_GAS)
	defer result.Release()

	// The failed sub-create is not a fault of the calling execution:
	// the withheld create reserve keeps it running to a normal stop.
	require.Equal(t, types.ReturnStop, result.Code)
	assert.Greater(t, result.GasLeft, int64(0))
	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.True(t, types.HashToWord(out).IsZero())
}

func TestCreateThroughHost(t *testing.T) {
	vm, host := newMockVM(t)

	code := []byte{
		0x60, 0x00, // size
		0x60, 0x00, // offset
		0x60, 0x00, // endowment
		0xf0,       // CREATE
		0x60, 0x00, 0x52, // MSTORE
		0x60, 0x20, 0x60, 0x00, 0xf3, // RETURN
	}
	result := execute(t, vm, code, TESTING_GAS)
	defer result.Release()
	require.Equal(t, types.ReturnStop, result.Code)

	out, err := types.NewHash(result.Output)
	require.NoError(t, err)
	assert.Equal(t, addr(0x01), types.HashToAddress(out), "created address comes back through the output buffer")
	assert.Equal(t, []types.CallKind{types.Create}, host.callKinds)
}

func TestLogsArriveInProgramOrder(t *testing.T) {
	vm, host := newMockVM(t)

	code := []byte{
		0x60, 0x01, 0x60, 0x00, 0x60, 0x00, 0xa1, // LOG1 topic 1
		0x60, 0x02, 0x60, 0x00, 0x60, 0x00, 0xa1, // LOG1 topic 2
		0x00,
	}
	result := execute(t, vm, code, TESTING_GAS)
	defer result.Release()
	require.Equal(t, types.ReturnStop, result.Code)

	require.Len(t, host.logs, 2)
	assert.Equal(t, types.WordToHash(uint256.NewInt(1)), host.logs[0].topics[0])
	assert.Equal(t, types.WordToHash(uint256.NewInt(2)), host.logs[1].topics[0])
}

func TestSelfDestructResult(t *testing.T) {
	vm, _ := newMockVM(t)
	result := execute(t, vm, []byte{0x60, 0xbe, 0xff}, TESTING_GAS)
	defer result.Release()

	require.Equal(t, types.ReturnSelfDestruct, result.Code)
	assert.Equal(t, addr(0xbe), result.Beneficiary)
	// No output view and no gas field to consider; Release must not try
	// to free output memory.
	assert.Empty(t, result.Output)
}

func TestNewVMRequiresAllCallbacks(t *testing.T) {
	host := newMockHost(t)
	funcs := host.Funcs()
	funcs.Log = nil
	_, err := NewVM(funcs)
	assert.Error(t, err)
}

func TestSetOption(t *testing.T) {
	vm, _ := newMockVM(t)
	assert.True(t, vm.SetOption("compat", "homestead"))
	assert.True(t, vm.SetOption("code-cache", "off"))
	assert.False(t, vm.SetOption("compat", "byzantium-ish"))
	assert.False(t, vm.SetOption("optimizer", "on"))
}

func TestConcurrentExecutions(t *testing.T) {
	// One instance, many executions from independent goroutines. The
	// host here must itself be concurrency-safe, so it answers from
	// fixed values only.
	host := HostFuncs{
		Query: func(key types.QueryKey, arg types.Variant) types.Variant {
			return types.ZeroVariant(key.ResultKind())
		},
		StoreStorage: func(key, value *uint256.Int) {},
		Call: func(kind types.CallKind, gas int64, target types.Address, value *uint256.Int, input, output []byte) int64 {
			return -1
		},
		Log: func(data []byte, topics []types.Hash) {},
	}
	vm, err := NewVM(host)
	require.NoError(t, err)
	defer vm.Destroy()

	code := []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := execute(t, vm, code, TESTING_GAS)
			defer result.Release()
			assert.Equal(t, types.ReturnStop, result.Code)
			assert.Len(t, result.Output, 32)
		}()
	}
	wg.Wait()
}

func TestDestroy(t *testing.T) {
	host := newMockHost(t)
	vm, err := NewVM(host.Funcs())
	require.NoError(t, err)
	host.vm = vm
	vm.Destroy()
	// Executing against a destroyed VM is undefined by contract and is
	// deliberately not exercised here.
}

func TestCodeHash(t *testing.T) {
	// Keccak-256 of the empty string.
	expected := types.ForceNewHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	assert.Equal(t, expected, CodeHash(nil))
	assert.NotEqual(t, CodeHash([]byte{1}), CodeHash([]byte{2}))
}
