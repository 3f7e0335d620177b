package engine

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/evmvm/evmvm/types"

	"github.com/evmvm/evmvm/internal/engine/gas"
)

// memory is the linear byte memory of one frame. Growth is charged per
// 32-byte word before it happens.
type memory struct {
	data []byte
}

// expand grows memory to cover [offset, offset+size), charging the meter
// for the growth. A zero size never grows memory.
func (m *memory) expand(offset, size uint64, meter gas.Meter) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	// Both the addition and the word rounding below can wrap; a region
	// that close to 2^64 can never be paid for anyway.
	if end < offset || end > math.MaxUint64-31 {
		return types.OutOfGasError{}
	}
	need := (end + 31) / 32 * 32
	if need <= uint64(len(m.data)) {
		return nil
	}
	grownWords := (need - uint64(len(m.data))) / 32
	if err := meter.Consume(grownWords * GasMemoryWord); err != nil {
		return err
	}
	m.data = append(m.data, make([]byte, need-uint64(len(m.data)))...)
	return nil
}

// view returns the memory region [offset, offset+size). The region must
// have been expanded first.
func (m *memory) view(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.data[offset : offset+size]
}

func (m *memory) set32(offset uint64, w *uint256.Int) {
	b := w.Bytes32()
	copy(m.data[offset:offset+32], b[:])
}

func (m *memory) get32(offset uint64) uint256.Int {
	var w uint256.Int
	w.SetBytes32(m.data[offset : offset+32])
	return w
}

func (m *memory) size() uint64 {
	return uint64(len(m.data))
}
