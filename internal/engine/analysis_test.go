package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeJumpDests(t *testing.T) {
	code := []byte{
		byte(JUMPDEST),     // 0: valid
		byte(PUSH1), 0x5b,  // 1: data byte at 2 is not a dest
		byte(STOP),         // 3
		byte(JUMPDEST),     // 4: valid
	}
	bitmap := analyzeJumpDests(code)

	assert.True(t, validJumpDest(bitmap, 0))
	assert.False(t, validJumpDest(bitmap, 1))
	assert.False(t, validJumpDest(bitmap, 2), "push immediate must not count as a destination")
	assert.False(t, validJumpDest(bitmap, 3))
	assert.True(t, validJumpDest(bitmap, 4))
	assert.False(t, validJumpDest(bitmap, 5), "out of code range")
	assert.False(t, validJumpDest(bitmap, 1<<40), "far out of range")
}

func TestAnalyzePush32Immediate(t *testing.T) {
	code := make([]byte, 34)
	code[0] = byte(PUSH32)
	for i := 1; i <= 32; i++ {
		code[i] = byte(JUMPDEST)
	}
	code[33] = byte(JUMPDEST)

	bitmap := analyzeJumpDests(code)
	for i := uint64(0); i < 33; i++ {
		assert.False(t, validJumpDest(bitmap, i), "position %d", i)
	}
	assert.True(t, validJumpDest(bitmap, 33))
}

func TestOpCodeString(t *testing.T) {
	assert.Equal(t, "STOP", STOP.String())
	assert.Equal(t, "PUSH1", PUSH1.String())
	assert.Equal(t, "PUSH32", PUSH32.String())
	assert.Equal(t, "DUP3", OpCode(0x82).String())
	assert.Equal(t, "SWAP16", SWAP16.String())
	assert.Equal(t, "LOG0", LOG0.String())
	assert.Equal(t, "SELFDESTRUCT", SELFDESTRUCT.String())
	assert.Equal(t, "opcode(0xfe)", OpCode(0xfe).String())
}
