package engine

// analyzeJumpDests builds a bitmap of valid JUMPDEST positions. Push
// immediates are skipped so data bytes that happen to equal 0x5b are not
// treated as destinations.
func analyzeJumpDests(code []byte) []byte {
	bitmap := make([]byte, (len(code)+7)/8)
	for pc := 0; pc < len(code); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			bitmap[pc/8] |= 1 << (pc % 8)
		} else if op.IsPush() {
			pc += int(op - PUSH1 + 1)
		}
	}
	return bitmap
}

func validJumpDest(bitmap []byte, dest uint64) bool {
	if dest/8 >= uint64(len(bitmap)) {
		return false
	}
	return bitmap[dest/8]&(1<<(dest%8)) != 0
}
