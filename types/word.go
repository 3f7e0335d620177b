package types

import (
	"github.com/holiman/uint256"
)

// The engine computes on host-endian 256-bit words (uint256.Int: four 64-bit
// limbs, limb 0 least significant). The host side of the boundary often deals
// in big-endian 32-byte buffers (hashes, storage keys, log topics). The
// conversions here are exact reversals of word and intra-word byte order and
// round-trip losslessly.

// WordToHash converts a host-endian word to its big-endian byte form.
func WordToHash(w *uint256.Int) Hash {
	return Hash(w.Bytes32())
}

// HashToWord converts a big-endian 32-byte buffer to a host-endian word.
func HashToWord(h Hash) *uint256.Int {
	return new(uint256.Int).SetBytes32(h[:])
}

// AddressToWord promotes a 160-bit address to a full 256-bit word,
// equivalent to 12 leading zero bytes followed by the address bytes.
func AddressToWord(a Address) *uint256.Int {
	return new(uint256.Int).SetBytes(a[:])
}

// WordToAddress truncates a 256-bit word to its low 160 bits.
func WordToAddress(w *uint256.Int) Address {
	b := w.Bytes32()
	var a Address
	copy(a[:], b[HashLen-AddressLen:])
	return a
}

// AddressToHash embeds an address in a 32-byte big-endian buffer with
// 12 bytes of leading zero padding.
func AddressToHash(a Address) Hash {
	var h Hash
	copy(h[HashLen-AddressLen:], a[:])
	return h
}

// HashToAddress extracts the low 20 bytes of a 32-byte big-endian buffer.
func HashToAddress(h Hash) Address {
	var a Address
	copy(a[:], h[HashLen-AddressLen:])
	return a
}
