package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// VariantKind identifies which value a Variant holds.
type VariantKind uint8

const (
	// KindInt64 is a host-endian 64-bit integer.
	KindInt64 VariantKind = iota
	// KindWord is a host-endian 256-bit integer.
	KindWord
	// KindAddress is a 160-bit account address.
	KindAddress
	// KindBytes is a non-owning byte view.
	KindBytes
)

func (k VariantKind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindWord:
		return "word"
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("VariantKind(%d)", k)
	}
}

// Variant holds exactly one value from a closed set of kinds. It is the
// payload type of the query channel, in both directions. The source protocol
// used an untagged union and relied on the query key to select the valid
// member; here the kind is carried explicitly and accessors check it, so a
// mismatch between producer and consumer fails loudly instead of reading
// garbage. Which kind a given query key expects is defined by ArgKind and
// ResultKind in query.go.
type Variant struct {
	kind  VariantKind
	i64   int64
	word  uint256.Int
	addr  Address
	bytes []byte
}

// Int64Variant wraps a 64-bit integer.
func Int64Variant(v int64) Variant {
	return Variant{kind: KindInt64, i64: v}
}

// WordVariant wraps a 256-bit integer.
func WordVariant(w *uint256.Int) Variant {
	return Variant{kind: KindWord, word: *w}
}

// AddressVariant wraps an account address.
func AddressVariant(a Address) Variant {
	return Variant{kind: KindAddress, addr: a}
}

// BytesVariant wraps a byte view. The Variant does not own the memory; the
// receiver must not assume the slice outlives the callback that produced it.
func BytesVariant(b []byte) Variant {
	return Variant{kind: KindBytes, bytes: b}
}

// ZeroVariant is the "zero/empty" answer of the given kind, the value a host
// returns when it cannot service a query.
func ZeroVariant(kind VariantKind) Variant {
	return Variant{kind: kind}
}

// Kind reports which value the variant holds.
func (v Variant) Kind() VariantKind {
	return v.kind
}

func (v Variant) check(want VariantKind) {
	if v.kind != want {
		panic(fmt.Sprintf("variant kind mismatch: have %s, want %s", v.kind, want))
	}
}

// Int64 returns the 64-bit integer value. Panics if the variant holds a
// different kind.
func (v Variant) Int64() int64 {
	v.check(KindInt64)
	return v.i64
}

// Word returns the 256-bit integer value. Panics if the variant holds a
// different kind.
func (v Variant) Word() *uint256.Int {
	v.check(KindWord)
	w := v.word
	return &w
}

// Address returns the address value. Panics if the variant holds a
// different kind.
func (v Variant) Address() Address {
	v.check(KindAddress)
	return v.addr
}

// Bytes returns the byte view. Panics if the variant holds a different kind.
func (v Variant) Bytes() []byte {
	v.check(KindBytes)
	return v.bytes
}
