// Package types provides the value types shared between a host application
// and the EVM execution engine. Everything crossing the host/engine boundary
// is expressed in terms of these types.
package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// AddressLen is the length of an account address in bytes.
const AddressLen = 20

// HashLen is the length of a 256-bit hash or big-endian word in bytes.
const HashLen = 32

// Address is a 160-bit account address.
type Address [AddressLen]byte

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// NewAddress creates an Address from a byte slice.
// Returns an error if the slice length is not AddressLen.
func NewAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return Address{}, errors.New("got wrong number of bytes for address")
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Hash is a 256-bit value in big-endian byte order. It is used for code
// hashes, storage keys on the wire and log topics. Conversions to the
// host-endian word representation live in word.go.
type Hash [HashLen]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// MarshalJSON implements the json.Marshaler interface for Hash.
// It converts the hash to a hex-encoded string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h[:]))
}

// UnmarshalJSON implements the json.Unmarshaler interface for Hash.
// It parses a hex-encoded string into a hash.
func (h *Hash) UnmarshalJSON(input []byte) error {
	var hexString string
	err := json.Unmarshal(input, &hexString)
	if err != nil {
		return err
	}

	data, err := hex.DecodeString(hexString)
	if err != nil {
		return err
	}
	if len(data) != HashLen {
		return fmt.Errorf("got wrong number of bytes for hash")
	}
	copy(h[:], data)
	return nil
}

// NewHash creates a Hash from a byte slice.
// Returns an error if the slice length is not HashLen.
func NewHash(b []byte) (Hash, error) {
	if len(b) != HashLen {
		return Hash{}, errors.New("got wrong number of bytes for hash")
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// ForceNewHash creates a Hash from a hex string.
// It panics in case the input is invalid.
func ForceNewHash(input string) Hash {
	data, err := hex.DecodeString(input)
	if err != nil {
		panic("could not decode hex bytes")
	}
	if len(data) != HashLen {
		panic("got wrong number of bytes")
	}
	var h Hash
	copy(h[:], data)
	return h
}
