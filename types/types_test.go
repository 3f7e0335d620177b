package types

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashJSONRoundTrip(t *testing.T) {
	h := ForceNewHash("13a06e3c6ab6ffa0991f32d70a0636cef8a7e4bb7aa2cfb8099c2a9a4bad9ea3")

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"13a06e3c6ab6ffa0991f32d70a0636cef8a7e4bb7aa2cfb8099c2a9a4bad9ea3"`, string(data))

	var back Hash
	err = json.Unmarshal(data, &back)
	require.NoError(t, err)
	assert.Equal(t, h, back)
}

func TestHashUnmarshalErrors(t *testing.T) {
	var h Hash
	assert.Error(t, h.UnmarshalJSON([]byte(`"not-hex"`)))
	assert.Error(t, h.UnmarshalJSON([]byte(`"aabb"`)))
	assert.Error(t, h.UnmarshalJSON([]byte(`123`)))
}

func TestNewHash(t *testing.T) {
	_, err := NewHash(make([]byte, 31))
	assert.Error(t, err)

	h, err := NewHash(make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, Hash{}, h)
}

func TestForceNewHashPanics(t *testing.T) {
	assert.Panics(t, func() { ForceNewHash("zz") })
	assert.Panics(t, func() { ForceNewHash("aabb") })
}

func TestNewAddress(t *testing.T) {
	_, err := NewAddress(make([]byte, 19))
	assert.Error(t, err)

	b := make([]byte, 20)
	b[19] = 7
	a, err := NewAddress(b)
	require.NoError(t, err)
	assert.Equal(t, []byte(b), a.Bytes())
}

func TestHostFuncsValidate(t *testing.T) {
	full := HostFuncs{
		Query:        func(QueryKey, Variant) Variant { return Variant{} },
		StoreStorage: func(k, v *uint256.Int) {},
		Call:         func(CallKind, int64, Address, *uint256.Int, []byte, []byte) int64 { return 0 },
		Log:          func([]byte, []Hash) {},
	}
	require.NoError(t, full.Validate())

	for name, broken := range map[string]HostFuncs{
		"query":   {StoreStorage: full.StoreStorage, Call: full.Call, Log: full.Log},
		"storage": {Query: full.Query, Call: full.Call, Log: full.Log},
		"call":    {Query: full.Query, StoreStorage: full.StoreStorage, Log: full.Log},
		"log":     {Query: full.Query, StoreStorage: full.StoreStorage, Call: full.Call},
	} {
		assert.Error(t, broken.Validate(), "missing %s callback must be rejected", name)
	}
}
