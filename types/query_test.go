package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryKeyTable(t *testing.T) {
	cases := []struct {
		key    QueryKey
		hasArg bool
		arg    VariantKind
		result VariantKind
	}{
		{QueryAddress, false, KindInt64, KindAddress},
		{QueryCaller, false, KindInt64, KindAddress},
		{QueryOrigin, false, KindInt64, KindAddress},
		{QueryCoinbase, false, KindInt64, KindAddress},
		{QueryGasPrice, false, KindInt64, KindWord},
		{QueryDifficulty, false, KindInt64, KindWord},
		{QueryGasLimit, false, KindInt64, KindInt64},
		{QueryNumber, false, KindInt64, KindInt64},
		{QueryTimestamp, false, KindInt64, KindInt64},
		{QueryCodeByAddress, true, KindAddress, KindBytes},
		{QueryBalance, true, KindAddress, KindWord},
		{QueryStorage, true, KindWord, KindWord},
	}
	for _, tc := range cases {
		t.Run(tc.key.String(), func(t *testing.T) {
			assert.Equal(t, tc.hasArg, tc.key.HasArg())
			if tc.hasArg {
				assert.Equal(t, tc.arg, tc.key.ArgKind())
			}
			assert.Equal(t, tc.result, tc.key.ResultKind())
		})
	}
}

func TestQueryKeyString(t *testing.T) {
	assert.Equal(t, "storage", QueryStorage.String())
	assert.Equal(t, "code_by_address", QueryCodeByAddress.String())
	assert.Equal(t, "QueryKey(99)", QueryKey(99).String())
}

func TestCallKindString(t *testing.T) {
	assert.Equal(t, "call", Call.String())
	assert.Equal(t, "delegatecall", DelegateCall.String())
	assert.Equal(t, "callcode", CallCode.String())
	assert.Equal(t, "create", Create.String())
}
