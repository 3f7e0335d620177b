package types

import "fmt"

// QueryKey selects what a query callback should answer.
type QueryKey int32

const (
	// QueryAddress is the address of the executing contract, for ADDRESS.
	QueryAddress QueryKey = iota
	// QueryCaller is the message sender address, for CALLER.
	QueryCaller
	// QueryOrigin is the transaction origin address, for ORIGIN.
	QueryOrigin
	// QueryGasPrice is the transaction gas price, for GASPRICE.
	QueryGasPrice
	// QueryCoinbase is the current block miner address, for COINBASE.
	QueryCoinbase
	// QueryDifficulty is the current block difficulty, for DIFFICULTY.
	QueryDifficulty
	// QueryGasLimit is the current block gas limit, for GASLIMIT.
	QueryGasLimit
	// QueryNumber is the current block number, for NUMBER.
	QueryNumber
	// QueryTimestamp is the current block timestamp, for TIMESTAMP.
	QueryTimestamp
	// QueryCodeByAddress is the code of an account, for EXTCODESIZE/EXTCODECOPY.
	QueryCodeByAddress
	// QueryBalance is the balance of an account, for BALANCE.
	QueryBalance
	// QueryStorage is the storage value of a key, for SLOAD.
	QueryStorage
)

func (k QueryKey) String() string {
	switch k {
	case QueryAddress:
		return "address"
	case QueryCaller:
		return "caller"
	case QueryOrigin:
		return "origin"
	case QueryGasPrice:
		return "gas_price"
	case QueryCoinbase:
		return "coinbase"
	case QueryDifficulty:
		return "difficulty"
	case QueryGasLimit:
		return "gas_limit"
	case QueryNumber:
		return "number"
	case QueryTimestamp:
		return "timestamp"
	case QueryCodeByAddress:
		return "code_by_address"
	case QueryBalance:
		return "balance"
	case QueryStorage:
		return "storage"
	default:
		return fmt.Sprintf("QueryKey(%d)", int32(k))
	}
}

// HasArg reports whether the key carries a meaningful argument. For all
// other keys the argument variant is ignored by the host.
func (k QueryKey) HasArg() bool {
	switch k {
	case QueryCodeByAddress, QueryBalance, QueryStorage:
		return true
	default:
		return false
	}
}

// ArgKind returns the variant kind of the argument for keyed queries.
// The result is only meaningful if HasArg is true.
func (k QueryKey) ArgKind() VariantKind {
	switch k {
	case QueryCodeByAddress, QueryBalance:
		return KindAddress
	case QueryStorage:
		return KindWord
	default:
		return KindInt64
	}
}

// ResultKind returns the variant kind a host must answer the key with.
//
// Key            | Argument    | Result
// -------------- | ----------- | -------
// address        |             | address
// caller         |             | address
// origin         |             | address
// coinbase       |             | address
// gas_price      |             | word
// difficulty     |             | word
// gas_limit      |             | int64
// number         |             | int64
// timestamp      |             | int64
// code_by_address| address     | bytes
// balance        | address     | word
// storage        | word (key)  | word (zero if unset)
func (k QueryKey) ResultKind() VariantKind {
	switch k {
	case QueryAddress, QueryCaller, QueryOrigin, QueryCoinbase:
		return KindAddress
	case QueryGasPrice, QueryDifficulty, QueryBalance, QueryStorage:
		return KindWord
	case QueryGasLimit, QueryNumber, QueryTimestamp:
		return KindInt64
	case QueryCodeByAddress:
		return KindBytes
	default:
		return KindInt64
	}
}
