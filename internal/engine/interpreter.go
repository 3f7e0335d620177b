package engine

import (
	"github.com/holiman/uint256"

	"github.com/evmvm/evmvm/types"

	"github.com/evmvm/evmvm/internal/engine/gas"
)

// frame is the state of one execution. Nested calls do not share frames:
// the host re-enters the engine with a fresh Params carrying depth+1, so
// every level has its own stack, memory and meter.
type frame struct {
	host      types.HostFuncs
	compat    CompatMode
	code      []byte
	jumpDests []byte
	input     []byte
	value     uint256.Int
	depth     int
	meter     gas.Meter
	stack     *stack
	mem       *memory
	pc        uint64
}

func newFrame(host types.HostFuncs, compat CompatMode, entry *cacheEntry, p *types.Params) *frame {
	return &frame{
		host:      host,
		compat:    compat,
		code:      entry.code,
		jumpDests: entry.jumpDests,
		input:     p.Input,
		value:     p.Value,
		depth:     p.Depth,
		meter:     gas.NewDefaultMeter(uint64(p.Gas)),
		stack:     newStack(),
		mem:       &memory{},
	}
}

type cacheEntry struct {
	code      []byte
	jumpDests []byte
}

// constantCost returns the fixed gas cost of an instruction. ok is false
// for undefined opcodes. Instructions with dynamic pricing return only
// their constant part; the rest is charged in the handler.
func constantCost(op OpCode) (uint64, bool) {
	switch {
	case op.IsPush(), op >= DUP1 && op <= DUP16, op >= SWAP1 && op <= SWAP16:
		return GasVeryLow, true
	case op >= LOG0 && op <= LOG4:
		return 0, true
	}
	switch op {
	case STOP, RETURN, SELFDESTRUCT:
		return GasZero, true
	case ADD, SUB, LT, GT, EQ, ISZERO, AND, OR, XOR, NOT,
		CALLDATALOAD, CALLDATACOPY, MLOAD, MSTORE:
		return GasVeryLow, true
	case MUL, DIV, MOD:
		return GasLow, true
	case JUMP:
		return GasMid, true
	case JUMPI:
		return GasHigh, true
	case ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE, GASPRICE,
		COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT,
		POP, PC, MSIZE, GAS:
		return GasBase, true
	case BALANCE, EXTCODESIZE, EXTCODECOPY:
		return GasExt, true
	case SLOAD:
		return GasSload, true
	case JUMPDEST:
		return GasJumpDest, true
	case SSTORE:
		return 0, true
	case CALL, CALLCODE, CREATE:
		return 0, true
	case DELEGATECALL:
		return 0, true
	default:
		return 0, false
	}
}

// popUint64 pops an operand that must fit a uint64 (offsets, sizes, jump
// destinations). A larger value can never be paid for, so it surfaces as
// out of gas.
func (f *frame) popUint64() (uint64, error) {
	v, err := f.stack.pop()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, types.OutOfGasError{}
	}
	return v.Uint64(), nil
}

func (f *frame) query(key types.QueryKey) types.Variant {
	return f.host.Query(key, types.Variant{})
}

func (f *frame) pushAddress(a types.Address) error {
	return f.stack.push(types.AddressToWord(a))
}

func (f *frame) pushUint64(v uint64) error {
	return f.stack.push(new(uint256.Int).SetUint64(v))
}

// run interprets the frame's code until a terminal state. A returned error
// is an execution fault; the caller collapses it into an exception result.
func (f *frame) run() (types.Result, error) {
	for f.pc < uint64(len(f.code)) {
		op := OpCode(f.code[f.pc])
		cost, ok := constantCost(op)
		if !ok {
			return types.Result{}, types.InvalidOpcodeError{Opcode: byte(op)}
		}
		if op == DELEGATECALL && !f.compat.HasDelegateCall() {
			return types.Result{}, types.InvalidOpcodeError{Opcode: byte(op)}
		}
		if err := f.meter.Consume(cost); err != nil {
			return types.Result{}, err
		}

		switch {
		case op.IsPush():
			n := uint64(op-PUSH1) + 1
			if err := f.push(n); err != nil {
				return types.Result{}, err
			}
			f.pc += 1 + n
			continue
		case op >= DUP1 && op <= DUP16:
			if err := f.stack.dup(int(op-DUP1) + 1); err != nil {
				return types.Result{}, err
			}
			f.pc++
			continue
		case op >= SWAP1 && op <= SWAP16:
			if err := f.stack.swap(int(op-SWAP1) + 1); err != nil {
				return types.Result{}, err
			}
			f.pc++
			continue
		case op >= LOG0 && op <= LOG4:
			if err := f.opLog(int(op - LOG0)); err != nil {
				return types.Result{}, err
			}
			f.pc++
			continue
		}

		switch op {
		case STOP:
			return types.StopResult(nil, int64(f.meter.Remaining())), nil

		case RETURN:
			offset, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			size, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			if err := f.mem.expand(offset, size, f.meter); err != nil {
				return types.Result{}, err
			}
			return types.StopResult(f.mem.view(offset, size), int64(f.meter.Remaining())), nil

		case SELFDESTRUCT:
			beneficiary, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			return types.SelfDestructResult(types.WordToAddress(&beneficiary)), nil

		case ADD, MUL, SUB, DIV, MOD, LT, GT, EQ, AND, OR, XOR:
			if err := f.binaryOp(op); err != nil {
				return types.Result{}, err
			}

		case ISZERO:
			v, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			var r uint256.Int
			if v.IsZero() {
				r.SetOne()
			}
			if err := f.stack.push(&r); err != nil {
				return types.Result{}, err
			}

		case NOT:
			v, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			v.Not(&v)
			if err := f.stack.push(&v); err != nil {
				return types.Result{}, err
			}

		case POP:
			if _, err := f.stack.pop(); err != nil {
				return types.Result{}, err
			}

		case ADDRESS:
			if err := f.pushAddress(f.query(types.QueryAddress).Address()); err != nil {
				return types.Result{}, err
			}
		case CALLER:
			if err := f.pushAddress(f.query(types.QueryCaller).Address()); err != nil {
				return types.Result{}, err
			}
		case ORIGIN:
			if err := f.pushAddress(f.query(types.QueryOrigin).Address()); err != nil {
				return types.Result{}, err
			}
		case COINBASE:
			if err := f.pushAddress(f.query(types.QueryCoinbase).Address()); err != nil {
				return types.Result{}, err
			}
		case GASPRICE:
			if err := f.stack.push(f.query(types.QueryGasPrice).Word()); err != nil {
				return types.Result{}, err
			}
		case DIFFICULTY:
			if err := f.stack.push(f.query(types.QueryDifficulty).Word()); err != nil {
				return types.Result{}, err
			}
		case GASLIMIT:
			if err := f.pushUint64(uint64(f.query(types.QueryGasLimit).Int64())); err != nil {
				return types.Result{}, err
			}
		case NUMBER:
			if err := f.pushUint64(uint64(f.query(types.QueryNumber).Int64())); err != nil {
				return types.Result{}, err
			}
		case TIMESTAMP:
			if err := f.pushUint64(uint64(f.query(types.QueryTimestamp).Int64())); err != nil {
				return types.Result{}, err
			}

		case BALANCE:
			addr, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			arg := types.AddressVariant(types.WordToAddress(&addr))
			if err := f.stack.push(f.host.Query(types.QueryBalance, arg).Word()); err != nil {
				return types.Result{}, err
			}

		case EXTCODESIZE:
			addr, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			arg := types.AddressVariant(types.WordToAddress(&addr))
			// The code view is only valid for the duration of the
			// callback, so its length is taken immediately.
			size := len(f.host.Query(types.QueryCodeByAddress, arg).Bytes())
			if err := f.pushUint64(uint64(size)); err != nil {
				return types.Result{}, err
			}

		case EXTCODECOPY:
			if err := f.opExtCodeCopy(); err != nil {
				return types.Result{}, err
			}

		case CALLVALUE:
			v := f.value
			if err := f.stack.push(&v); err != nil {
				return types.Result{}, err
			}

		case CALLDATALOAD:
			offset, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			var buf [32]byte
			if offset < uint64(len(f.input)) {
				copy(buf[:], f.input[offset:])
			}
			if err := f.stack.push(new(uint256.Int).SetBytes32(buf[:])); err != nil {
				return types.Result{}, err
			}

		case CALLDATASIZE:
			if err := f.pushUint64(uint64(len(f.input))); err != nil {
				return types.Result{}, err
			}

		case CALLDATACOPY:
			if err := f.opCallDataCopy(); err != nil {
				return types.Result{}, err
			}

		case MLOAD:
			offset, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			if err := f.mem.expand(offset, 32, f.meter); err != nil {
				return types.Result{}, err
			}
			w := f.mem.get32(offset)
			if err := f.stack.push(&w); err != nil {
				return types.Result{}, err
			}

		case MSTORE:
			offset, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			v, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			if err := f.mem.expand(offset, 32, f.meter); err != nil {
				return types.Result{}, err
			}
			f.mem.set32(offset, &v)

		case SLOAD:
			key, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			res := f.host.Query(types.QueryStorage, types.WordVariant(&key))
			if err := f.stack.push(res.Word()); err != nil {
				return types.Result{}, err
			}

		case SSTORE:
			if err := f.opSstore(); err != nil {
				return types.Result{}, err
			}

		case JUMP:
			dest, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			if !validJumpDest(f.jumpDests, dest) {
				return types.Result{}, types.InvalidJumpError{Dest: dest}
			}
			f.pc = dest
			continue

		case JUMPI:
			dest, err := f.popUint64()
			if err != nil {
				return types.Result{}, err
			}
			cond, err := f.stack.pop()
			if err != nil {
				return types.Result{}, err
			}
			if !cond.IsZero() {
				if !validJumpDest(f.jumpDests, dest) {
					return types.Result{}, types.InvalidJumpError{Dest: dest}
				}
				f.pc = dest
				continue
			}

		case PC:
			if err := f.pushUint64(f.pc); err != nil {
				return types.Result{}, err
			}
		case MSIZE:
			if err := f.pushUint64(f.mem.size()); err != nil {
				return types.Result{}, err
			}
		case GAS:
			if err := f.pushUint64(f.meter.Remaining()); err != nil {
				return types.Result{}, err
			}
		case JUMPDEST:
			// no-op

		case CALL, CALLCODE, DELEGATECALL:
			if err := f.opCall(op); err != nil {
				return types.Result{}, err
			}

		case CREATE:
			if err := f.opCreate(); err != nil {
				return types.Result{}, err
			}
		}
		f.pc++
	}

	// Running off the end of code halts normally, like an implicit STOP.
	return types.StopResult(nil, int64(f.meter.Remaining())), nil
}

// push reads the n-byte immediate after the current PUSH opcode,
// zero-filled past the end of code, and pushes it.
func (f *frame) push(n uint64) error {
	var buf [32]byte
	start := f.pc + 1
	for i := uint64(0); i < n; i++ {
		if start+i < uint64(len(f.code)) {
			buf[32-n+i] = f.code[start+i]
		}
	}
	return f.stack.push(new(uint256.Int).SetBytes32(buf[:]))
}

func (f *frame) binaryOp(op OpCode) error {
	x, err := f.stack.pop()
	if err != nil {
		return err
	}
	y, err := f.stack.pop()
	if err != nil {
		return err
	}
	var r uint256.Int
	switch op {
	case ADD:
		r.Add(&x, &y)
	case MUL:
		r.Mul(&x, &y)
	case SUB:
		r.Sub(&x, &y)
	case DIV:
		if !y.IsZero() {
			r.Div(&x, &y)
		}
	case MOD:
		if !y.IsZero() {
			r.Mod(&x, &y)
		}
	case LT:
		if x.Lt(&y) {
			r.SetOne()
		}
	case GT:
		if x.Gt(&y) {
			r.SetOne()
		}
	case EQ:
		if x.Eq(&y) {
			r.SetOne()
		}
	case AND:
		r.And(&x, &y)
	case OR:
		r.Or(&x, &y)
	case XOR:
		r.Xor(&x, &y)
	}
	return f.stack.push(&r)
}

func (f *frame) opSstore() error {
	key, err := f.stack.pop()
	if err != nil {
		return err
	}
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	// Pricing needs the current value, which only the host knows.
	cur := f.host.Query(types.QueryStorage, types.WordVariant(&key)).Word()
	cost := GasSstoreReset
	if cur.IsZero() && !value.IsZero() {
		cost = GasSstoreSet
	}
	if err := f.meter.Consume(cost); err != nil {
		return err
	}
	f.host.StoreStorage(&key, &value)
	return nil
}

func (f *frame) opLog(topicCount int) error {
	offset, err := f.popUint64()
	if err != nil {
		return err
	}
	size, err := f.popUint64()
	if err != nil {
		return err
	}
	if err := f.mem.expand(offset, size, f.meter); err != nil {
		return err
	}
	cost := GasLog + uint64(topicCount)*GasLogTopic + size*GasLogData
	if err := f.meter.Consume(cost); err != nil {
		return err
	}
	topics := make([]types.Hash, topicCount)
	for i := 0; i < topicCount; i++ {
		t, err := f.stack.pop()
		if err != nil {
			return err
		}
		topics[i] = types.WordToHash(&t)
	}
	f.host.Log(f.mem.view(offset, size), topics)
	return nil
}

func (f *frame) opCallDataCopy() error {
	memOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	dataOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	size, err := f.popUint64()
	if err != nil {
		return err
	}
	if err := f.mem.expand(memOffset, size, f.meter); err != nil {
		return err
	}
	if err := f.meter.Consume((size + 31) / 32 * GasCopyWord); err != nil {
		return err
	}
	copyPadded(f.mem.view(memOffset, size), f.input, dataOffset)
	return nil
}

func (f *frame) opExtCodeCopy() error {
	addr, err := f.stack.pop()
	if err != nil {
		return err
	}
	memOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	codeOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	size, err := f.popUint64()
	if err != nil {
		return err
	}
	if err := f.mem.expand(memOffset, size, f.meter); err != nil {
		return err
	}
	if err := f.meter.Consume((size + 31) / 32 * GasCopyWord); err != nil {
		return err
	}
	arg := types.AddressVariant(types.WordToAddress(&addr))
	code := f.host.Query(types.QueryCodeByAddress, arg).Bytes()
	copyPadded(f.mem.view(memOffset, size), code, codeOffset)
	return nil
}

// copyPadded copies src[srcOffset:] into dst, zero-filling past the end
// of src.
func copyPadded(dst, src []byte, srcOffset uint64) {
	for i := range dst {
		dst[i] = 0
	}
	if srcOffset < uint64(len(src)) {
		copy(dst, src[srcOffset:])
	}
}

// opCall services CALL, CALLCODE and DELEGATECALL. Gas forwarded to the
// host is capped at what the frame has left; the difference between the
// forwarded amount and the host-reported remainder is what the nested call
// consumed. A negative return from the host marks the sub-call failed: all
// forwarded gas is gone and the output region is left as-is, its contents
// undefined by contract.
func (f *frame) opCall(op OpCode) error {
	if err := f.meter.Consume(GasCall); err != nil {
		return err
	}
	gasArg, err := f.popUint64()
	if err != nil {
		return err
	}
	addrWord, err := f.stack.pop()
	if err != nil {
		return err
	}
	var value uint256.Int
	if op != DELEGATECALL {
		value, err = f.stack.pop()
		if err != nil {
			return err
		}
	}
	inOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	inSize, err := f.popUint64()
	if err != nil {
		return err
	}
	outOffset, err := f.popUint64()
	if err != nil {
		return err
	}
	outSize, err := f.popUint64()
	if err != nil {
		return err
	}
	if err := f.mem.expand(inOffset, inSize, f.meter); err != nil {
		return err
	}
	if err := f.mem.expand(outOffset, outSize, f.meter); err != nil {
		return err
	}

	if f.depth+1 >= types.MaxCallDepth {
		// Fails before reaching the host, same as a failed sub-call.
		return f.stack.push(new(uint256.Int))
	}

	kind := types.Call
	switch op {
	case CALLCODE:
		kind = types.CallCode
	case DELEGATECALL:
		kind = types.DelegateCall
	}

	forward := gasArg
	if remaining := f.meter.Remaining(); forward > remaining {
		forward = remaining
	}
	input := f.mem.view(inOffset, inSize)
	output := f.mem.view(outOffset, outSize)
	ret := f.host.Call(kind, int64(forward), types.WordToAddress(&addrWord), &value, input, output)

	var success uint256.Int
	if ret < 0 {
		if err := f.meter.Consume(forward); err != nil {
			return err
		}
	} else {
		left := uint64(ret)
		if left > forward {
			left = forward
		}
		if err := f.meter.Consume(forward - left); err != nil {
			return err
		}
		success.SetOne()
	}
	return f.stack.push(&success)
}

// opCreate services CREATE. All but one 64th of the remaining gas is
// forwarded; the withheld reserve keeps the caller able to continue when
// the create fails and the forwarded gas is consumed in full. The output
// buffer handed to the host is engine-owned scratch of CreateOutputSize
// bytes; on success the created address sits in its first 20 bytes.
func (f *frame) opCreate() error {
	if err := f.meter.Consume(GasCreate); err != nil {
		return err
	}
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	offset, err := f.popUint64()
	if err != nil {
		return err
	}
	size, err := f.popUint64()
	if err != nil {
		return err
	}
	if err := f.mem.expand(offset, size, f.meter); err != nil {
		return err
	}

	if f.depth+1 >= types.MaxCallDepth {
		return f.stack.push(new(uint256.Int))
	}

	forward := f.meter.Remaining()
	forward -= forward / 64
	initCode := f.mem.view(offset, size)
	output := make([]byte, types.CreateOutputSize)
	ret := f.host.Call(types.Create, int64(forward), types.Address{}, &value, initCode, output)

	if ret < 0 {
		if err := f.meter.Consume(forward); err != nil {
			return err
		}
		return f.stack.push(new(uint256.Int))
	}
	left := uint64(ret)
	if left > forward {
		left = forward
	}
	if err := f.meter.Consume(forward - left); err != nil {
		return err
	}
	created, err := types.NewAddress(output[:types.AddressLen])
	if err != nil {
		return err
	}
	return f.stack.push(types.AddressToWord(created))
}
