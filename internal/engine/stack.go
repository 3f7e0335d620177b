package engine

import (
	"github.com/holiman/uint256"

	"github.com/evmvm/evmvm/types"
)

// StackLimit is the maximum number of operands on the stack.
const StackLimit = 1024

// stack is the operand stack of one frame.
type stack struct {
	data []uint256.Int
}

func newStack() *stack {
	return &stack{data: make([]uint256.Int, 0, 16)}
}

func (s *stack) push(v *uint256.Int) error {
	if len(s.data) >= StackLimit {
		return types.StackOverflowError{}
	}
	s.data = append(s.data, *v)
	return nil
}

func (s *stack) pop() (uint256.Int, error) {
	if len(s.data) == 0 {
		return uint256.Int{}, types.StackUnderflowError{}
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

// peek returns the n-th operand from the top, n >= 1.
func (s *stack) peek(n int) (*uint256.Int, error) {
	if len(s.data) < n {
		return nil, types.StackUnderflowError{}
	}
	return &s.data[len(s.data)-n], nil
}

// dup duplicates the n-th operand from the top, n >= 1.
func (s *stack) dup(n int) error {
	v, err := s.peek(n)
	if err != nil {
		return err
	}
	c := *v
	return s.push(&c)
}

// swap exchanges the top operand with the n+1-th from the top, n >= 1.
func (s *stack) swap(n int) error {
	if len(s.data) < n+1 {
		return types.StackUnderflowError{}
	}
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
	return nil
}
