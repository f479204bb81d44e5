package wormula

import "math"

// operandStack is the VM's value stack. Every value is stored as raw
// bits; i32/i64 pushes/pops use the low bits directly, f64 pushes/pops
// reinterpret through math.Float64bits/Float64frombits — the same
// trick a real WASM engine's stack uses internally.
type operandStack struct {
	data []uint64
}

func (s *operandStack) pushI64(v int64) { s.data = append(s.data, uint64(v)) }
func (s *operandStack) pushI32(v int32) { s.data = append(s.data, uint64(uint32(v))) }
func (s *operandStack) pushF64(v float64) {
	s.data = append(s.data, math.Float64bits(v))
}

func (s *operandStack) popI64() int64 {
	v := s.top()
	s.drop()
	return int64(v)
}

func (s *operandStack) popI32() int32 {
	v := s.top()
	s.drop()
	return int32(uint32(v))
}

func (s *operandStack) popF64() float64 {
	v := s.top()
	s.drop()
	return math.Float64frombits(v)
}

func (s *operandStack) top() uint64 {
	if len(s.data) == 0 {
		panic(EvalError{Message: "operand stack underflow"})
	}
	return s.data[len(s.data)-1]
}

func (s *operandStack) drop() {
	if len(s.data) == 0 {
		panic(EvalError{Message: "operand stack underflow"})
	}
	s.data = s.data[:len(s.data)-1]
}

// locals holds a function body's local variable slots, laid out per
// vm_abi.go's localState/localResult/... indices.
type locals struct {
	data []uint64
}

func newLocals(n int) *locals { return &locals{data: make([]uint64, n)} }

func (l *locals) get(idx int) uint64 { return l.data[idx] }
func (l *locals) set(idx int, v uint64) { l.data[idx] = v }
