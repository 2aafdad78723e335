package mixer

import "sync/atomic"

type sequence struct {
	nextValue int32
}

func newSequence(nextValue int32) *sequence {
	return &sequence{nextValue: nextValue - 1}
}

func (s *sequence) Next() int32 {
	return atomic.AddInt32(&s.nextValue, 1)
}
