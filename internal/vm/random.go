package vm

import (
	"math/rand"
	"time"
)

// Random is the entropy source of the RND instruction
type Random interface {
	Byte() uint8
}

type mathRandom struct {
	rnd *rand.Rand
}

// NewRandom returns a Random seeded from the current time
func NewRandom() Random {
	return &mathRandom{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *mathRandom) Byte() uint8 {
	return uint8(r.rnd.Intn(256))
}

// Sequence is a Random that returns a fixed list of bytes in order, starting
// again at the beginning when exhausted. An empty Sequence always returns 0.
type Sequence struct {
	values []uint8
	next   int
}

// NewSequence is the preferred method of initialisation for the Sequence type
func NewSequence(values ...uint8) *Sequence {
	return &Sequence{values: values}
}

// Byte implements the Random interface
func (s *Sequence) Byte() uint8 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
