package engine

import (
	"fmt"
	"math/rand"
)

// Generator names accepted by NewGenerator.
const (
	GeneratorBag7   = "bag7"
	GeneratorRandom = "random"
)

// Generator produces the sequence of upcoming pieces.
type Generator interface {
	// Next removes and returns the head of the queue.
	Next() Kind
	// Peek returns the head of the queue without removing it.
	Peek() Kind
}

// NewGenerator builds the generator registered under name. An empty name
// selects the 7-bag.
func NewGenerator(name string, rng *rand.Rand) (Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("engine: generator %q needs a random source", name)
	}
	switch name {
	case "", GeneratorBag7:
		return NewBag7(rng), nil
	case GeneratorRandom:
		return NewRandomGenerator(rng), nil
	default:
		return nil, fmt.Errorf("engine: unknown generator %q", name)
	}
}

// Bag7 deals pieces in shuffled bags of seven, so each block of seven
// draws contains every kind exactly once.
type Bag7 struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag7 creates a 7-bag generator with two bags already queued.
func NewBag7(rng *rand.Rand) *Bag7 {
	b := &Bag7{rng: rng, queue: make([]Kind, 0, 3*KindCount)}
	b.refill()
	b.refill()
	return b
}

// refill appends one shuffled set of all seven kinds to the queue.
func (b *Bag7) refill() {
	bag := Kinds()
	b.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	b.queue = append(b.queue, bag...)
}

// Next tops the queue up when a full bag or less remains, then pops.
func (b *Bag7) Next() Kind {
	if len(b.queue) <= KindCount {
		b.refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// Peek returns the upcoming kind.
func (b *Bag7) Peek() Kind {
	return b.queue[0]
}

// Queued returns a copy of the pending queue.
func (b *Bag7) Queued() []Kind {
	out := make([]Kind, len(b.queue))
	copy(out, b.queue)
	return out
}

// RandomGenerator draws each kind independently and uniformly.
// It keeps two kinds queued so Peek is always valid.
type RandomGenerator struct {
	rng   *rand.Rand
	queue []Kind
}

// NewRandomGenerator creates a uniform generator.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	r := &RandomGenerator{rng: rng}
	r.queue = append(r.queue, r.draw(), r.draw())
	return r
}

func (r *RandomGenerator) draw() Kind {
	return Kind(r.rng.Intn(KindCount) + 1)
}

// Next pops the head and refills when one or fewer remain.
func (r *RandomGenerator) Next() Kind {
	if len(r.queue) <= 1 {
		r.queue = append(r.queue, r.draw())
	}
	k := r.queue[0]
	r.queue = r.queue[1:]
	return k
}

// Peek returns the upcoming kind.
func (r *RandomGenerator) Peek() Kind {
	return r.queue[0]
}
