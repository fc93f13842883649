package object

import (
	"math/rand"
	"time"
)

// ToyManager owns the live toys, in spawn order.
type ToyManager struct {
	toys  []*Toy
	field Bounds
	rng   *rand.Rand
}

// NewToyManager creates an empty manager spawning toys inside field.
func NewToyManager(field Bounds, rng *rand.Rand) *ToyManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ToyManager{
		field: field,
		rng:   rng,
	}
}

// Spawn appends a new falling toy at a random position and returns it.
func (m *ToyManager) Spawn(now time.Time) *Toy {
	toy := NewRandomToy(m.field, m.rng, now)
	m.toys = append(m.toys, toy)
	return toy
}

// Add appends an existing toy.
func (m *ToyManager) Add(toy *Toy) {
	m.toys = append(m.toys, toy)
}

// Advance steps every toy to now and drops the ones that expired.
// Returns how many toys expired.
func (m *ToyManager) Advance(now time.Time, dropSpeed float64) int {
	kept := m.toys[:0] // reuse backing array
	expired := 0
	for _, toy := range m.toys {
		if toy.Update(now, dropSpeed) {
			expired++
			continue
		}
		kept = append(kept, toy)
	}
	clear(m.toys[len(kept):])
	m.toys = kept
	return expired
}

// Toys returns the live toys in spawn order. The slice is only valid until
// the next call that changes the manager.
func (m *ToyManager) Toys() []*Toy {
	return m.toys
}

// Len returns the number of live toys.
func (m *ToyManager) Len() int {
	return len(m.toys)
}

// RemoveAt removes and returns the toy at index i, keeping spawn order.
func (m *ToyManager) RemoveAt(i int) *Toy {
	toy := m.toys[i]
	copy(m.toys[i:], m.toys[i+1:])
	m.toys[len(m.toys)-1] = nil
	m.toys = m.toys[:len(m.toys)-1]
	return toy
}

