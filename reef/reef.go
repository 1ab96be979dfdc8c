// Package reef provides the shared prey containers crabs forage from.
package reef

import (
	"sync"

	"github.com/pthm-cable/ocean/prey"
)

// Reef holds a population of prey. Many crabs may hold the same *Reef; the
// mutex guards a single take or add and is never held across a hunt.
type Reef struct {
	mu   sync.Mutex
	prey []prey.Prey
}

// New creates an empty reef.
func New() *Reef {
	return &Reef{}
}

// Population returns the number of prey currently on the reef.
func (r *Reef) Population() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prey)
}

// AddPrey places p at the back of the reef, behind every prey already there.
func (r *Reef) AddPrey(p prey.Prey) {
	r.mu.Lock()
	r.prey = append(r.prey, p)
	r.mu.Unlock()
}

// TakePrey removes the prey at the front of the reef. Returns false if the
// reef is empty. A prey taken and added straight back goes to the back, so N
// take/add rounds on a reef of N prey see each one exactly once.
func (r *Reef) TakePrey() (prey.Prey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.prey) == 0 {
		return nil, false
	}
	p := r.prey[0]
	r.prey[0] = nil
	r.prey = r.prey[1:]
	return p, true
}

// Prey returns a copy of the population in storage order.
func (r *Reef) Prey() []prey.Prey {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]prey.Prey, len(r.prey))
	copy(out, r.prey)
	return out
}

// Census counts the population by variant.
func (r *Reef) Census() map[prey.Kind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[prey.Kind]int, len(prey.Kinds()))
	for _, p := range r.prey {
		counts[p.Kind()]++
	}
	return counts
}
