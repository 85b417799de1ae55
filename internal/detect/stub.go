package detect

import (
	"math/rand"
	"sync"

	"gocv.io/x/gocv"

	"wastetrack/internal/trash"
)

// StubOracle is a demo classifier emitting a random probability per trash
// category. It stands in for the real model during development; the boxes the
// normalizer synthesizes for its output are illustrative placeholders, not a
// geometric contract.
type StubOracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStubOracle creates a stub oracle seeded for reproducibility.
func NewStubOracle(seed int64) *StubOracle {
	return &StubOracle{rng: rand.New(rand.NewSource(seed))}
}

// ClassifyFrame returns one probability per known category.
func (o *StubOracle) ClassifyFrame(frame gocv.Mat) (Raw, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	probabilities := make([]float64, trash.Count())
	for i := range probabilities {
		probabilities[i] = o.rng.Float64()
	}
	return Raw{Probabilities: probabilities}, nil
}
