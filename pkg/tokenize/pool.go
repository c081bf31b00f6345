package tokenize

import "fmt"

// Factory builds one analyzer instance.
type Factory func() (Analyzer, error)

// Pool owns one Adapter per pipeline worker. Analyzers are stateful and not
// reentrant, so each adapter is keyed by worker index and must stay with that
// worker for the lifetime of a shard.
type Pool struct {
	adapters []*Adapter
}

func NewPool(size int, factory Factory) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	adapters := make([]*Adapter, size)
	for i := range adapters {
		a, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to build analyzer %d: %w", i, err)
		}
		adapters[i] = NewAdapter(a)
	}
	return &Pool{adapters: adapters}, nil
}

// At returns the adapter owned by the given worker index.
func (p *Pool) At(worker int) *Adapter {
	return p.adapters[worker]
}

// Size returns the number of workers the pool was built for.
func (p *Pool) Size() int {
	return len(p.adapters)
}
