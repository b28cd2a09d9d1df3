package integrate

import "sync"

// vecPool recycles the intermediate stage vectors of an RK step. Vectors
// are zeroed on Put so a recycled slice never leaks a previous state.
type vecPool struct {
	pool sync.Pool
	size int
}

func newVecPool(size int) *vecPool {
	return &vecPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		},
	}
}

func (p *vecPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

func (p *vecPool) Put(v []float64) {
	if len(v) == p.size {
		for i := range v {
			v[i] = 0
		}
		p.pool.Put(v)
	}
}
