package simplex

import (
	"sync"

	"github.com/akmonengine/proximity/geom"
)

// Pool recycles Reference simplices between queries.
// Each query must own its simplex: Get before the query, Put once its result is consumed.
type Pool[P geom.Point[P]] struct {
	pool sync.Pool
}

func NewPool[P geom.Point[P]](dim int) *Pool[P] {
	return &Pool[P]{
		pool: sync.Pool{
			New: func() interface{} {
				return New[P](dim)
			},
		},
	}
}

// Get returns an empty simplex.
func (p *Pool[P]) Get() *Reference[P] {
	s := p.pool.Get().(*Reference[P])
	s.points = s.points[:0]

	return s
}

func (p *Pool[P]) Put(s *Reference[P]) {
	p.pool.Put(s)
}
