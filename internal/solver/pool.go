package solver

import "github.com/rs/zerolog/log"

// Pool hands out Engines for exclusive use. Engines that come back keep
// their decision trees, so later games reuse earlier minimax work.
type Pool struct {
	idle chan *Engine
}

// NewPool keeps at most size idle engines; size < 1 is treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{idle: make(chan *Engine, size)}
}

// Get returns an idle engine or builds a new one.
func (p *Pool) Get() *Engine {
	select {
	case e := <-p.idle:
		return e
	default:
		log.Debug().Msg("solver pool empty, building engine")
		return New()
	}
}

// Put returns e to the pool. If the pool is full e is dropped.
func (p *Pool) Put(e *Engine) {
	if e == nil {
		return
	}
	e.Initialize()
	select {
	case p.idle <- e:
	default:
		log.Debug().Int("treeNodes", e.tree.size()).Msg("solver pool full, dropping engine")
	}
}

// Idle is the number of engines currently waiting in the pool.
func (p *Pool) Idle() int { return len(p.idle) }
