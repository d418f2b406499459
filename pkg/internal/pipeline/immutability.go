package pipeline

import "sync/atomic"

// Freeze marks the pipeline wiring as immutable.
func (p *Pipeline) Freeze() {
	atomic.StoreInt32(&p.frozen, 1)
}

// IsFrozen reports whether Freeze has been called.
func (p *Pipeline) IsFrozen() bool {
	return atomic.LoadInt32(&p.frozen) == 1
}

func (p *Pipeline) requireNotFrozen(action string) {
	if p.IsFrozen() {
		panic("pipeline: " + action + " called after Freeze")
	}
}
