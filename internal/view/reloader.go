package view

import (
	"sync"
	"time"
)

// Reloader is an owned one-shot timer. Arm schedules fn once after the
// interval, replacing any pending run; Stop cancels it for good.
type Reloader struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	timer    *time.Timer
	gen      uint64
	stopped  bool
}

func NewReloader(interval time.Duration, fn func()) *Reloader {
	return &Reloader{interval: interval, fn: fn}
}

// Arm schedules the next reload. It reports false once the reloader is
// stopped.
func (r *Reloader) Arm() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return false
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.gen++
	gen := r.gen
	r.timer = time.AfterFunc(r.interval, func() { r.fire(gen) })
	return true
}

func (r *Reloader) fire(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()
	r.fn()
}

// Stop cancels a pending reload and disarms the reloader. It is safe to call
// more than once.
func (r *Reloader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Pending reports whether a reload is scheduled.
func (r *Reloader) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}
