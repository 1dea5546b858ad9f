package rhi

import (
	"fmt"
	"sync"
	"time"
)

// CPUFence is a process-local monotonic fence. Backends use it to mirror GPU
// timeline state on the CPU; tests use it directly. The zero value is a fence
// at value 0.
type CPUFence struct {
	mu      sync.Mutex
	cond    *sync.Cond
	current uint64
}

// NewCPUFence creates a fence with the given starting value.
func NewCPUFence(initial uint64) *CPUFence {
	f := &CPUFence{current: initial}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Signal advances the fence. Fence values are strictly monotonic; signalling a
// value at or below the current one is a fatal misuse.
func (self *CPUFence) Signal(value uint64) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.cond == nil {
		self.cond = sync.NewCond(&self.mu)
	}
	if value <= self.current {
		panic(fmt.Sprintf("rhi: non-monotonic fence signal %d, current %d", value, self.current))
	}
	self.current = value
	self.cond.Broadcast()
}

// CompletedValue returns the last signalled value.
func (self *CPUFence) CompletedValue() uint64 {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.current
}

// Signaled reports whether the fence has reached value.
func (self *CPUFence) Signaled(value uint64) bool {
	return self.CompletedValue() >= value
}

// Wait blocks until the fence reaches value or the timeout elapses. A timeout
// of zero polls. Returns whether the value was reached; timing out is a
// normal result. An unbounded wait must be for a value that some signaller
// will eventually reach; Wait cannot verify that, so timeout < 0 is rejected.
func (self *CPUFence) Wait(value uint64, timeout time.Duration) bool {
	if timeout < 0 {
		panic("rhi: unbounded fence wait requires an explicit deadline")
	}
	deadline := time.Now().Add(timeout)

	self.mu.Lock()
	defer self.mu.Unlock()
	if self.cond == nil {
		self.cond = sync.NewCond(&self.mu)
	}
	if self.current >= value {
		return true
	}

	// sync.Cond has no timed wait; a ticker keeps re-waking the waiter so a
	// broadcast racing ahead of Wait cannot be lost.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		t := time.NewTicker(time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				self.cond.Broadcast()
			}
		}
	}()

	for self.current < value {
		if time.Now().After(deadline) {
			return false
		}
		self.cond.Wait()
	}
	return true
}

var _ Fence = (*CPUFence)(nil)
