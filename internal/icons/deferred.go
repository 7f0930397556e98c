package icons

import "sync"

// DeferQueue collects callbacks from any goroutine and runs them on the
// goroutine that calls Drain.
type DeferQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *DeferQueue) Push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every callback queued so far in FIFO order and returns how
// many ran. Callbacks queued while draining wait for the next call.
func (q *DeferQueue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (q *DeferQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Clear drops queued callbacks without running them.
func (q *DeferQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	q.pending = nil
	return n
}
