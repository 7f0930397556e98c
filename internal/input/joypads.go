package input

import (
	"slices"
	"sync"
)

// Joypads tracks connected controllers and their product names.
type Joypads struct {
	mu    sync.RWMutex
	names map[int]string
}

func NewJoypads() *Joypads {
	return &Joypads{names: make(map[int]string)}
}

func (j *Joypads) add(device int, name string) {
	j.mu.Lock()
	j.names[device] = name
	j.mu.Unlock()
}

func (j *Joypads) remove(device int) {
	j.mu.Lock()
	delete(j.names, device)
	j.mu.Unlock()
}

// Connected returns connected device indices in ascending order.
func (j *Joypads) Connected() []int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	ids := make([]int, 0, len(j.names))
	for id := range j.names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Name returns the product name of device, or "" if it is not connected.
func (j *Joypads) Name(device int) string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.names[device]
}

// Count returns the number of connected devices.
func (j *Joypads) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.names)
}
