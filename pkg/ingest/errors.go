package ingest

import (
	"strings"
	"sync"
)

// ErrorRing keeps the most recent error messages, newest first.
// Pushing past capacity drops the oldest message.
type ErrorRing struct {
	mu       sync.Mutex
	capacity int
	items    []string // newest at the end
}

// NewErrorRing makes a ring with the given capacity, at least 1
func NewErrorRing(capacity int) *ErrorRing {
	if capacity < 1 {
		capacity = 1
	}
	return &ErrorRing{capacity: capacity, items: make([]string, 0, capacity)}
}

// Push adds a message, blank messages are ignored
func (r *ErrorRing) Push(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == r.capacity {
		copy(r.items, r.items[1:])
		r.items = r.items[:len(r.items)-1]
	}
	r.items = append(r.items, msg)
}

// List returns messages newest first
func (r *ErrorRing) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		res = append(res, r.items[i])
	}
	return res
}

// Len returns the number of kept messages
func (r *ErrorRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
