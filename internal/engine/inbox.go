package engine

import (
	"sync"

	"github.com/vk/liftsim/internal/elevator"
)

// inbox queues submissions from any goroutine until the tick loop drains
// them.
type inbox struct {
	mu     sync.Mutex
	queued []*elevator.Passenger
}

func (q *inbox) push(p *elevator.Passenger) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = append(q.queued, p)
}

func (q *inbox) drain() []*elevator.Passenger {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.queued
	q.queued = nil
	return out
}

func (q *inbox) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}
