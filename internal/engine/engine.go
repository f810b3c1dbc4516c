package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vk/liftsim/internal/building"
	"github.com/vk/liftsim/internal/elevator"
)

// ErrInvalidRequest is returned by Submit for trips that cannot be served.
var ErrInvalidRequest = elevator.ErrInvalidRequest

// ErrCorruptState is returned by Tick when the fleet breaks one of its
// invariants. The simulation cannot continue after it.
var ErrCorruptState = errors.New("corrupt simulation state")

// Renderer consumes the state published at the end of every tick. Each call
// receives a private copy of the snapshot.
type Renderer interface {
	Render(ctx context.Context, snap Snapshot) error
}

// Submitter accepts new trip requests.
type Submitter interface {
	Submit(originFloor, destinationFloor int) (*elevator.Passenger, error)
}

// Engine is the simulation. Create it with a Builder.
type Engine struct {
	geometry   building.Geometry
	tickPeriod time.Duration
	maxTicks   uint64

	// Owned by the tick loop.
	elevators []*elevator.Elevator
	waiting   []*elevator.Passenger
	tick      uint64
	delivered uint64

	inbox inbox

	mu        sync.RWMutex
	renderers []Renderer
	last      Snapshot
}

// Submit validates a trip and queues it for the next tick. It is safe to call
// from any goroutine.
func (e *Engine) Submit(originFloor, destinationFloor int) (*elevator.Passenger, error) {
	for _, floor := range []int{originFloor, destinationFloor} {
		if !e.geometry.ContainsFloor(floor) {
			return nil, fmt.Errorf("%w: floor %d is outside floors %d..%d",
				ErrInvalidRequest, floor, e.geometry.MinFloor(), e.geometry.MaxFloor())
		}
	}

	p, err := elevator.NewPassenger(originFloor, destinationFloor)
	if err != nil {
		return nil, err
	}
	e.inbox.push(p)
	return p, nil
}

// Attach adds a renderer. It must not be called while Run is active.
func (e *Engine) Attach(r Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderers = append(e.renderers, r)
}

// Close releases every attached renderer that holds resources.
func (e *Engine) Close() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var errs []error
	for _, r := range e.renderers {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// LastSnapshot returns the state published by the most recent tick. It is
// safe to call from any goroutine.
func (e *Engine) LastSnapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Elevators returns the fleet in dispatch order.
func (e *Engine) Elevators() []*elevator.Elevator {
	out := make([]*elevator.Elevator, len(e.elevators))
	copy(out, e.elevators)
	return out
}

// Waiting returns the passengers currently waiting, excluding submissions
// that have not been drained yet.
func (e *Engine) Waiting() []*elevator.Passenger {
	out := make([]*elevator.Passenger, len(e.waiting))
	copy(out, e.waiting)
	return out
}

// Pending returns the number of submissions queued for the next tick.
func (e *Engine) Pending() int { return e.inbox.len() }

func (e *Engine) Ticks() uint64 { return e.tick }
func (e *Engine) Delivered() uint64 { return e.delivered }
func (e *Engine) TickPeriod() time.Duration { return e.tickPeriod }
