package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/liftsim/internal/building"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/dispatch"
	"github.com/vk/liftsim/internal/elevator"
)

// Tick runs one full simulation step. An error means the state is corrupt and
// the engine must not be ticked again.
func (e *Engine) Tick(ctx context.Context) error {
	e.tick++
	logger := ctxlog.FromContext(ctx).With("tick", e.tick)

	e.drain(logger)
	e.parkIdle(logger)
	alighted := e.advanceAndBoard(logger)

	for _, s := range dispatch.Assign(e.elevators, e.waiting) {
		logger.Debug("Elevator summoned.", "elevator", s.Car.Name(), "direction", s.Direction,
			"passenger", s.Passenger.ID, "origin", s.Passenger.Origin)
	}

	if err := e.verify(); err != nil {
		logger.Error("Invariant violated, stopping.", "error", err)
		return err
	}

	snap := e.snapshot(alighted)
	e.mu.Lock()
	e.last = snap
	renderers := append([]Renderer(nil), e.renderers...)
	e.mu.Unlock()

	logger.Debug("Tick complete.", "waiting", len(e.waiting), "alighted", len(alighted), "delivered", e.delivered)
	e.render(ctx, logger, renderers, snap)
	return nil
}

func (e *Engine) drain(logger *slog.Logger) {
	for _, p := range e.inbox.drain() {
		p.Requested = e.tick
		e.waiting = append(e.waiting, p)
		logger.Debug("Passenger waiting.", "passenger", p.ID, "origin", p.Origin, "destination", p.Destination)
	}
}

// parkIdle stops empty, floor-aligned cars, but only while nobody is waiting.
func (e *Engine) parkIdle(logger *slog.Logger) {
	if len(e.waiting) > 0 {
		return
	}
	for _, el := range e.elevators {
		if el.Load() == 0 && el.Direction() != elevator.Stopped && building.AtFloor(el.Position()) {
			el.Park()
			logger.Debug("Elevator parked.", "elevator", el.Name(), "position", el.Position())
		}
	}
}

func (e *Engine) advanceAndBoard(logger *slog.Logger) []Alighting {
	var alighted []Alighting
	for _, el := range e.elevators {
		position, off := el.Advance()
		for _, p := range off {
			e.delivered++
			alighted = append(alighted, Alighting{Passenger: viewPassenger(p), Elevator: el.Name()})
			logger.Debug("Passenger alighted.", "elevator", el.Name(), "passenger", p.ID, "destination", p.Destination)
		}
		e.board(logger, el, position)
	}
	return alighted
}

// board lets waiting passengers at position into el and drops them from the
// waiting set.
func (e *Engine) board(logger *slog.Logger, el *elevator.Elevator, position int) {
	remaining := e.waiting[:0]
	for _, p := range e.waiting {
		if p.Origin == position && !p.Assigned() &&
			(p.Direction == el.Direction() || el.Direction() == elevator.Stopped) {
			if el.AddPassenger(p) {
				logger.Debug("Passenger boarded.", "elevator", el.Name(), "passenger", p.ID, "position", position)
				continue
			}
			logger.Debug("Elevator full, passenger keeps waiting.", "elevator", el.Name(), "passenger", p.ID)
		}
		remaining = append(remaining, p)
	}
	clear(e.waiting[len(remaining):])
	e.waiting = remaining
}

func (e *Engine) verify() error {
	onboard := make(map[*elevator.Passenger]string)
	for _, el := range e.elevators {
		if !e.geometry.Contains(el.Position()) {
			return fmt.Errorf("%w: elevator %q at %d is outside %d..%d",
				ErrCorruptState, el.Name(), el.Position(), e.geometry.MinUnit, e.geometry.MaxUnit)
		}
		if el.Load() > el.Capacity() {
			return fmt.Errorf("%w: elevator %q carries %d of %d", ErrCorruptState, el.Name(), el.Load(), el.Capacity())
		}
		for _, p := range el.Passengers() {
			if other, dup := onboard[p]; dup {
				return fmt.Errorf("%w: passenger %s is onboard %q and %q", ErrCorruptState, p.ID, other, el.Name())
			}
			if p.Elevator() != el {
				return fmt.Errorf("%w: passenger %s onboard %q is assigned elsewhere", ErrCorruptState, p.ID, el.Name())
			}
			onboard[p] = el.Name()
		}
	}
	for _, p := range e.waiting {
		if p.Assigned() {
			return fmt.Errorf("%w: passenger %s is both waiting and onboard", ErrCorruptState, p.ID)
		}
	}
	return nil
}

func (e *Engine) render(ctx context.Context, logger *slog.Logger, renderers []Renderer, snap Snapshot) {
	for _, r := range renderers {
		cp, err := snap.Clone()
		if err != nil {
			logger.Error("Failed to copy snapshot for renderer.", "renderer", fmt.Sprintf("%T", r), "error", err)
			continue
		}
		if err := r.Render(ctx, cp); err != nil {
			logger.Warn("Renderer failed.", "renderer", fmt.Sprintf("%T", r), "error", err)
		}
	}
}
