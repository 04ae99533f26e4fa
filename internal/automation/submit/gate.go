package submit

import (
	"context"
	"sync"
	"time"
)

// DefaultGateDelay is how long a submission stays armed before it is
// allowed to proceed
const DefaultGateDelay = 10 * time.Second

// GateState is the observable lifecycle of one confirmation window
type GateState string

const (
	GateIdle      GateState = "idle"
	GateArmed     GateState = "armed"
	GateCancelled GateState = "cancelled"
	GateElapsed   GateState = "elapsed"
)

// Clock abstracts time so gate behavior is testable without real delays
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// ConfirmationGate holds a submission open for a cancellation window
// before letting it through. Once cancelled or elapsed a gate is spent;
// arm a new one per attempt.
type ConfirmationGate struct {
	mu     sync.Mutex
	state  GateState
	delay  time.Duration
	clock  Clock
	cancel chan struct{}
}

// NewConfirmationGate creates a gate with the given delay. A zero or
// negative delay uses DefaultGateDelay. A nil clock uses the wall clock.
func NewConfirmationGate(delay time.Duration, clock Clock) *ConfirmationGate {
	if delay <= 0 {
		delay = DefaultGateDelay
	}
	if clock == nil {
		clock = realClock{}
	}
	return &ConfirmationGate{
		state:  GateIdle,
		delay:  delay,
		clock:  clock,
		cancel: make(chan struct{}),
	}
}

// State returns the gate's current lifecycle state
func (g *ConfirmationGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Cancel aborts an armed gate. Cancelling an idle gate pre-cancels it;
// a later Wait returns immediately without proceeding.
func (g *ConfirmationGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == GateElapsed || g.state == GateCancelled {
		return
	}
	g.state = GateCancelled
	close(g.cancel)
}

// Wait arms the gate and blocks until the delay elapses, the gate is
// cancelled, or ctx is done. It returns true only when the delay fully
// elapsed and the submission may proceed.
func (g *ConfirmationGate) Wait(ctx context.Context) bool {
	g.mu.Lock()
	if g.state == GateCancelled {
		g.mu.Unlock()
		return false
	}
	g.state = GateArmed
	g.mu.Unlock()

	select {
	case <-g.clock.After(g.delay):
		g.mu.Lock()
		defer g.mu.Unlock()
		// Cancel may have raced the timer; cancellation wins
		if g.state == GateCancelled {
			return false
		}
		g.state = GateElapsed
		return true
	case <-g.cancel:
		return false
	case <-ctx.Done():
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.state != GateCancelled {
			g.state = GateCancelled
		}
		return false
	}
}
