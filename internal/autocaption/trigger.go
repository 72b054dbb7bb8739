package autocaption

import "sync"

// State is the lifecycle state of a Trigger
type State int

// Trigger states
const (
	StateIdle State = iota
	StateArmed
	StateFired
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateFired:
		return "fired"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Trigger gates selection runs so that at most one run happens per source.
// Every source change bumps the generation; a playable signal fires only
// when the current generation has not fired yet.
type Trigger struct {
	mu         sync.Mutex
	state      State
	generation uint64
	firedGen   uint64
	fired      bool
}

// NewTrigger creates an idle trigger
func NewTrigger() *Trigger {
	return &Trigger{}
}

// State returns the current state
func (t *Trigger) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Generation returns the current source generation
func (t *Trigger) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// Arm moves an idle trigger to armed. Other states are left alone.
func (t *Trigger) Arm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return false
	}
	t.state = StateArmed
	return true
}

// Rearm starts a new source generation and arms the trigger again.
// A detached trigger stays detached.
func (t *Trigger) Rearm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateDetached || t.state == StateIdle {
		return false
	}
	t.generation++
	t.state = StateArmed
	return true
}

// Fire reports whether the caller should run selection now.
// It succeeds once per generation and only while armed.
func (t *Trigger) Fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateArmed {
		return false
	}
	if t.fired && t.firedGen == t.generation {
		return false
	}
	t.fired = true
	t.firedGen = t.generation
	t.state = StateFired
	return true
}

// Detach permanently disables the trigger
func (t *Trigger) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateDetached
}
