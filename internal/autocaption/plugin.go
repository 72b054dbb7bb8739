package autocaption

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Event names a host lifecycle signal
type Event string

// Host events the plugin subscribes to
const (
	EventCanPlay       Event = "canplay"
	EventSourceChanged Event = "sourcechanged"
)

// Player defines the methods needed from a host media player
type Player interface {
	// Language returns the current player language tag
	Language() string
	// TextTracks returns the host-owned text tracks in enumeration order
	TextTracks() []*Track
	// Ready calls fn once the player is ready, immediately if it already is
	Ready(fn func())
	// On subscribes fn to event and returns a function that removes it
	On(event Event, fn func()) (off func())
}

// PerSourcePlayer is implemented by hosts with a per-source lifecycle.
// Those hosts emit EventSourceChanged and selection re-runs for each source.
type PerSourcePlayer interface {
	Player
	PerSourceBehaviors() bool
}

// Options configures an attached plugin. No tunables exist yet.
type Options struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

var defaults = Options{Version: Version}

func mergeOptions(base Options, opts []Options) Options {
	merged := base
	for _, o := range opts {
		if o.Version != "" {
			merged.Version = o.Version
		}
	}
	return merged
}

// AutoCaption selects the best caption track on a player when it becomes playable
type AutoCaption struct {
	player  Player
	opts    Options
	trigger *Trigger

	mu   sync.Mutex
	offs []func()
	last Selection
	runs int
}

// Attach registers auto caption behaviour on a player
func Attach(player Player, opts ...Options) *AutoCaption {
	a := &AutoCaption{
		player:  player,
		opts:    mergeOptions(defaults, opts),
		trigger: NewTrigger(),
	}
	player.Ready(a.onPlayerReady)
	return a
}

// Options returns the merged options
func (a *AutoCaption) Options() Options {
	return a.opts
}

// State returns the trigger state
func (a *AutoCaption) State() State {
	return a.trigger.State()
}

// LastSelection returns the outcome of the most recent run
func (a *AutoCaption) LastSelection() Selection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Runs returns how many times selection has run
func (a *AutoCaption) Runs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runs
}

// Detach removes all listeners. A pending selection never runs afterwards.
func (a *AutoCaption) Detach() {
	a.trigger.Detach()

	a.mu.Lock()
	offs := a.offs
	a.offs = nil
	a.mu.Unlock()

	for _, off := range offs {
		if off != nil {
			off()
		}
	}
}

func (a *AutoCaption) onPlayerReady() {
	if !a.trigger.Arm() {
		return
	}

	if ps, ok := a.player.(PerSourcePlayer); ok && ps.PerSourceBehaviors() {
		a.listen(EventSourceChanged, func() {
			if a.trigger.Rearm() {
				log.Trace().Uint64("generation", a.trigger.Generation()).Msg("Auto caption: Re-armed for new source")
			}
		})
		a.listen(EventCanPlay, func() {
			a.update()
		})
		return
	}

	var off func()
	off = a.listen(EventCanPlay, func() {
		if a.update() && off != nil {
			off()
		}
	})
}

func (a *AutoCaption) listen(event Event, fn func()) func() {
	off := a.player.On(event, fn)
	a.mu.Lock()
	a.offs = append(a.offs, off)
	a.mu.Unlock()
	return off
}

// update runs selection if the trigger allows it and reports whether it ran
func (a *AutoCaption) update() bool {
	if !a.trigger.Fire() {
		return false
	}

	sel := Select(a.player.Language(), a.player.TextTracks())

	a.mu.Lock()
	a.last = sel
	a.runs++
	a.mu.Unlock()
	return true
}
