// Package simhost provides an in-process media player that satisfies
// autocaption.Player. It dispatches lifecycle events synchronously.
package simhost

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/autocaption/internal/autocaption"
)

type listener struct {
	id int
	fn func()
}

// Player is a simulated host player
type Player struct {
	mu        sync.Mutex
	language  string
	source    string
	tracks    []*autocaption.Track
	perSource bool
	ready     bool
	disposed  bool
	readyFns  []func()
	listeners map[autocaption.Event][]listener
	nextID    int
}

// New creates a player. perSource controls whether source changes are announced.
func New(language string, perSource bool) *Player {
	return &Player{
		language:  language,
		perSource: perSource,
		listeners: make(map[autocaption.Event][]listener),
	}
}

// Language returns the player language
func (p *Player) Language() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.language
}

// SetLanguage changes the player language
func (p *Player) SetLanguage(language string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.language = language
}

// Source returns the current source name
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// TextTracks returns the loaded tracks
func (p *Player) TextTracks() []*autocaption.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracks
}

// PerSourceBehaviors reports whether source changes are announced
func (p *Player) PerSourceBehaviors() bool {
	return p.perSource
}

// Ready calls fn when the player becomes ready, immediately if it already is
func (p *Player) Ready(fn func()) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	if !p.ready {
		p.readyFns = append(p.readyFns, fn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	fn()
}

// On subscribes fn to event. The returned function is safe to call more than once.
func (p *Player) On(event autocaption.Event, fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return func() {}
	}
	p.nextID++
	id := p.nextID
	p.listeners[event] = append(p.listeners[event], listener{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		ls := p.listeners[event]
		for i, l := range ls {
			if l.id == id {
				p.listeners[event] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of subscribers for event
func (p *Player) Listeners(event autocaption.Event) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners[event])
}

// MarkReady flags the player ready and runs pending ready callbacks
func (p *Player) MarkReady() {
	p.mu.Lock()
	if p.ready || p.disposed {
		p.mu.Unlock()
		return
	}
	p.ready = true
	fns := p.readyFns
	p.readyFns = nil
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Load replaces the source and its tracks. Per-source players announce the change.
func (p *Player) Load(source string, tracks []*autocaption.Track) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.source = source
	p.tracks = tracks
	p.mu.Unlock()

	log.Debug().Str("source", source).Int("tracks", len(tracks)).Msg("Simulated player loaded source")

	if p.perSource {
		p.emit(autocaption.EventSourceChanged)
	}
}

// Play signals that the current source can play
func (p *Player) Play() {
	p.emit(autocaption.EventCanPlay)
}

// Dispose tears the player down and drops every listener
func (p *Player) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposed = true
	p.readyFns = nil
	p.listeners = make(map[autocaption.Event][]listener)
}

func (p *Player) emit(event autocaption.Event) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	ls := make([]listener, len(p.listeners[event]))
	copy(ls, p.listeners[event])
	p.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}
