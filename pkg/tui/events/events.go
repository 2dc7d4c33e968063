// Package events provides the callback and subscription plumbing shared by
// components: an Emitter that other parties register callbacks on, and a
// Listener that tracks the subscriptions a component holds on other emitters.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Lifecycle event names emitted by components.
const (
	// EventDestroy fires when a component starts tearing down.
	EventDestroy = "destroy"
	// EventDetach fires when a component leaves its host.
	EventDetach = "detach"
	// EventChange fires when a component's set of children changes.
	EventChange = "change"
)

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a child was registered.
	ChangeCreate ChangeType = "create"
	// ChangeDelete indicates a child was destroyed.
	ChangeDelete ChangeType = "delete"
)

// Change is the payload of EventChange.
type Change struct {
	Action ChangeType
	Child  string
}

// Event is delivered to handlers by Emit.
type Event struct {
	Name    string
	Source  ComponentID
	Payload any
}

// Describe renders the event in a human-friendly format for logs.
func (e Event) Describe() string {
	if c, ok := e.Payload.(Change); ok {
		return fmt.Sprintf(`event:%q source:%q action:%q child:%q`, e.Name, e.Source, c.Action, c.Child)
	}
	return fmt.Sprintf(`event:%q source:%q`, e.Name, e.Source)
}

// Handler receives emitted events.
type Handler func(Event)

type handlerEntry struct {
	id uint64
	fn Handler
}

// Emitter holds callbacks registered directly on a component.
// It is not safe for concurrent use.
type Emitter struct {
	id       ComponentID
	nextID   uint64
	handlers map[string][]handlerEntry
}

// NewEmitter returns an emitter whose events carry id as their source.
func NewEmitter(id ComponentID) *Emitter {
	return &Emitter{id: id, handlers: make(map[string][]handlerEntry)}
}

// ID returns the source identifier stamped on emitted events.
func (e *Emitter) ID() ComponentID { return e.id }

// On registers fn for the named event.
func (e *Emitter) On(name string, fn Handler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	e.nextID++
	e.handlers[name] = append(e.handlers[name], handlerEntry{id: e.nextID, fn: fn})
	return Subscription{emitter: e, name: name, id: e.nextID}
}

// Emit calls every handler registered for name in registration order and
// returns how many were called. Handlers added or removed while emitting take
// effect on the next emission.
func (e *Emitter) Emit(name string, payload any) int {
	current := e.handlers[name]
	if len(current) == 0 {
		return 0
	}
	snapshot := make([]handlerEntry, len(current))
	copy(snapshot, current)
	evt := Event{Name: name, Source: e.id, Payload: payload}
	for _, h := range snapshot {
		h.fn(evt)
	}
	return len(snapshot)
}

// OffEvent drops every handler registered for name.
func (e *Emitter) OffEvent(name string) {
	delete(e.handlers, name)
}

// Off drops every handler for every event.
func (e *Emitter) Off() {
	e.handlers = make(map[string][]handlerEntry)
}

// Count returns the number of registered handlers.
func (e *Emitter) Count() int {
	n := 0
	for _, hs := range e.handlers {
		n += len(hs)
	}
	return n
}

func (e *Emitter) cancel(name string, id uint64) bool {
	hs := e.handlers[name]
	for i, h := range hs {
		if h.id == id {
			e.handlers[name] = append(hs[:i:i], hs[i+1:]...)
			if len(e.handlers[name]) == 0 {
				delete(e.handlers, name)
			}
			return true
		}
	}
	return false
}

// Subscription identifies one handler registered on an Emitter.
type Subscription struct {
	emitter *Emitter
	name    string
	id      uint64
}

// Cancel removes the handler. It reports whether the handler was still
// registered; calling it again is a no-op.
func (s Subscription) Cancel() bool {
	if s.emitter == nil {
		return false
	}
	return s.emitter.cancel(s.name, s.id)
}

// Active reports whether the handler is still registered.
func (s Subscription) Active() bool {
	if s.emitter == nil {
		return false
	}
	for _, h := range s.emitter.handlers[s.name] {
		if h.id == s.id {
			return true
		}
	}
	return false
}

// Listener tracks the subscriptions a component holds on other emitters so
// they can be released together. The zero value is ready for use.
type Listener struct {
	subs []Subscription
}

// ListenTo registers fn on src and remembers the subscription.
func (l *Listener) ListenTo(src *Emitter, name string, fn Handler) Subscription {
	if src == nil {
		return Subscription{}
	}
	sub := src.On(name, fn)
	if sub.emitter != nil {
		l.subs = append(l.subs, sub)
	}
	return sub
}

// StopListening cancels every tracked subscription and returns how many were
// still active.
func (l *Listener) StopListening() int {
	n := 0
	for _, sub := range l.subs {
		if sub.Cancel() {
			n++
		}
	}
	l.subs = nil
	return n
}

// Listening returns the number of tracked subscriptions that are still active.
func (l *Listener) Listening() int {
	n := 0
	for _, sub := range l.subs {
		if sub.Active() {
			n++
		}
	}
	return n
}

// EmittedMsg reports an emission performed by EmitCmd.
type EmittedMsg struct {
	Event     Event
	Delivered int
}

// Describe renders the emission for logs.
func (m EmittedMsg) Describe() string {
	return fmt.Sprintf(`%s delivered:%d`, m.Event.Describe(), m.Delivered)
}

// EmitCmd wraps an emission into a tea.Cmd for callers that want to emit as
// part of an Update result.
func EmitCmd(e *Emitter, name string, payload any) tea.Cmd {
	return func() tea.Msg {
		n := e.Emit(name, payload)
		return EmittedMsg{
			Event:     Event{Name: name, Source: e.ID(), Payload: payload},
			Delivered: n,
		}
	}
}
