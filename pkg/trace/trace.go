// Package trace records the hook sequence of a teardown so it can be
// printed, compared and persisted.
package trace

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// Phase names the teardown step an Event was recorded in.
type Phase string

const (
	// PhaseBefore is the BeforeEachChildDestroy callback.
	PhaseBefore Phase = "before"
	// PhaseDestroy is the OnDestroy hook (pre-order).
	PhaseDestroy Phase = "destroy"
	// PhaseDetach is the Remove hook (post-order).
	PhaseDetach Phase = "detach"
	// PhaseRelease is StopListening without host detachment.
	PhaseRelease Phase = "release"
)

// Phases lists every phase in display order.
var Phases = []Phase{PhaseBefore, PhaseDestroy, PhaseDetach, PhaseRelease}

// Event is one recorded hook invocation.
type Event struct {
	Seq       int    `json:"seq"`
	Phase     Phase  `json:"phase"`
	Component string `json:"component"`
}

// Recorder collects events in call order. The zero value is ready for use.
type Recorder struct {
	events []Event
	// OnRecord, when set, is called with every event as it is recorded.
	OnRecord func(Event)
}

// Record appends an event for component.
func (r *Recorder) Record(phase Phase, component string) {
	if r == nil {
		return
	}
	evt := Event{Seq: len(r.events) + 1, Phase: phase, Component: component}
	r.events = append(r.events, evt)
	if r.OnRecord != nil {
		r.OnRecord(evt)
	}
}

// Events returns a copy of every recorded event. A nil recorder has none.
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Sequence returns the component names recorded for phase, in order.
func (r *Recorder) Sequence(phase Phase) []string {
	if r == nil {
		return nil
	}
	return sequence(r.events, phase)
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.events = nil
}

// Trace is a persisted teardown run.
type Trace struct {
	ID             string    `json:"id"`
	Created        time.Time `json:"created"`
	Root           string    `json:"root"`
	Target         string    `json:"target,omitempty"`
	DetachFromHost bool      `json:"detachFromHost"`
	Events         []Event   `json:"events"`
}

// New snapshots the recorder into a Trace. The ID is derived from the
// creation time and root name.
func New(root, target string, detach bool, rec *Recorder, now time.Time) *Trace {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s/%s/%d", root, target, now.UnixNano())))
	return &Trace{
		ID:             hex.EncodeToString(sum[:])[:16],
		Created:        now.UTC(),
		Root:           root,
		Target:         target,
		DetachFromHost: detach,
		Events:         rec.Events(),
	}
}

// Sequence returns the component names recorded for phase, in order.
func (t *Trace) Sequence(phase Phase) []string {
	return sequence(t.Events, phase)
}

// Count returns how many events were recorded for phase.
func (t *Trace) Count(phase Phase) int {
	return len(t.Sequence(phase))
}

func sequence(events []Event, phase Phase) []string {
	var out []string
	for _, e := range events {
		if e.Phase == phase {
			out = append(out, e.Component)
		}
	}
	return out
}
