// Package view provides the concrete component used across subviews: a
// Bubble Tea widget that owns named children, mounts itself in a host,
// emits lifecycle events and records its teardown hooks.
package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/subviews/pkg/subview"
	"tableflip.dev/subviews/pkg/trace"
	"tableflip.dev/subviews/pkg/tui/events"
	"tableflip.dev/subviews/pkg/tui/host"
	"tableflip.dev/subviews/pkg/tui/ui"
)

// Options configures a View. AddSubview fills Key, Parent, Host, Recorder
// and Style from the parent when they are left empty.
type Options struct {
	// Key is the name recorded in traces; it defaults to the registry name.
	Key string
	// Title is rendered in the host; it defaults to Key.
	Title string
	// Parent is the host id of the owning view.
	Parent events.ComponentID
	// Host is the display surface the view mounts itself into.
	Host *host.Host
	// Recorder receives the view's teardown hooks.
	Recorder *trace.Recorder
	// Keys are delegated to the host and routed to OnKey.
	Keys  []key.Binding
	OnKey host.KeyHandler
	// OnDestroy runs after the destroy hook is recorded.
	OnDestroy func(*View) error
	// Style is applied to the rendered title.
	Style *lipgloss.Style
	// StyleFor, when set, picks the style of children by depth.
	StyleFor func(depth int) lipgloss.Style

	// name is the registry name set by AddSubview; it names the host slot.
	name string
}

// View is a component that owns named subviews.
type View struct {
	subview.Base

	opts     Options
	id       events.ComponentID
	depth    int
	emitter  *events.Emitter
	listener events.Listener

	width  int
	height int
}

var (
	_ ui.Owner          = (*View)(nil)
	_ subview.Component = (*View)(nil)
)

// New constructs a view and mounts it in opts.Host. It is the registry
// factory used by AddSubview.
func New(opts Options) *View {
	if opts.Title == "" {
		opts.Title = opts.Key
	}
	id := events.ComponentID(opts.Key)
	if opts.name != "" {
		id = events.ComponentID(opts.name)
	}
	if opts.Parent != "" {
		id = opts.Parent + "/" + id
	}
	v := &View{
		opts:    opts,
		id:      id,
		emitter: events.NewEmitter(id),
	}
	if opts.Host != nil {
		opts.Host.Attach(id, opts.Parent, v)
		v.depth = opts.Host.Depth(id)
		if opts.OnKey != nil && len(opts.Keys) > 0 {
			opts.Host.Delegate(id, opts.OnKey, opts.Keys...)
		}
	}
	if opts.Style == nil && opts.StyleFor != nil {
		s := opts.StyleFor(v.depth)
		v.opts.Style = &s
	}
	return v
}

// ID returns the host id of the view, its registry name path from the root.
func (v *View) ID() events.ComponentID { return v.id }

// Key returns the name the view records in traces.
func (v *View) Key() string { return v.opts.Key }

// Title returns the rendered title.
func (v *View) Title() string { return v.opts.Title }

// Depth returns the host depth the view was mounted at.
func (v *View) Depth() int { return v.depth }

// Emitter returns the emitter other components register callbacks on.
func (v *View) Emitter() *events.Emitter { return v.emitter }

// ListenTo subscribes the view to an event on another view. The
// subscription is released when the view is torn down.
func (v *View) ListenTo(src *View, name string, fn events.Handler) events.Subscription {
	return v.listener.ListenTo(src.Emitter(), name, fn)
}

// Listening returns the number of live subscriptions the view holds.
func (v *View) Listening() int { return v.listener.Listening() }

// AddSubview creates and registers a child view under name.
func (v *View) AddSubview(name string, opts Options) (*View, error) {
	if opts.Key == "" {
		opts.Key = name
	}
	opts.name = name
	opts.Parent = v.id
	if opts.Host == nil {
		opts.Host = v.opts.Host
	}
	if opts.Recorder == nil {
		opts.Recorder = v.opts.Recorder
	}
	if opts.StyleFor == nil {
		opts.StyleFor = v.opts.StyleFor
	}
	child, err := subview.Add(v, name, New, opts)
	if err != nil {
		return nil, err
	}
	v.emitter.Emit(events.EventChange, events.Change{Action: events.ChangeCreate, Child: name})
	return child, nil
}

// Child returns the direct child registered under name.
func (v *View) Child(name string) (*View, bool) {
	c, ok := v.Subviews().Get(name)
	if !ok {
		return nil, false
	}
	child, ok := c.(*View)
	return child, ok
}

// Destroy tears down the child registered under name.
func (v *View) Destroy(name string, opts ...subview.DestroyOption) error {
	if err := v.Subviews().Destroy(name, opts...); err != nil {
		return err
	}
	v.emitter.Emit(events.EventChange, events.Change{Action: events.ChangeDelete, Child: name})
	return nil
}

// DestroyAll tears down every child of the view.
func (v *View) DestroyAll(opts ...subview.DestroyOption) error {
	names := v.Subviews().Names()
	err := v.Subviews().DestroyAll(opts...)
	for _, name := range names {
		if !v.Subviews().Has(name) {
			v.emitter.Emit(events.EventChange, events.Change{Action: events.ChangeDelete, Child: name})
		}
	}
	return err
}

// OnDestroy implements subview.Component.
func (v *View) OnDestroy() error {
	v.opts.Recorder.Record(trace.PhaseDestroy, v.opts.Key)
	v.emitter.Emit(events.EventDestroy, nil)
	if v.opts.OnDestroy != nil {
		return v.opts.OnDestroy(v)
	}
	return nil
}

// UndelegateEvents implements subview.Component.
func (v *View) UndelegateEvents() {
	if v.opts.Host != nil {
		v.opts.Host.Undelegate(v.id)
	}
}

// StopListening implements subview.Component. It is only called when the
// view stays in its host.
func (v *View) StopListening() {
	v.listener.StopListening()
	v.opts.Recorder.Record(trace.PhaseRelease, v.opts.Key)
}

// Remove implements subview.Component.
func (v *View) Remove() {
	v.listener.StopListening()
	if v.opts.Host != nil {
		v.opts.Host.Detach(v.id)
	}
	v.emitter.Emit(events.EventDetach, nil)
	v.opts.Recorder.Record(trace.PhaseDetach, v.opts.Key)
}

// Off implements subview.Component.
func (v *View) Off() {
	v.emitter.Off()
}

// Init implements ui.Component.
func (v *View) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (v *View) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.SetSize(size.Width, size.Height)
	}
	return v, nil
}

// SetSize implements ui.Component.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the title and the number of direct children.
func (v *View) View() string {
	title := v.opts.Title
	if v.opts.Style != nil {
		title = v.opts.Style.Render(title)
	}
	if n := v.Subviews().Len(); n > 0 {
		return fmt.Sprintf("%s (%d)", title, n)
	}
	return title
}
