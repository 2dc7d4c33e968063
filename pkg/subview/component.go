package subview

// Component is a unit that owns named children and can be torn down by the
// registry of its parent.
//
// Every hook is invoked unconditionally during teardown. Embed Base to get
// no-op implementations and override only the hooks a component cares about.
type Component interface {
	// Subviews returns the registry of children owned by this component.
	Subviews() *Registry
	// OnDestroy runs before the component's own children are destroyed.
	OnDestroy() error
	// UndelegateEvents releases bindings delegated to the component by its host.
	UndelegateEvents()
	// StopListening releases every subscription the component holds as a listener.
	StopListening()
	// Remove releases listener subscriptions and detaches the component from
	// its host.
	Remove()
	// Off drops every callback registered directly on the component.
	Off()
}

// Factory constructs a component from options passed through verbatim by
// Registry.Register.
type Factory func(opts any) Component

// Base owns a component's Registry and implements every Component hook as a
// no-op.
type Base struct {
	registry Registry
}

// Subviews returns the registry owned by the embedding component.
func (b *Base) Subviews() *Registry { return &b.registry }

// OnDestroy is a no-op default.
func (b *Base) OnDestroy() error { return nil }

// UndelegateEvents is a no-op default.
func (b *Base) UndelegateEvents() {}

// StopListening is a no-op default.
func (b *Base) StopListening() {}

// Remove is a no-op default.
func (b *Base) Remove() {}

// Off is a no-op default.
func (b *Base) Off() {}
