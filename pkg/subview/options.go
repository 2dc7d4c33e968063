package subview

// DestroyOptions configures a single Destroy or DestroyAll call. The value is
// built fresh for every call and passed unchanged through the whole descent.
type DestroyOptions struct {
	// DetachFromHost calls Remove on each destroyed component. When false only
	// StopListening is called and the component stays in its host.
	DetachFromHost bool
	// BeforeEachChildDestroy is called with every child right before its
	// destruction starts, at every level of a DestroyAll descent.
	BeforeEachChildDestroy func(Component) error
}

// DestroyOption mutates the options of one teardown call.
type DestroyOption func(*DestroyOptions)

// DefaultDestroyOptions returns the defaults: detach from host, no callback.
func DefaultDestroyOptions() DestroyOptions {
	return DestroyOptions{
		DetachFromHost:         true,
		BeforeEachChildDestroy: noopBeforeEach,
	}
}

func noopBeforeEach(Component) error { return nil }

// WithDetach sets DetachFromHost.
func WithDetach(detach bool) DestroyOption {
	return func(o *DestroyOptions) { o.DetachFromHost = detach }
}

// KeepInHost skips host detachment but still releases listener subscriptions.
func KeepInHost() DestroyOption { return WithDetach(false) }

// BeforeEach installs a callback invoked before each child is destroyed.
// Passing nil keeps the no-op default.
func BeforeEach(fn func(Component) error) DestroyOption {
	return func(o *DestroyOptions) {
		if fn != nil {
			o.BeforeEachChildDestroy = fn
		}
	}
}

// WithOptions replaces the defaults with a complete options value.
func WithOptions(opts DestroyOptions) DestroyOption {
	return func(o *DestroyOptions) {
		*o = opts
		if o.BeforeEachChildDestroy == nil {
			o.BeforeEachChildDestroy = noopBeforeEach
		}
	}
}

func newDestroyOptions(opts []DestroyOption) DestroyOptions {
	o := DefaultDestroyOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
