package subview

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Registry maps names to the children owned by one component. Names keep
// their registration order. The zero value is an empty registry.
type Registry struct {
	names    []string
	children map[string]*entry
}

type entry struct {
	component Component
	// dying is set once OnDestroy ran and cleared if the pass aborts before
	// the entry is removed.
	dying bool
}

// Register builds a child with factory(opts) and stores it under name.
// The factory is not called when name is empty or already taken.
func (r *Registry) Register(name string, factory Factory, opts any) (Component, error) {
	if name == "" {
		return nil, &NameError{Op: "register", Name: name, Err: ErrInvalidName}
	}
	if _, taken := r.children[name]; taken {
		return nil, &NameError{Op: "register", Name: name, Err: ErrNameConflict}
	}

	child := factory(opts)
	if isNil(child) {
		return nil, &NameError{Op: "register", Name: name, Err: ErrNilComponent}
	}
	// A factory closing over this registry may have claimed name meanwhile.
	if _, taken := r.children[name]; taken {
		discard(name, child)
		return nil, &NameError{Op: "register", Name: name, Err: ErrNameConflict}
	}

	if r.children == nil {
		r.children = make(map[string]*entry)
	}
	r.children[name] = &entry{component: child}
	r.names = append(r.names, name)
	slog.Debug("Registering subview.", "name", name, "type", fmt.Sprintf("%T", child))
	return child, nil
}

// Add registers a child built by a typed factory on owner's registry.
func Add[O any, C Component](owner Component, name string, factory func(O) C, opts O) (C, error) {
	var zero C
	child, err := owner.Subviews().Register(name, func(any) Component {
		return factory(opts)
	}, opts)
	if err != nil {
		return zero, err
	}
	return child.(C), nil
}

// discard tears down a child that was built but never stored, detaching it
// and its descendants from the host.
func discard(name string, child Component) {
	orphan := &Registry{
		names:    []string{name},
		children: map[string]*entry{name: {component: child}},
	}
	if err := orphan.DestroyAll(); err != nil {
		slog.Warn("Discarding unregistered subview failed.", "name", name, "error", err)
	}
}

// isNil reports whether c is nil or an interface holding a nil pointer,
// map, slice, func or chan.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Get returns the child registered under name.
func (r *Registry) Get(name string) (Component, bool) {
	e, ok := r.children[name]
	if !ok {
		return nil, false
	}
	return e.component, true
}

// Has reports whether name maps to a registered child.
func (r *Registry) Has(name string) bool {
	_, ok := r.children[name]
	return ok
}

// Names returns a snapshot of the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered children.
func (r *Registry) Len() int {
	return len(r.names)
}

// Each calls fn for every child in registration order over a snapshot of the
// names, stopping early when fn returns false.
func (r *Registry) Each(fn func(name string, child Component) bool) {
	for _, name := range r.Names() {
		e, ok := r.children[name]
		if !ok {
			continue
		}
		if !fn(name, e.component) {
			return
		}
	}
}

// Destroy tears down the child registered under name together with its whole
// subtree, then removes it from the registry.
func (r *Registry) Destroy(name string, opts ...DestroyOption) error {
	if _, ok := r.live(name); !ok {
		return &NameError{Op: "destroy", Name: name, Err: ErrNotFound}
	}
	w := newWalker(newDestroyOptions(opts))
	if err := w.enter(r, name); err != nil {
		return w.abort(err)
	}
	return w.run()
}

// DestroyAll destroys every child currently registered. The names are
// snapshotted once; a name removed while the pass runs is skipped.
func (r *Registry) DestroyAll(opts ...DestroyOption) error {
	w := newWalker(newDestroyOptions(opts))
	w.subtree(r)
	return w.run()
}

// DestroySubtree destroys every child of context. It is DestroyAll with the
// owning component named explicitly.
func DestroySubtree(context Component, opts ...DestroyOption) error {
	reg := context.Subviews()
	if reg == nil {
		return nil
	}
	return reg.DestroyAll(opts...)
}

// live returns the entry for name unless it is already being torn down.
func (r *Registry) live(name string) (*entry, bool) {
	e, ok := r.children[name]
	if !ok || e.dying {
		return nil, false
	}
	return e, true
}

// remove deletes name only while it still maps to e.
func (r *Registry) remove(name string, e *entry) {
	if cur, ok := r.children[name]; !ok || cur != e {
		return
	}
	delete(r.children, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}
