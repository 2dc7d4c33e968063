// Package subview implements a hierarchical component-ownership registry.
//
// Every Component owns a Registry mapping symbolic names to the child
// components it created. Destroying a child tears down its whole subtree in
// two phases: OnDestroy fires root-to-leaf (pre-order) while host detachment
// fires leaf-to-root (post-order), so a component is only detached once every
// descendant is gone.
//
// Concrete components embed Base, which owns the registry and supplies no-op
// hooks:
//
//	type panel struct {
//	    subview.Base
//	}
//
//	func (p *panel) OnDestroy() error {
//	    // subtree is still intact here
//	    return nil
//	}
//
//	child, err := subview.Add(parent, "sidebar", newPanel, panelOptions{})
//	...
//	err = parent.Subviews().Destroy("sidebar", subview.KeepInHost())
//
// Registries are not safe for concurrent use. Mutate them from the goroutine
// that owns the component tree (the Bubble Tea Update loop).
//
// Teardown is not atomic. An error returned by OnDestroy or by a
// BeforeEachChildDestroy callback aborts the pass and is returned unchanged;
// children already torn down stay destroyed, while the component whose hook
// failed and the ancestors being destroyed with it stay registered.
package subview
