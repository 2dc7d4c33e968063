// Package demo builds a layout headlessly, tears it down and reports the
// hook order.
package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/printers"
	"tableflip.dev/subviews/pkg/store"
	"tableflip.dev/subviews/pkg/subview"
	"tableflip.dev/subviews/pkg/trace"
	"tableflip.dev/subviews/pkg/tui/components/view"
	"tableflip.dev/subviews/pkg/tui/host"
)

// RootKey is the key of the view the layout is mounted under.
const RootKey = "root"

// Demo runs one teardown.
type Demo struct {
	Layout []layout.Node
	// Target is a slash separated path to the subview to destroy. Empty
	// destroys every top level subview.
	Target string
	// Detach removes destroyed views from the host.
	Detach bool
	// TraceBefore records the BeforeEachChildDestroy callback.
	TraceBefore bool
	// Persistence, when set, stores the trace.
	Persistence store.Persistence
	JSON        bool
	Printer     *printers.PrettyPrint

	// Now defaults to time.Now.
	Now func() time.Time

	// Result is the trace of the last run.
	Result *trace.Trace
}

func (d *Demo) Do(ctx context.Context) error {
	nodes := d.Layout
	if len(nodes) == 0 {
		nodes = layout.Default()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	pp := d.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	rec := &trace.Recorder{}
	root := view.New(view.Options{Key: RootKey, Host: host.New(), Recorder: rec})
	if err := layout.Build(root, nodes, view.Options{}); err != nil {
		return err
	}

	opts := []subview.DestroyOption{subview.WithDetach(d.Detach)}
	if d.TraceBefore {
		opts = append(opts, subview.BeforeEach(func(c subview.Component) error {
			if v, ok := c.(*view.View); ok {
				rec.Record(trace.PhaseBefore, v.Key())
			}
			return nil
		}))
	}

	target := strings.Trim(d.Target, "/")
	if err := teardown(root, target, opts); err != nil {
		return err
	}

	d.Result = trace.New(RootKey, target, d.Detach, rec, now())
	if d.Persistence != nil {
		if err := d.Persistence.Store(d.Result); err != nil {
			return err
		}
	}

	if d.JSON {
		return pp.JSON(d.Result)
	}
	pp.Trace(d.Result)
	return nil
}

func teardown(root *view.View, target string, opts []subview.DestroyOption) error {
	if target == "" {
		return root.DestroyAll(opts...)
	}
	parts := strings.Split(target, "/")
	owner := root
	for i, p := range parts[:len(parts)-1] {
		next, ok := owner.Child(p)
		if !ok {
			return fmt.Errorf("demo: %s is not in the layout", strings.Join(parts[:i+1], "/"))
		}
		owner = next
	}
	return owner.Destroy(parts[len(parts)-1], opts...)
}
