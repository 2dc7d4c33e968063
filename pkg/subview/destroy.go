package subview

import "log/slog"

// frame is one unit of pending teardown work. A pass frame walks a snapshot
// of a registry's names; a finish frame runs the post-order half of one
// child's destruction once everything above it on the stack is done.
type frame struct {
	reg *Registry

	names []string
	next  int

	finish bool
	name   string
	entry  *entry
}

// walker runs a teardown on an explicit stack so tree depth is bounded by
// heap, not by the goroutine stack. The visiting order is the same as the
// recursive definition: OnDestroy pre-order, detachment post-order.
type walker struct {
	opts  DestroyOptions
	stack []frame
}

func newWalker(opts DestroyOptions) *walker {
	return &walker{opts: opts}
}

// subtree schedules a pass over every child of reg.
func (w *walker) subtree(reg *Registry) {
	if reg == nil || reg.Len() == 0 {
		return
	}
	w.stack = append(w.stack, frame{reg: reg, names: reg.Names()})
}

// enter runs OnDestroy for name and schedules its children followed by its
// own finish step.
func (w *walker) enter(reg *Registry, name string) error {
	e, ok := reg.live(name)
	if !ok {
		return nil
	}
	e.dying = true
	w.stack = append(w.stack, frame{reg: reg, finish: true, name: name, entry: e})
	if err := e.component.OnDestroy(); err != nil {
		return err
	}
	w.subtree(e.component.Subviews())
	return nil
}

func (w *walker) run() error {
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]

		if top.finish {
			f := *top
			w.stack = w.stack[:len(w.stack)-1]
			w.finishChild(f)
			continue
		}

		if top.next >= len(top.names) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		name := top.names[top.next]
		top.next++
		reg := top.reg

		e, ok := reg.live(name)
		if !ok {
			continue
		}
		if err := w.opts.BeforeEachChildDestroy(e.component); err != nil {
			return w.abort(err)
		}
		if err := w.enter(reg, name); err != nil {
			return w.abort(err)
		}
	}
	return nil
}

func (w *walker) finishChild(f frame) {
	c := f.entry.component
	c.UndelegateEvents()
	if w.opts.DetachFromHost {
		c.Remove()
	} else {
		c.StopListening()
	}
	c.Off()
	f.reg.remove(f.name, f.entry)
	slog.Debug("Destroyed subview.", "name", f.name, "detached", w.opts.DetachFromHost)
}

// abort leaves every unfinished component registered and destroyable again,
// then hands err back untouched.
func (w *walker) abort(err error) error {
	for _, f := range w.stack {
		if f.finish {
			f.entry.dying = false
		}
	}
	w.stack = nil
	slog.Warn("Subview teardown aborted by hook.", "error", err)
	return err
}
