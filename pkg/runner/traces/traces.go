// Package traces lists, shows and follows stored teardown traces.
package traces

import (
	"context"
	"errors"

	"tableflip.dev/subviews/pkg/printers"
	"tableflip.dev/subviews/pkg/store"
)

type Traces struct {
	Persistence store.Persistence
	// ID selects a single trace; a unique prefix is enough.
	ID     string
	JSON   bool
	ShowID bool
	// Delete removes the trace selected by ID.
	Delete bool
	// Watch keeps printing newly stored traces until ctx is done.
	Watch   bool
	Printer *printers.PrettyPrint
}

func (t *Traces) Do(ctx context.Context) error {
	if t.Persistence == nil {
		return errors.New("traces: no persistence")
	}
	pp := t.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.ShowID = t.ShowID || t.ID == ""

	switch {
	case t.Delete:
		if t.ID == "" {
			return errors.New("traces: delete requires an id")
		}
		return t.Persistence.Delete(ctx, t.ID)
	case t.ID != "":
		tr, err := t.Persistence.Get(ctx, t.ID)
		if err != nil {
			return err
		}
		if t.JSON {
			return pp.JSON(tr)
		}
		pp.Trace(tr)
		pp.Events(tr)
	default:
		list := t.Persistence.List(ctx)
		if t.JSON {
			if err := pp.JSON(list); err != nil {
				return err
			}
		} else {
			pp.Traces(list)
		}
	}

	if !t.Watch {
		return nil
	}
	return t.follow(ctx, pp)
}

func (t *Traces) follow(ctx context.Context, pp *printers.PrettyPrint) error {
	ch, err := t.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for _, tr := range t.Persistence.List(ctx) {
		seen[tr.ID] = struct{}{}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if ev.Type == store.EventTraceDeleted {
				delete(seen, ev.ID)
				continue
			}
			// Invalidations and writes both re-list; only unseen traces print.
			for _, tr := range t.Persistence.List(ctx) {
				if _, ok := seen[tr.ID]; ok {
					continue
				}
				seen[tr.ID] = struct{}{}
				if t.JSON {
					if err := pp.JSON(tr); err != nil {
						return err
					}
					continue
				}
				pp.Trace(tr)
			}
		}
	}
}
