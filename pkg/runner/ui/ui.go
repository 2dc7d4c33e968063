// Package ui runs the interactive subview tree.
package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/store"
	"tableflip.dev/subviews/pkg/trace"
	"tableflip.dev/subviews/pkg/tui/theme"
)

// UI launches the tree for a layout.
type UI struct {
	Layout []layout.Node
	// Persistence, when set, stores every teardown.
	Persistence store.Persistence
}

func (u *UI) Do(ctx context.Context) error {
	nodes := u.Layout
	if len(nodes) == 0 {
		nodes = layout.Default()
	}

	var onTrace func(*trace.Trace)
	if u.Persistence != nil {
		onTrace = func(t *trace.Trace) {
			if err := u.Persistence.Store(t); err != nil {
				fmt.Fprintf(os.Stderr, "ui: %v\n", err)
			}
		}
	}

	m, err := New(nodes, theme.Default(), onTrace)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
