// Package ui defines the Bubble Tea side of a component.
package ui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/subviews/pkg/subview"
)

// Component is what a Bubble Tea program needs to drive and draw a widget.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Owner is a Component that also owns named subviews.
type Owner interface {
	Component
	subview.Component
}
