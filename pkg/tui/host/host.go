// Package host is the display surface components attach to. It keeps the
// mounted components in tree order, renders them with Lip Gloss and routes
// key presses to the bindings components delegated to it.
package host

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/subviews/pkg/tui/events"
)

// Renderer is anything the host can draw.
type Renderer interface {
	View() string
}

// KeyHandler handles a delegated key press.
type KeyHandler func(tea.KeyPressMsg) tea.Cmd

// Styles controls how mounted components are drawn.
type Styles struct {
	Line     lipgloss.Style
	Selected lipgloss.Style
	Indent   string
}

// DefaultStyles returns the stock host styling.
func DefaultStyles() Styles {
	return Styles{
		Line:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Reverse(true),
		Indent:   "  ",
	}
}

type slot struct {
	id       events.ComponentID
	depth    int
	renderer Renderer
}

type delegation struct {
	id       events.ComponentID
	bindings []key.Binding
	handler  KeyHandler
}

// Host keeps the attached components in depth-first order. It is not safe
// for concurrent use.
type Host struct {
	slots       []slot
	delegations []delegation
	selected    events.ComponentID
	styles      Styles
}

// New returns an empty host.
func New() *Host {
	return &Host{styles: DefaultStyles()}
}

// WithStyles overrides the default styling.
func (h *Host) WithStyles(styles Styles) {
	h.styles = styles
}

// Attach mounts r under parent, after the parent's existing descendants. An
// empty parent, or one that is not attached, mounts r at the top level.
// Attaching an id that is already mounted replaces its renderer in place.
func (h *Host) Attach(id, parent events.ComponentID, r Renderer) {
	if i := h.index(id); i >= 0 {
		h.slots[i].renderer = r
		return
	}

	p := h.index(parent)
	if parent == "" || p < 0 {
		h.slots = append(h.slots, slot{id: id, renderer: r})
		return
	}

	depth := h.slots[p].depth + 1
	at := p + 1
	for at < len(h.slots) && h.slots[at].depth >= depth {
		at++
	}
	h.slots = append(h.slots, slot{})
	copy(h.slots[at+1:], h.slots[at:])
	h.slots[at] = slot{id: id, depth: depth, renderer: r}
}

// Detach unmounts id and reports whether it was attached. Descendants stay
// mounted; callers detach them first.
func (h *Host) Detach(id events.ComponentID) bool {
	i := h.index(id)
	if i < 0 {
		return false
	}
	h.slots = append(h.slots[:i], h.slots[i+1:]...)
	if h.selected == id {
		h.selected = ""
	}
	return true
}

// Attached reports whether id is mounted.
func (h *Host) Attached(id events.ComponentID) bool {
	return h.index(id) >= 0
}

// Depth returns the nesting depth of id, or -1 when it is not mounted.
func (h *Host) Depth(id events.ComponentID) int {
	if i := h.index(id); i >= 0 {
		return h.slots[i].depth
	}
	return -1
}

// IDs returns the mounted ids in display order.
func (h *Host) IDs() []events.ComponentID {
	out := make([]events.ComponentID, 0, len(h.slots))
	for _, s := range h.slots {
		out = append(out, s.id)
	}
	return out
}

// Len returns the number of mounted components.
func (h *Host) Len() int { return len(h.slots) }

// Select highlights id when rendering.
func (h *Host) Select(id events.ComponentID) { h.selected = id }

// Selected returns the highlighted id.
func (h *Host) Selected() events.ComponentID { return h.selected }

// View renders every mounted component, indented by depth and truncated to
// width when width is positive.
func (h *Host) View(width int) string {
	if len(h.slots) == 0 {
		return ""
	}
	rows := make([]string, 0, len(h.slots))
	for _, s := range h.slots {
		indent := strings.Repeat(h.styles.Indent, s.depth)
		style := h.styles.Line
		if s.id == h.selected {
			style = h.styles.Selected
		}
		for _, line := range strings.Split(s.renderer.View(), "\n") {
			line = indent + line
			if width > 0 {
				line = truncate.StringWithTail(line, uint(width), "…")
			}
			rows = append(rows, style.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Delegate routes key presses matching bindings to handler on behalf of id.
func (h *Host) Delegate(id events.ComponentID, handler KeyHandler, bindings ...key.Binding) {
	if handler == nil || len(bindings) == 0 {
		return
	}
	h.delegations = append(h.delegations, delegation{id: id, bindings: bindings, handler: handler})
}

// Undelegate drops every binding delegated by id and returns how many were
// dropped.
func (h *Host) Undelegate(id events.ComponentID) int {
	kept := h.delegations[:0]
	dropped := 0
	for _, d := range h.delegations {
		if d.id == id {
			dropped++
			continue
		}
		kept = append(kept, d)
	}
	h.delegations = kept
	return dropped
}

// Delegations returns the number of bindings delegated by id.
func (h *Host) Delegations(id events.ComponentID) int {
	n := 0
	for _, d := range h.delegations {
		if d.id == id {
			n++
		}
	}
	return n
}

// Dispatch calls every delegated handler whose bindings match msg, most
// recently delegated first, and batches their commands.
func (h *Host) Dispatch(msg tea.KeyPressMsg) tea.Cmd {
	var cmds []tea.Cmd
	snapshot := make([]delegation, len(h.delegations))
	copy(snapshot, h.delegations)
	for i := len(snapshot) - 1; i >= 0; i-- {
		d := snapshot[i]
		if !key.Matches(msg, d.bindings...) {
			continue
		}
		if cmd := d.handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (h *Host) index(id events.ComponentID) int {
	if id == "" {
		return -1
	}
	for i, s := range h.slots {
		if s.id == id {
			return i
		}
	}
	return -1
}
