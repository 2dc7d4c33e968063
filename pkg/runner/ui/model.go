package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/subview"
	"tableflip.dev/subviews/pkg/trace"
	"tableflip.dev/subviews/pkg/tui/components/eventviewer"
	"tableflip.dev/subviews/pkg/tui/components/view"
	"tableflip.dev/subviews/pkg/tui/events"
	"tableflip.dev/subviews/pkg/tui/host"
	"tableflip.dev/subviews/pkg/tui/theme"
)

// RootKey is the key of the view every layout is mounted under.
const RootKey = "root"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Destroy key.Binding
	Keep    key.Binding
	Rebuild key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Destroy: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "destroy")),
		Keep:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "destroy, keep in host")),
		Rebuild: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() string {
	parts := make([]string, 0, 6)
	for _, b := range []key.Binding{k.Down, k.Up, k.Destroy, k.Keep, k.Rebuild, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// delegatedKeyMsg reports a key press handled by a mounted view.
type delegatedKeyMsg struct {
	key string
}

// Model is the interactive tree. Selecting a view and destroying it tears
// down its subtree, logging every hook in the teardown panel.
type Model struct {
	nodes   []layout.Node
	theme   theme.Theme
	keys    keyMap
	onTrace func(*trace.Trace)
	now     func() time.Time

	host     *host.Host
	recorder *trace.Recorder
	root     *view.View
	log      *eventviewer.Model

	cursor int
	status string
	err    error

	width  int
	height int
}

// New builds nodes under a fresh root. onTrace, when set, receives every
// completed teardown.
func New(nodes []layout.Node, th theme.Theme, onTrace func(*trace.Trace)) (*Model, error) {
	m := &Model{
		nodes:   nodes,
		theme:   th,
		keys:    defaultKeys(),
		onTrace: onTrace,
		now:     time.Now,
		log:     eventviewer.NewModel(200),
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) build() error {
	m.host = host.New()
	m.host.WithStyles(host.Styles{
		Line:     lipgloss.NewStyle(),
		Selected: m.theme.Tree.Selected,
		Indent:   "  ",
	})
	m.recorder = &trace.Recorder{OnRecord: m.log.AppendTrace}
	m.root = view.New(view.Options{
		Key:      RootKey,
		Title:    "subviews",
		Host:     m.host,
		Recorder: m.recorder,
		StyleFor: m.theme.Tree.DepthStyle,
	})
	base := view.Options{
		OnKey: func(msg tea.KeyPressMsg) tea.Cmd {
			return func() tea.Msg { return delegatedKeyMsg{key: msg.String()} }
		},
	}
	if err := layout.Build(m.root, m.nodes, base); err != nil {
		return err
	}
	m.cursor = 0
	m.syncSelection()
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layoutPanes()
		return m, nil
	case delegatedKeyMsg:
		m.setStatus(fmt.Sprintf("%q handled by a mounted view", v.key), nil)
		return m, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(v, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(v, m.keys.Down):
			m.move(1)
		case key.Matches(v, m.keys.Up):
			m.move(-1)
		case key.Matches(v, m.keys.Destroy):
			m.destroySelected(true)
		case key.Matches(v, m.keys.Keep):
			m.destroySelected(false)
		case key.Matches(v, m.keys.Rebuild):
			m.rebuild()
		default:
			return m, m.host.Dispatch(v)
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	ids := m.host.IDs()
	if len(ids) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(ids)) % len(ids)
	m.syncSelection()
}

func (m *Model) syncSelection() {
	ids := m.host.IDs()
	if len(ids) == 0 {
		m.cursor = 0
		m.host.Select("")
		return
	}
	if m.cursor >= len(ids) {
		m.cursor = len(ids) - 1
	}
	m.host.Select(ids[m.cursor])
}

// destroySelected tears down the selected view. Selecting the root tears
// down all of its children.
func (m *Model) destroySelected(detach bool) {
	id := m.host.Selected()
	if id == "" {
		m.setStatus("nothing selected", nil)
		return
	}
	parent, name, err := m.resolve(id)
	if err != nil {
		m.setStatus("", err)
		return
	}

	m.recorder.Reset()
	opts := []subview.DestroyOption{subview.WithDetach(detach)}
	if name == "" {
		err = parent.DestroyAll(opts...)
	} else {
		err = parent.Destroy(name, opts...)
	}
	if err != nil {
		m.setStatus("", err)
		m.syncSelection()
		return
	}

	tr := trace.New(RootKey, name, detach, m.recorder, m.now())
	if m.onTrace != nil {
		m.onTrace(tr)
	}
	target := name
	if target == "" {
		target = "all subviews"
	}
	m.setStatus(fmt.Sprintf("destroyed %s: %d views", target, tr.Count(trace.PhaseDestroy)), nil)
	m.syncSelection()
}

// resolve maps a host id to the owning view and the child name. The root
// resolves to itself with an empty name.
func (m *Model) resolve(id events.ComponentID) (*view.View, string, error) {
	parts := strings.Split(string(id), "/")
	if len(parts) == 0 || parts[0] != RootKey {
		return nil, "", fmt.Errorf("unknown view %q", id)
	}
	if len(parts) == 1 {
		return m.root, "", nil
	}
	owner := m.root
	for _, p := range parts[1 : len(parts)-1] {
		next, ok := owner.Child(p)
		if !ok {
			return nil, "", fmt.Errorf("%q is no longer registered", id)
		}
		owner = next
	}
	return owner, parts[len(parts)-1], nil
}

func (m *Model) rebuild() {
	if err := m.root.DestroyAll(); err != nil {
		m.setStatus("", err)
		return
	}
	m.log.Clear()
	if err := m.build(); err != nil {
		m.setStatus("", err)
		return
	}
	m.layoutPanes()
	m.setStatus(fmt.Sprintf("rebuilt %d views", layout.Count(m.nodes)), nil)
}

func (m *Model) setStatus(status string, err error) {
	m.status = status
	m.err = err
}

func (m *Model) treeWidth() int {
	return max(m.width/2, 20)
}

func (m *Model) layoutPanes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.log.SetSize(m.width-m.treeWidth(), m.height-2)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing…"
	}
	frame := m.theme.Panel.Frame
	treeWidth := m.treeWidth()
	inner := max(treeWidth-frame.GetHorizontalFrameSize(), 1)
	tree := frame.
		Width(treeWidth).
		Height(m.height - 2).
		Render(m.host.View(inner))

	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, m.log.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m *Model) footer() string {
	help := m.theme.Footer.Help.Render(m.keys.help())
	var status string
	switch {
	case m.err != nil:
		status = m.theme.Footer.Error.Render(m.err.Error())
	case m.status != "":
		status = m.theme.Footer.Status.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}
