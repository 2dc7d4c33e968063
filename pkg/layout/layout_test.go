package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/subviews/pkg/subview"
	"tableflip.dev/subviews/pkg/trace"
	"tableflip.dev/subviews/pkg/tui/components/view"
	"tableflip.dev/subviews/pkg/tui/host"
)

func paths(t *testing.T, nodes []Node) []string {
	t.Helper()
	var out []string
	if err := Walk(nodes, func(p []string, _ Node) error {
		out = append(out, strings.Join(p, "/"))
		return nil
	}); err != nil {
		t.Fatalf("walk: %v", err)
	}
	return out
}

func TestDefaultChain(t *testing.T) {
	want := []string{
		"first",
		"first/second",
		"first/second/third",
		"first/second/third/fourth",
		"first/second/third/fourth/fifth",
		"first/second/third/fourth/fifth/sixt",
	}
	if diff := cmp.Diff(want, paths(t, Default())); diff != "" {
		t.Fatalf("default layout (-want +got):\n%s", diff)
	}
	if Count(Default()) != 6 {
		t.Fatalf("count = %d", Count(Default()))
	}
}

func TestWalkPreOrderAndStop(t *testing.T) {
	nodes := []Node{
		{Name: "a", Children: []Node{{Name: "b"}, {Name: "c", Children: []Node{{Name: "d"}}}}},
		{Name: "e"},
	}
	if diff := cmp.Diff([]string{"a", "a/b", "a/c", "a/c/d", "e"}, paths(t, nodes)); diff != "" {
		t.Fatalf("walk order (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	seen := 0
	err := Walk(nodes, func(p []string, _ Node) error {
		seen++
		if p[len(p)-1] == "c" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || seen != 3 {
		t.Fatalf("err=%v seen=%d", err, seen)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	data := `layout:
  - name: sidebar
    title: Sidebar
    keys: [s]
    children:
      - name: menu
  - name: main
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	nodes, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Node{
		{Name: "sidebar", Title: "Sidebar", Keys: []string{"s"}, Children: []Node{{Name: "menu"}}},
		{Name: "main"},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("loaded layout (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	nodes, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), nodes); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("other: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyLayout) {
		t.Fatalf("err = %v, want ErrEmptyLayout", err)
	}
}

func TestBuildMountsTree(t *testing.T) {
	h := host.New()
	rec := &trace.Recorder{}
	root := view.New(view.Options{Key: "root", Host: h, Recorder: rec})

	if err := Build(root, Default(), view.Options{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if h.Len() != 7 {
		t.Fatalf("host has %d slots", h.Len())
	}
	if err := root.DestroyAll(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	want := []string{"first", "second", "third", "fourth", "fifth", "sixt"}
	if diff := cmp.Diff(want, rec.Sequence(trace.PhaseDestroy)); diff != "" {
		t.Fatalf("destroy order (-want +got):\n%s", diff)
	}
}

func TestBuildReportsConflicts(t *testing.T) {
	root := view.New(view.Options{Key: "root", Host: host.New()})
	nodes := []Node{{Name: "a"}, {Name: "a"}}

	err := Build(root, nodes, view.Options{})
	if !errors.Is(err, subview.ErrNameConflict) {
		t.Fatalf("err = %v, want name conflict", err)
	}
	if _, ok := root.Child("a"); !ok {
		t.Fatal("first node should stay mounted")
	}
}

func TestLoadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.hcl")
	data := `
view "sidebar" {
  title = "Sidebar"
  keys  = ["s"]

  view "menu" {}
}

view "main" {}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	nodes, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Node{
		{Name: "sidebar", Title: "Sidebar", Keys: []string{"s"}, Children: []Node{{Name: "menu"}}},
		{Name: "main"},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("loaded layout (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		nodes []Node
		ok    bool
	}{
		"default":         {nodes: Default(), ok: true},
		"empty":           {nodes: nil},
		"missing name":    {nodes: []Node{{Title: "x"}}},
		"slash in name":   {nodes: []Node{{Name: "a/b"}}},
		"duplicate top":   {nodes: []Node{{Name: "a"}, {Name: "a"}}},
		"duplicate child": {nodes: []Node{{Name: "a", Children: []Node{{Name: "b"}, {Name: "b"}}}}},
		"nested invalid":  {nodes: []Node{{Name: "a", Children: []Node{{Name: ""}}}}},
		"same name apart": {nodes: []Node{{Name: "a", Children: []Node{{Name: "a"}}}}, ok: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := Validate(tc.nodes)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	nodes, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v\n%s", err, data)
	}
	if diff := cmp.Diff(Default(), nodes); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
