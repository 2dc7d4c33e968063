package layout

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/printers"
)

func TestPrintsYAML(t *testing.T) {
	var buf bytes.Buffer
	l := &Layout{Printer: &printers.PrettyPrint{Out: &buf}}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "layout:") || !strings.Contains(out, "name: sixt") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
}

func TestPrintsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := &Layout{
		Nodes:   []layout.Node{{Name: "only"}},
		JSON:    true,
		Printer: &printers.PrettyPrint{Out: &buf},
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "only"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}
}
