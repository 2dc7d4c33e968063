package commands

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{"demo", "traces", "layout", "ui", "info", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("missing %q command: %v", name, err)
		}
	}

	demo, _, _ := root.Find([]string{"demo"})
	for _, flag := range []string{"layout", "keep-in-host", "before-each", "no-save", "json"} {
		if demo.Flags().Lookup(flag) == nil {
			t.Errorf("demo is missing --%s", flag)
		}
	}

	traces, _, _ := root.Find([]string{"traces"})
	for _, flag := range []string{"watch", "delete", "show-id", "json"} {
		if traces.Flags().Lookup(flag) == nil {
			t.Errorf("traces is missing --%s", flag)
		}
	}
}
