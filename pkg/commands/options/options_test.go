package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type testConfig struct {
	layout string
	detach bool
}

func (c testConfig) BasePath() string   { return "" }
func (c testConfig) LayoutPath() string { return c.layout }
func (c testConfig) Detach() bool       { return c.detach }
func (c testConfig) File() string       { return "" }

func TestDetachPrefersFlag(t *testing.T) {
	o := &DestroyOptions{}
	cmd := &cobra.Command{Use: "demo"}
	AddDestroyArgs(cmd, o)

	if o.Detach(cmd, testConfig{detach: false}) {
		t.Fatal("config default should apply when the flag is unset")
	}
	if err := cmd.Flags().Set("keep-in-host", "false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !o.Detach(cmd, testConfig{detach: false}) {
		t.Fatal("explicit flag should win over config")
	}
}

func TestLayoutFallsBackToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  - name: only\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	o := &LayoutOptions{}
	nodes, err := o.Load(testConfig{layout: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "only" {
		t.Fatalf("nodes = %#v", nodes)
	}

	nodes, err = o.Load(nil)
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if nodes[0].Name != "first" {
		t.Fatalf("default root = %q", nodes[0].Name)
	}
}
