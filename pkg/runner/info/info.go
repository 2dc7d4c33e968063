// Package info reports the resolved configuration.
package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("SUBVIEWS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(color.Output, "SUBVIEWS_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(color.Output, "SUBVIEWS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Persistence == nil {
		return fmt.Errorf("info: no persistence")
	}

	nodes, err := layout.Load(n.Config.LayoutPath())
	if err != nil {
		return err
	}

	file := n.Config.File()
	if file == "" {
		file = "none"
	}
	layoutPath := n.Config.LayoutPath()
	if layoutPath == "" {
		layoutPath = "default"
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Config file"), file)
	tbl.AddRow(bold.Sprint("Trace store"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("Layout"), fmt.Sprintf("%s (%d views)", layoutPath, layout.Count(nodes)))
	tbl.AddRow(bold.Sprint("Detach"), n.Config.Detach())
	tbl.AddRow(bold.Sprint("Traces"), len(n.Persistence.List(ctx)))
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}
