// Package layout prints the layout a teardown would build.
package layout

import (
	"context"
	"fmt"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/printers"
)

type Layout struct {
	Nodes   []layout.Node
	JSON    bool
	Printer *printers.PrettyPrint
}

// Do writes the layout in the YAML file format, or as JSON.
func (l *Layout) Do(_ context.Context) error {
	pp := l.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	nodes := l.Nodes
	if len(nodes) == 0 {
		nodes = layout.Default()
	}
	if l.JSON {
		return pp.JSON(nodes)
	}
	data, err := layout.Marshal(nodes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(pp.Writer(), string(data))
	return err
}
