package layout

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile is the top level of an HCL layout:
//
//	view "first" {
//	  title = "First"
//	  view "second" {}
//	}
type hclFile struct {
	Views []hclView `hcl:"view,block"`
}

type hclView struct {
	Name  string    `hcl:"name,label"`
	Title string    `hcl:"title,optional"`
	Keys  []string  `hcl:"keys,optional"`
	Views []hclView `hcl:"view,block"`
}

func loadHCL(path string) ([]Node, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("layout: parsing %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(f.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("layout: decoding %s: %w", path, diags)
	}
	return fromHCL(parsed.Views), nil
}

func fromHCL(views []hclView) []Node {
	if len(views) == 0 {
		return nil
	}
	nodes := make([]Node, len(views))
	for i, v := range views {
		nodes[i] = Node{
			Name:     v.Name,
			Title:    v.Title,
			Keys:     v.Keys,
			Children: fromHCL(v.Views),
		}
	}
	return nodes
}
