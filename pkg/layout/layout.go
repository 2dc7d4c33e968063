// Package layout describes subview trees as data so they can be loaded
// from a file and mounted under a root view.
package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tableflip.dev/subviews/pkg/tui/components/view"
)

// Node is one subview in a layout. Names become path segments, so they
// may not contain a slash.
type Node struct {
	Name     string   `mapstructure:"name" validate:"required,excludesall=/" yaml:"name" json:"name"`
	Title    string   `mapstructure:"title" yaml:"title,omitempty" json:"title,omitempty"`
	Keys     []string `mapstructure:"keys" validate:"dive,required" yaml:"keys,omitempty" json:"keys,omitempty"`
	Children []Node   `mapstructure:"children" validate:"unique=Name,dive" yaml:"children,omitempty" json:"children,omitempty"`
}

type file struct {
	Layout []Node `mapstructure:"layout" validate:"required,unique=Name,dive" yaml:"layout"`
}

// ErrEmptyLayout is returned by Load when a file declares no nodes.
var ErrEmptyLayout = errors.New("layout: no nodes")

var validate = validator.New()

// Validate checks names are present, slash free and unique among siblings.
func Validate(nodes []Node) error {
	if len(nodes) == 0 {
		return ErrEmptyLayout
	}
	if err := validate.Struct(file{Layout: nodes}); err != nil {
		return fmt.Errorf("layout: invalid: %w", err)
	}
	return nil
}

// Marshal renders nodes in the YAML layout file format.
func Marshal(nodes []Node) ([]byte, error) {
	return yaml.Marshal(file{Layout: nodes})
}

// Default is the stock chain: first owns second, which owns third, and so
// on down to sixt.
func Default() []Node {
	names := []string{"first", "second", "third", "fourth", "fifth", "sixt"}
	var chain Node
	for i := len(names) - 1; i >= 0; i-- {
		n := Node{Name: names[i]}
		if i < len(names)-1 {
			n.Children = []Node{chain}
		}
		chain = n
	}
	return []Node{chain}
}

// Load reads and validates a layout file. HCL files declare nested view
// blocks; every other format viper reads (yaml, json, toml) holds a top
// level "layout" list of nodes. An empty path yields Default.
func Load(path string) ([]Node, error) {
	if path == "" {
		return Default(), nil
	}

	var (
		nodes []Node
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		nodes, err = loadHCL(path)
	} else {
		nodes, err = loadViper(path)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func loadViper(path string) ([]Node, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("layout: reading %s: %w", path, err)
	}

	var nodes []Node
	if err := v.UnmarshalKey("layout", &nodes); err != nil {
		return nil, fmt.Errorf("layout: decoding %s: %w", path, err)
	}
	return nodes, nil
}

// Walk visits every node in pre-order. path holds the names from the top
// level node down to n. Returning an error stops the walk.
func Walk(nodes []Node, fn func(path []string, n Node) error) error {
	type item struct {
		path []string
		node Node
	}
	stack := make([]item, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, item{path: []string{nodes[i].Name}, node: nodes[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(it.path, it.node); err != nil {
			return err
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			c := it.node.Children[i]
			p := make([]string, len(it.path), len(it.path)+1)
			copy(p, it.path)
			stack = append(stack, item{path: append(p, c.Name), node: c})
		}
	}
	return nil
}

// Count returns the number of nodes in the layout.
func Count(nodes []Node) int {
	n := 0
	_ = Walk(nodes, func([]string, Node) error {
		n++
		return nil
	})
	return n
}

// Build mounts nodes under root. Every subview starts from base with its
// title and keys filled from the node. Nodes are created in pre-order, so
// a failure leaves the views built so far registered.
func Build(root *view.View, nodes []Node, base view.Options) error {
	parents := map[string]*view.View{"": root}
	return Walk(nodes, func(path []string, n Node) error {
		parent := parents[strings.Join(path[:len(path)-1], "/")]
		opts := base
		opts.Key = ""
		opts.Title = n.Title
		opts.Keys = nil
		if len(n.Keys) > 0 {
			opts.Keys = []key.Binding{key.NewBinding(key.WithKeys(n.Keys...))}
		}
		child, err := parent.AddSubview(n.Name, opts)
		if err != nil {
			return fmt.Errorf("layout: mounting %s: %w", strings.Join(path, "/"), err)
		}
		parents[strings.Join(path, "/")] = child
		return nil
	})
}
