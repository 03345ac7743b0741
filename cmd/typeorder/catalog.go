package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arborlang/typeorder/internal/config"
	"github.com/arborlang/typeorder/internal/order"
)

// classEntry is one YAML-declared class: its bases and, for a generic
// class, the names of its declared type variables in declaration
// order (variance defaults to covariant, the common case).
type classEntry struct {
	Bases     []string `yaml:"bases"`
	Variables []string `yaml:"variables"`
}

// catalog is the top-level shape of a class catalog file: a flat map
// from dotted class name to its declaration.
type catalog struct {
	Classes map[string]classEntry `yaml:"classes"`
}

// loadCatalog reads a YAML class catalog from path and inserts every
// declared class and edge into e, in two passes (insert-everything,
// then connect-everything) so forward references to a base declared
// later in the file still resolve.
func loadCatalog(path string, e *order.Engine) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	for name := range c.Classes {
		e.Insert(order.Primitive{Name: name})
	}

	for name, entry := range c.Classes {
		self := order.Primitive{Name: name}
		for _, base := range entry.Bases {
			e.Connect(self, order.Primitive{Name: base}, nil)
		}
		if len(entry.Variables) > 0 {
			generic := order.Primitive{Name: config.GenericVertexName}
			e.Insert(generic)
			params := make([]order.Type, len(entry.Variables))
			for i, v := range entry.Variables {
				params[i] = order.Variable{Name: v, Variance: order.Covariant}
			}
			e.Connect(self, generic, params)
		}
	}
	return nil
}
