package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/attribute"
)

// GraphFile is the YAML form of a small graph:
//
//	attributes:
//	  - {name: weight, element: transaction, type: integer}
//	vertices:
//	  - {group: a}
//	  - {}
//	transactions:
//	  - {source: 0, destination: 1, values: {weight: "10"}}
//
// Vertex and transaction ids are their list positions. Values are given
// as text and parsed by the attribute type.
type GraphFile struct {
	Attributes   []AttributeSpec     `yaml:"attributes"`
	Vertices     []map[string]string `yaml:"vertices"`
	Transactions []TransactionSpec   `yaml:"transactions"`
}

// AttributeSpec declares one attribute.
type AttributeSpec struct {
	Name    string `yaml:"name"`
	Element string `yaml:"element"`
	Type    string `yaml:"type"`
}

// TransactionSpec is one transaction with its values.
type TransactionSpec struct {
	Source      int               `yaml:"source"`
	Destination int               `yaml:"destination"`
	Values      map[string]string `yaml:"values"`
}

// ReadGraphFile parses the graph file at path.
func ReadGraphFile(path string) (*GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gf GraphFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("failed to parse graph %s: %w", path, err)
	}
	return &gf, nil
}

// Load adds the attributes, vertices and transactions of gf to eng.
func (gf *GraphFile) Load(ctx context.Context, eng *graphattr.Engine) error {
	for _, spec := range gf.Attributes {
		et, err := attribute.ParseElementType(spec.Element)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", spec.Name, err)
		}
		if _, err := eng.AddAttribute(et, spec.Name, spec.Type); err != nil {
			return err
		}
	}

	g := eng.Graph()
	for _, values := range gf.Vertices {
		v := g.AddVertex()
		if err := setValues(ctx, eng, attribute.ElementVertex, v, values); err != nil {
			return err
		}
	}
	for i, tx := range gf.Transactions {
		id, err := g.AddTransaction(tx.Source, tx.Destination)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		if err := setValues(ctx, eng, attribute.ElementTransaction, id, tx.Values); err != nil {
			return err
		}
	}
	return nil
}

func setValues(ctx context.Context, eng *graphattr.Engine, et attribute.ElementType, element int, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a, err := eng.Attribute(et, name)
		if err != nil {
			return err
		}
		if err := eng.SetString(ctx, a.ID, element, values[name]); err != nil {
			return fmt.Errorf("%s %d: %w", et, element, err)
		}
	}
	return nil
}
