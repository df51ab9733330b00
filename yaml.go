package oidtree

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile is the layout of a YAML or JSON declaration file.
//
//	module: IF-MIB
//	declarations:
//	  - {name: ifMIB, parent: mib-2, value: 31}
type yamlFile struct {
	Module       string            `yaml:"module"`
	Declarations []yamlDeclaration `yaml:"declarations"`
}

type yamlDeclaration struct {
	Name   string `yaml:"name"`
	Module string `yaml:"module"` // overrides the file-level module
	Parent string `yaml:"parent"`
	Value  *int64 `yaml:"value"`
}

// ParseYAML decodes declarations from YAML or JSON source.
func ParseYAML(src []byte) ([]Declaration, error) {
	var f yamlFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("decoding declarations: %w", err)
	}

	decls := make([]Declaration, 0, len(f.Declarations))
	for i, yd := range f.Declarations {
		if yd.Name == "" {
			return nil, fmt.Errorf("declaration %d: missing name", i)
		}
		if yd.Value == nil {
			return nil, fmt.Errorf("declaration %d (%s): missing value", i, yd.Name)
		}
		if *yd.Value < 0 || *yd.Value > math.MaxUint32 {
			return nil, fmt.Errorf("declaration %d (%s): value %d out of range", i, yd.Name, *yd.Value)
		}
		module := yd.Module
		if module == "" {
			module = f.Module
		}
		decls = append(decls, Declaration{
			Name:       yd.Name,
			Module:     module,
			Value:      uint32(*yd.Value),
			ParentName: yd.Parent,
		})
	}
	return decls, nil
}

// LoadYAML reads and decodes a YAML or JSON declaration file.
func LoadYAML(path string) ([]Declaration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	decls, err := ParseYAML(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return decls, nil
}
