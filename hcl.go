package oidtree

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclFile is the top-level structure of an HCL declaration file.
//
//	module "IF-MIB" {
//	  declaration "ifMIB" {
//	    parent = "mib-2"
//	    value  = 31
//	  }
//	}
type hclFile struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name         string            `hcl:"name,label"`
	Declarations []*hclDeclaration `hcl:"declaration,block"`
}

type hclDeclaration struct {
	Name   string         `hcl:"name,label"`
	Parent string         `hcl:"parent,optional"` // empty for top-level arcs
	Value  hcl.Expression `hcl:"value"`
}

// ParseHCL decodes declarations from HCL source. filename is only used in
// diagnostics.
func ParseHCL(src []byte, filename string) ([]Declaration, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	var decls []Declaration
	for _, mod := range parsed.Modules {
		for _, hd := range mod.Declarations {
			value, err := hclArc(hd.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %s::%s: %w", filename, mod.Name, hd.Name, err)
			}
			decls = append(decls, Declaration{
				Name:       hd.Name,
				Module:     mod.Name,
				Value:      value,
				ParentName: hd.Parent,
			})
		}
	}
	return decls, nil
}

// hclArc evaluates a value expression into an OID component.
func hclArc(expr hcl.Expression) (uint32, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}
	if v.IsNull() || !v.IsKnown() {
		return 0, fmt.Errorf("value must be set")
	}
	if !v.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("value must be a number, got %s", v.Type().FriendlyName())
	}
	if v.LessThan(cty.Zero).True() {
		return 0, fmt.Errorf("value must not be negative")
	}
	if !v.AsBigFloat().IsInt() {
		return 0, fmt.Errorf("value must be a whole number, got %s", v.AsBigFloat().Text('g', -1))
	}
	var arc uint32
	if err := gocty.FromCtyValue(v, &arc); err != nil {
		return 0, fmt.Errorf("invalid value: %w", err)
	}
	return arc, nil
}

// LoadHCL reads and decodes an HCL declaration file.
func LoadHCL(path string) ([]Declaration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseHCL(src, path)
}
