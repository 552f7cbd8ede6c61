// Package hclfile reads and writes module descriptors as *.module.hcl files.
//
// A file holds exactly one module block:
//
//	module "WaterEditor" {
//	  settings = {
//	    PCHUsage = "UseExplicitOrSharedPCHs"
//	  }
//
//	  property "PrivateDependencyModuleNames" {
//	    values = ["Core", "Engine"]
//	  }
//	}
package hclfile

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/zerr"
)

type hclFile struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name       string            `hcl:"name,label"`
	Settings   map[string]string `hcl:"settings,optional"`
	Properties []*hclProperty    `hcl:"property,block"`
}

type hclProperty struct {
	Name   string   `hcl:"name,label"`
	Values []string `hcl:"values,optional"`
}

// Codec handles *.module.hcl files.
type Codec struct{}

// New creates an HCL codec.
func New() *Codec {
	return &Codec{}
}

// Format returns domain.FormatHCL.
func (c *Codec) Format() domain.Format {
	return domain.FormatHCL
}

// Match reports whether path ends in .module.hcl, ignoring case.
func (c *Codec) Match(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), domain.HCLFileSuffix)
}

// Decode parses the single module block in src.
func (c *Codec) Decode(path string, src []byte) (*domain.Descriptor, error) {
	// A fresh parser per call; hclparse.Parser caches files and is not safe for concurrent use.
	file, diags := hclparse.NewParser().ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, malformed(path, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, malformed(path, diags)
	}

	switch len(parsed.Modules) {
	case 0:
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDescriptor, "missing module declaration"), "path", path)
	case 1:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDescriptor, "multiple module declarations"), "path", path)
	}

	mod := parsed.Modules[0]
	d := domain.NewDescriptor(mod.Name)
	d.Source = path
	for _, p := range mod.Properties {
		d.Append(domain.Property(p.Name), p.Values...)
	}
	for key, value := range mod.Settings {
		d.SetSetting(key, value)
	}
	return d, nil
}

func malformed(path string, diags hcl.Diagnostics) error {
	return zerr.With(errors.Join(domain.ErrMalformedDescriptor, diags), "path", path)
}

// Encode renders d as a formatted module block.
func (c *Codec) Encode(d *domain.Descriptor) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("module", []string{d.Name})
	body := block.Body()

	if keys := d.SettingKeys(); len(keys) > 0 {
		settings := make(map[string]cty.Value, len(keys))
		for _, key := range keys {
			value, _ := d.Setting(key)
			settings[key] = cty.StringVal(value)
		}
		body.SetAttributeValue("settings", cty.ObjectVal(settings))
	}

	for _, p := range d.Properties() {
		body.AppendNewline()
		prop := body.AppendNewBlock("property", []string{string(p)})
		prop.Body().SetAttributeValue("values", listValue(d.List(p)))
	}

	return hclwrite.Format(f.Bytes()), nil
}

func listValue(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
