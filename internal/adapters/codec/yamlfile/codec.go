// Package yamlfile reads and writes module descriptors as *.module.yaml documents.
package yamlfile

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Document represents the structure of a *.module.yaml file.
type Document struct {
	Module     string              `yaml:"module"`
	Settings   map[string]string   `yaml:"settings,omitempty"`
	Properties map[string][]string `yaml:"properties,omitempty"`
}

// Codec handles *.module.yaml files.
type Codec struct{}

// New creates a YAML codec.
func New() *Codec {
	return &Codec{}
}

// Format returns domain.FormatYAML.
func (c *Codec) Format() domain.Format {
	return domain.FormatYAML
}

// Match reports whether path ends in .module.yaml, ignoring case.
func (c *Codec) Match(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), domain.YAMLFileSuffix)
}

// Decode parses a YAML descriptor document. Unknown top-level keys are rejected.
func (c *Codec) Decode(path string, src []byte) (*domain.Descriptor, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(errors.Join(domain.ErrMalformedDescriptor, err), "path", path)
	}

	if doc.Module == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDescriptor, "missing module declaration"), "path", path)
	}

	d := domain.NewDescriptor(doc.Module)
	d.Source = path
	for name, values := range doc.Properties {
		d.Append(domain.Property(name), values...)
	}
	for key, value := range doc.Settings {
		d.SetSetting(key, value)
	}
	return d, nil
}

// Encode renders d with properties in canonical order.
func (c *Codec) Encode(d *domain.Descriptor) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, "module", stringNode(d.Name))

	if keys := d.SettingKeys(); len(keys) > 0 {
		settings := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range keys {
			value, _ := d.Setting(key)
			appendPair(settings, key, stringNode(value))
		}
		appendPair(root, "settings", settings)
	}

	if props := d.Properties(); len(props) > 0 {
		properties := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range props {
			list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			values := d.List(p)
			if len(values) == 0 {
				list.Style = yaml.FlowStyle
			}
			for _, v := range values {
				list.Content = append(list.Content, stringNode(v))
			}
			appendPair(properties, string(p), list)
		}
		appendPair(root, "properties", properties)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrDescriptorEncodeFailed, err), "module", d.Name)
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrDescriptorEncodeFailed, err), "module", d.Name)
	}
	return buf.Bytes(), nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, stringNode(key), value)
}
