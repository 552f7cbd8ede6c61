// Package domain contains the core domain models for module descriptors.
package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Descriptor is the declared build requirements of one module.
//
// List properties are kept as ordered sequences exactly as declared, duplicates included.
// A descriptor is read-only once its loader returns it.
type Descriptor struct {
	// Name is the module identifier, unique within a build graph.
	Name string
	// Source is the path the descriptor was read from. It is not part of descriptor equality.
	Source string

	lists    map[Property][]string
	settings map[string]string
}

// NewDescriptor creates an empty descriptor for the named module.
func NewDescriptor(name string) *Descriptor {
	return &Descriptor{
		Name:     name,
		lists:    make(map[Property][]string),
		settings: make(map[string]string),
	}
}

// Append adds values to the list property p, creating it when absent.
// Calling Append with no values records the property as declared but empty.
func (d *Descriptor) Append(p Property, values ...string) {
	if d.lists == nil {
		d.lists = make(map[Property][]string)
	}
	list, ok := d.lists[p]
	if !ok {
		list = make([]string, 0, len(values))
	}
	d.lists[p] = append(list, values...)
}

// List returns the declared values of p in order. Absent properties yield an empty slice.
func (d *Descriptor) List(p Property) []string {
	list, ok := d.lists[p]
	if !ok {
		return []string{}
	}
	return list
}

// Has reports whether p was declared, even if empty.
func (d *Descriptor) Has(p Property) bool {
	_, ok := d.lists[p]
	return ok
}

// Set returns the values of p with duplicates removed, keeping first occurrences in order.
func (d *Descriptor) Set(p Property) []string {
	return UniqueNames(d.List(p))
}

// Properties returns the declared properties, known ones in canonical order followed by
// any others sorted by name.
func (d *Descriptor) Properties() []Property {
	props := make([]Property, 0, len(d.lists))
	for _, p := range KnownProperties {
		if _, ok := d.lists[p]; ok {
			props = append(props, p)
		}
	}
	var extra []Property
	for p := range d.lists {
		if !p.IsKnown() {
			extra = append(extra, p)
		}
	}
	slices.Sort(extra)
	return append(props, extra...)
}

// SetSetting records a scalar configuration value.
func (d *Descriptor) SetSetting(key, value string) {
	if d.settings == nil {
		d.settings = make(map[string]string)
	}
	d.settings[key] = value
}

// Setting returns a scalar configuration value.
func (d *Descriptor) Setting(key string) (string, bool) {
	v, ok := d.settings[key]
	return v, ok
}

// SettingKeys returns the configured setting names in sorted order.
func (d *Descriptor) SettingKeys() []string {
	return slices.Sorted(maps.Keys(d.settings))
}

// PCHUsage returns the precompiled-header mode, if one is set.
func (d *Descriptor) PCHUsage() (PCHUsage, bool) {
	v, ok := d.settings[PCHUsageSetting]
	if !ok {
		return "", false
	}
	return PCHUsage(v), true
}

// Equal reports whether two descriptors declare the same module content.
// An absent list equals a declared empty one and Source is ignored.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Name != other.Name {
		return false
	}
	for p := range d.lists {
		if !slices.Equal(d.List(p), other.List(p)) {
			return false
		}
	}
	for p := range other.lists {
		if !slices.Equal(d.List(p), other.List(p)) {
			return false
		}
	}
	return maps.Equal(d.settings, other.settings)
}

type descriptorJSON struct {
	Name       string              `json:"name"`
	Source     string              `json:"source,omitempty"`
	Properties map[string][]string `json:"properties"`
	Settings   map[string]string   `json:"settings"`
}

// MarshalJSON encodes the descriptor with every known property present.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	out := descriptorJSON{
		Name:       d.Name,
		Source:     d.Source,
		Properties: make(map[string][]string, len(KnownProperties)),
		Settings:   make(map[string]string, len(d.settings)),
	}
	for _, p := range KnownProperties {
		out.Properties[string(p)] = d.List(p)
	}
	for _, p := range d.Properties() {
		out.Properties[string(p)] = d.List(p)
	}
	maps.Copy(out.Settings, d.settings)
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var in descriptorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = *NewDescriptor(in.Name)
	d.Source = in.Source
	for name, values := range in.Properties {
		if len(values) == 0 && Property(name).IsKnown() {
			continue
		}
		d.Append(Property(name), values...)
	}
	maps.Copy(d.settings, in.Settings)
	return nil
}

// UniqueNames removes duplicate values, keeping first occurrences in order.
func UniqueNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
