// Package rules reads and writes module descriptors in the engine's ModuleRules source form.
//
// Only unconditional declarations in the module constructor are loaded: Add and AddRange
// calls on list properties and scalar assignments. Everything else is skipped.
package rules

import (
	"path/filepath"
	"strings"

	"go.trai.ch/modscan/internal/core/domain"
)

// Codec handles *.Build.cs files.
type Codec struct{}

// New creates a ModuleRules codec.
func New() *Codec {
	return &Codec{}
}

// Format returns domain.FormatRules.
func (c *Codec) Format() domain.Format {
	return domain.FormatRules
}

// Match reports whether path ends in .Build.cs, ignoring case.
func (c *Codec) Match(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), domain.RulesFileSuffix)
}

// Decode parses the single module declared in src.
func (c *Codec) Decode(path string, src []byte) (*domain.Descriptor, error) {
	return parse(path, src)
}

// Encode renders d as ModuleRules source.
func (c *Codec) Encode(d *domain.Descriptor) ([]byte, error) {
	return write(d)
}
