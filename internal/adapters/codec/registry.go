// Package codec selects descriptor codecs by file path or format name.
package codec

import (
	"go.trai.ch/modscan/internal/adapters/codec/hclfile"
	"go.trai.ch/modscan/internal/adapters/codec/rules"
	"go.trai.ch/modscan/internal/adapters/codec/yamlfile"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
)

// Registry implements ports.Codecs over a fixed codec list.
type Registry struct {
	codecs []ports.Codec
}

// NewRegistry creates a registry. Earlier codecs win when several match a path.
func NewRegistry(codecs ...ports.Codec) *Registry {
	return &Registry{codecs: codecs}
}

// Default returns a registry with every supported encoding.
func Default() *Registry {
	return NewRegistry(rules.New(), yamlfile.New(), hclfile.New())
}

// ForPath returns the codec handling path.
func (r *Registry) ForPath(path string) (ports.Codec, bool) {
	for _, c := range r.codecs {
		if c.Match(path) {
			return c, true
		}
	}
	return nil, false
}

// ForFormat returns the codec for the named format.
func (r *Registry) ForFormat(format domain.Format) (ports.Codec, bool) {
	for _, c := range r.codecs {
		if c.Format() == format {
			return c, true
		}
	}
	return nil, false
}
