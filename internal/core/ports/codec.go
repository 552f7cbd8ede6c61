package ports

import "go.trai.ch/modscan/internal/core/domain"

// Codec reads and writes one declarative descriptor encoding.
type Codec interface {
	// Format names the encoding.
	Format() domain.Format
	// Match reports whether the file at path is in this encoding.
	Match(path string) bool
	// Decode parses src into a descriptor. path is used for Source and error metadata.
	// It fails with domain.ErrMalformedDescriptor when the module declaration is missing.
	Decode(path string, src []byte) (*domain.Descriptor, error)
	// Encode serializes a descriptor so that Decode yields an equal descriptor.
	Encode(d *domain.Descriptor) ([]byte, error)
}

// Codecs looks up codecs by file path or format name.
type Codecs interface {
	// ForPath returns the codec handling path.
	ForPath(path string) (Codec, bool)
	// ForFormat returns the codec for the named format.
	ForFormat(format domain.Format) (Codec, bool)
}
