package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints descriptor content with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes the module name, non-empty list properties and settings.
// Source and formatting do not contribute, and neither do declared-but-empty lists,
// so two descriptors that are Equal share a fingerprint. Every string and section is
// length-prefixed, so no choice of values can shift content across a boundary.
func (h *Hasher) Fingerprint(d *domain.Descriptor) string {
	hasher := xxhash.New()
	buf := make([]byte, 0, binary.MaxVarintLen64)
	writeLen := func(n int) {
		_, _ = hasher.Write(binary.AppendUvarint(buf[:0], uint64(n)))
	}
	writeString := func(s string) {
		writeLen(len(s))
		_, _ = hasher.WriteString(s)
	}

	writeString(d.Name)

	props := d.Properties()
	nonEmpty := 0
	for _, p := range props {
		if len(d.List(p)) > 0 {
			nonEmpty++
		}
	}
	writeLen(nonEmpty)
	for _, p := range props {
		values := d.List(p)
		if len(values) == 0 {
			continue
		}
		writeString(string(p))
		writeLen(len(values))
		for _, v := range values {
			writeString(v)
		}
	}

	keys := d.SettingKeys()
	writeLen(len(keys))
	for _, key := range keys {
		value, _ := d.Setting(key)
		writeString(key)
		writeString(value)
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
