package ports

import "go.trai.ch/modscan/internal/core/domain"

// Hasher computes content fingerprints of descriptors.
type Hasher interface {
	// Fingerprint returns a stable hash of the descriptor's declared content.
	Fingerprint(d *domain.Descriptor) string
}
