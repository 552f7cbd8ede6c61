package catalog

import "go.trai.ch/modscan/internal/core/ports"

// Opener implements ports.CatalogOpener for SQLite files.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the catalog at path.
func (o *Opener) Open(path string) (ports.Catalog, error) {
	store, err := Open(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
