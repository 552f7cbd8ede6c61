package ports

import (
	"context"

	"go.trai.ch/modscan/internal/core/domain"
)

// Catalog persists scanned descriptors for later querying.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// Replace rewrites the catalog contents with records.
	Replace(ctx context.Context, records []domain.Record) error
	// Records reads every stored record back, ordered by module name.
	Records(ctx context.Context) ([]domain.Record, error)
	// Dependents returns the modules naming module in any module list, sorted.
	Dependents(ctx context.Context, module string) ([]string, error)
	// Close releases the underlying database.
	Close() error
}

// CatalogOpener opens catalogs by path.
type CatalogOpener interface {
	Open(path string) (Catalog, error)
}
