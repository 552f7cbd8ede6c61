package ports

import "go.trai.ch/modscan/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration that applies to cwd.
	// A missing config file is not an error; defaults rooted at cwd are returned.
	Load(cwd string) (*domain.ScanConfig, error)
}
