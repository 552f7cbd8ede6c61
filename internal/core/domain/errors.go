package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedDescriptor is returned when a descriptor lacks its module or enclosing declaration.
	ErrMalformedDescriptor = zerr.New("malformed module descriptor")

	// ErrDuplicateModuleName is returned when two descriptors declare the same module name.
	ErrDuplicateModuleName = zerr.New("duplicate module name")

	// ErrUnknownDependency is returned when a descriptor references a module outside the known set.
	ErrUnknownDependency = zerr.New("unknown dependency")

	// ErrSelfDependency is returned when a module lists itself as a dependency.
	ErrSelfDependency = zerr.New("module depends on itself")

	// ErrUnknownFormat is returned when no codec handles a path or format name.
	ErrUnknownFormat = zerr.New("unknown descriptor format")

	// ErrDescriptorReadFailed is returned when a descriptor file cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read descriptor file")

	// ErrDescriptorEncodeFailed is returned when a descriptor cannot be serialized.
	ErrDescriptorEncodeFailed = zerr.New("failed to encode descriptor")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file holds invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrCatalogOpenFailed is returned when the catalog database cannot be opened.
	ErrCatalogOpenFailed = zerr.New("failed to open module catalog")

	// ErrCatalogWriteFailed is returned when the catalog cannot be written.
	ErrCatalogWriteFailed = zerr.New("failed to write module catalog")

	// ErrCatalogReadFailed is returned when the catalog cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read module catalog")

	// ErrScanFailed is returned when a scan aborts on a malformed descriptor or its
	// failures keep it from being exported.
	ErrScanFailed = zerr.New("scan failed")

	// ErrDescriptorsFailed is returned after the failed descriptors of a scan were reported.
	ErrDescriptorsFailed = zerr.New("module descriptors failed to load")

	// ErrNoModulesFound is returned when a scan finds no descriptor files.
	ErrNoModulesFound = zerr.New("no module descriptors found")

	// ErrValidationFailed is returned when validation reports error-level issues.
	ErrValidationFailed = zerr.New("module validation failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch descriptor tree")
)
