package domain

const (
	// ConfigFileName is the name of the optional tool configuration file.
	ConfigFileName = "modscan.yaml"

	// RulesFileSuffix is the suffix of ModuleRules descriptor files, matched case-insensitively.
	RulesFileSuffix = ".build.cs"

	// YAMLFileSuffix is the suffix of YAML descriptor files.
	YAMLFileSuffix = ".module.yaml"

	// HCLFileSuffix is the suffix of HCL descriptor files.
	HCLFileSuffix = ".module.hcl"

	// DefaultCatalogFile is the catalog path used when none is given.
	DefaultCatalogFile = "modules.db"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultIgnores are directory names never descended into while scanning.
var DefaultIgnores = []string{".git", ".jj", "Intermediate", "Binaries", "DerivedDataCache", "Saved"}

// ScanConfig is the resolved tool configuration for a scan.
type ScanConfig struct {
	// Root is the directory the configuration was resolved against.
	Root string
	// Roots are the directories to scan, relative to Root unless absolute.
	Roots []string
	// Ignore are glob patterns matched against file and directory base names.
	Ignore []string
	// Concurrency bounds the number of descriptors loaded at once. Zero means one per CPU.
	Concurrency int
	// FailFast aborts a scan on the first malformed descriptor.
	FailFast bool
	// KnownModules closes the set of module names when non-empty.
	KnownModules []string
}
