package config

// Configfile represents the structure of the modscan.yaml configuration file.
type Configfile struct {
	Version      string   `yaml:"version"`
	Roots        []string `yaml:"roots"`
	Ignore       []string `yaml:"ignore"`
	Concurrency  int      `yaml:"concurrency"`
	FailFast     bool     `yaml:"failFast"`
	KnownModules []string `yaml:"knownModules"`
}

// SupportedVersion is the configuration schema version this loader understands.
const SupportedVersion = "1"
