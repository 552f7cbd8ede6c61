// Package config provides the configuration loader for modscan.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. The nearest modscan.yaml in cwd or any parent
// directory applies; without one, cwd is scanned with default settings.
func (l *Loader) Load(cwd string) (*domain.ScanConfig, error) {
	configPath, found := findConfiguration(cwd)
	if !found {
		return defaults(cwd), nil
	}

	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", configPath, file.Version, SupportedVersion))
	}

	if err := validate(&file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg := defaults(filepath.Dir(configPath))
	if len(file.Roots) > 0 {
		cfg.Roots = file.Roots
	}
	for _, pattern := range file.Ignore {
		if !slices.Contains(cfg.Ignore, pattern) {
			cfg.Ignore = append(cfg.Ignore, pattern)
		}
	}
	cfg.Concurrency = file.Concurrency
	cfg.FailFast = file.FailFast
	cfg.KnownModules = domain.UniqueNames(file.KnownModules)
	if len(cfg.KnownModules) != len(file.KnownModules) {
		l.Logger.Warn(fmt.Sprintf("%s lists some known modules more than once", configPath))
	}
	return cfg, nil
}

func defaults(root string) *domain.ScanConfig {
	return &domain.ScanConfig{
		Root:   root,
		Roots:  []string{"."},
		Ignore: slices.Clone(domain.DefaultIgnores),
	}
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func validate(file *Configfile) error {
	if file.Concurrency < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "concurrency must not be negative"), "concurrency", file.Concurrency)
	}
	for _, root := range file.Roots {
		if root == "" {
			return zerr.Wrap(domain.ErrInvalidConfig, "empty root")
		}
	}
	for _, pattern := range file.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "malformed ignore pattern"), "ignore", pattern)
		}
	}
	for _, name := range file.KnownModules {
		if name == "" {
			return zerr.Wrap(domain.ErrInvalidConfig, "empty known module name")
		}
	}
	return nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return errors.Join(domain.ErrConfigParseFailed, parseErr)
	}

	return nil
}
