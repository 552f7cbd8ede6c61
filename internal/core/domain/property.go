package domain

import (
	"slices"
	"strings"
)

// Property names a list-valued field of a module descriptor.
type Property string

const (
	// PublicIncludePaths are include paths propagated to dependents.
	PublicIncludePaths Property = "PublicIncludePaths"
	// PrivateIncludePaths are include paths visible only within the module.
	PrivateIncludePaths Property = "PrivateIncludePaths"
	// PublicDependencyModuleNames are modules whose public interface this module re-exports.
	PublicDependencyModuleNames Property = "PublicDependencyModuleNames"
	// PrivateDependencyModuleNames are modules consumed internally.
	PrivateDependencyModuleNames Property = "PrivateDependencyModuleNames"
	// PrivateIncludePathModuleNames are modules used only to resolve include search paths.
	PrivateIncludePathModuleNames Property = "PrivateIncludePathModuleNames"
	// PublicIncludePathModuleNames are modules whose include paths are re-exported without linking.
	PublicIncludePathModuleNames Property = "PublicIncludePathModuleNames"
	// DynamicallyLoadedModuleNames are modules loaded at runtime rather than linked.
	DynamicallyLoadedModuleNames Property = "DynamicallyLoadedModuleNames"
)

// KnownProperties lists the recognised properties in canonical output order.
var KnownProperties = []Property{
	PublicIncludePaths,
	PrivateIncludePaths,
	PublicDependencyModuleNames,
	PrivateDependencyModuleNames,
	PrivateIncludePathModuleNames,
	PublicIncludePathModuleNames,
	DynamicallyLoadedModuleNames,
}

// IsKnown reports whether p is one of the recognised properties.
func (p Property) IsKnown() bool {
	return slices.Contains(KnownProperties, p)
}

// IsModuleList reports whether the property holds module names rather than paths.
// Extra properties follow the engine's naming convention and qualify by suffix.
func (p Property) IsModuleList() bool {
	return strings.HasSuffix(string(p), "ModuleNames")
}

// IsDependency reports whether the property is a recognised list naming other modules.
// Include-path-only and dynamically loaded lists count: a module listing itself there is
// as invalid as in a link dependency.
func (p Property) IsDependency() bool {
	return p.IsKnown() && p.IsModuleList()
}

// String returns the property name.
func (p Property) String() string {
	return string(p)
}
