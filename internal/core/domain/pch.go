package domain

// PCHUsageSetting is the settings key holding the precompiled-header mode.
const PCHUsageSetting = "PCHUsage"

// PCHUsage is the precompiled-header usage mode of a module.
type PCHUsage string

const (
	// PCHDefault leaves the choice to the build orchestrator.
	PCHDefault PCHUsage = "Default"
	// PCHUseSharedPCHs uses shared precompiled headers.
	PCHUseSharedPCHs PCHUsage = "UseSharedPCHs"
	// PCHUseExplicitOrSharedPCHs uses an explicit header when set, shared ones otherwise.
	PCHUseExplicitOrSharedPCHs PCHUsage = "UseExplicitOrSharedPCHs"
	// PCHNoSharedPCHs disables shared precompiled headers.
	PCHNoSharedPCHs PCHUsage = "NoSharedPCHs"
	// PCHNoPCHs disables precompiled headers entirely.
	PCHNoPCHs PCHUsage = "NoPCHs"
)

// PCHUsageModes lists every valid mode.
var PCHUsageModes = []PCHUsage{
	PCHDefault,
	PCHUseSharedPCHs,
	PCHUseExplicitOrSharedPCHs,
	PCHNoSharedPCHs,
	PCHNoPCHs,
}

// ParsePCHUsage converts a string to a PCHUsage.
// The second result is false when the value is not a known mode.
func ParsePCHUsage(s string) (PCHUsage, bool) {
	for _, mode := range PCHUsageModes {
		if string(mode) == s {
			return mode, true
		}
	}
	return PCHUsage(s), false
}
