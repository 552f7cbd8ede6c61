package domain

// Format identifies a declarative encoding of module descriptors.
type Format string

const (
	// FormatRules is the engine's ModuleRules source form (*.Build.cs).
	FormatRules Format = "rules"
	// FormatYAML is the YAML descriptor form (*.module.yaml).
	FormatYAML Format = "yaml"
	// FormatHCL is the HCL descriptor form (*.module.hcl).
	FormatHCL Format = "hcl"
)

// Formats lists every supported encoding.
var Formats = []Format{FormatRules, FormatYAML, FormatHCL}

// Record is a loaded descriptor together with how it was read.
type Record struct {
	Descriptor  *Descriptor `json:"descriptor"`
	Format      Format      `json:"format"`
	Fingerprint string      `json:"fingerprint"`
}

// Failure records a descriptor file that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return f.Path + ": " + f.Err.Error()
}

// Unwrap returns the underlying load error.
func (f Failure) Unwrap() error {
	return f.Err
}
