package domain

import "strings"

// Severity grades a validation issue.
type Severity string

const (
	// SeverityError marks an issue that makes the descriptor set unusable for a build.
	SeverityError Severity = "error"
	// SeverityWarning marks an issue the orchestrator tolerates.
	SeverityWarning Severity = "warning"
)

// IssueCode identifies the kind of validation issue.
type IssueCode string

const (
	// IssueDuplicateEntry is a value listed twice in one property.
	IssueDuplicateEntry IssueCode = "duplicate-entry"
	// IssueSelfDependency is a module naming itself in a module list.
	IssueSelfDependency IssueCode = "self-dependency"
	// IssueDuplicateModule is two descriptors declaring the same module name.
	IssueDuplicateModule IssueCode = "duplicate-module"
	// IssueRedundantPrivateDependency is a module listed as both public and private dependency.
	IssueRedundantPrivateDependency IssueCode = "redundant-private-dependency"
	// IssueInvalidPCHUsage is an unrecognised precompiled-header mode.
	IssueInvalidPCHUsage IssueCode = "invalid-pch-usage"
	// IssueUnknownDependency is a reference to a module absent from the known set.
	IssueUnknownDependency IssueCode = "unknown-dependency"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity  `json:"severity"`
	Code     IssueCode `json:"code"`
	Module   string    `json:"module"`
	Property Property  `json:"property,omitempty"`
	Value    string    `json:"value,omitempty"`
	Source   string    `json:"source,omitempty"`
	Message  string    `json:"message"`
}

// String formats the issue as a single line.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Severity))
	b.WriteString(" [")
	b.WriteString(string(i.Code))
	b.WriteString("] ")
	b.WriteString(i.Module)
	if i.Property != "" {
		b.WriteString(".")
		b.WriteString(string(i.Property))
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	return b.String()
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
