// Package validator checks loaded module descriptors against the invariants the build
// orchestrator relies on.
package validator

import (
	"fmt"
	"slices"

	"go.trai.ch/modscan/internal/core/domain"
)

// Validator reports issues across a set of loaded descriptors.
type Validator struct {
	known map[domain.InternedString]struct{}
}

// New creates a Validator. When known is non-empty the set of module names is closed:
// module-list entries naming neither a known module nor a scanned one are reported.
func New(known []string) *Validator {
	v := &Validator{}
	if len(known) > 0 {
		v.known = make(map[domain.InternedString]struct{}, len(known))
		for _, name := range domain.NewInternedStrings(known) {
			v.known[name] = struct{}{}
		}
	}
	return v
}

// Validate returns every issue found in records. Issues follow record order; within a
// record they follow property order.
func (v *Validator) Validate(records []domain.Record) []domain.Issue {
	var issues []domain.Issue

	first := make(map[domain.InternedString]domain.Record, len(records))
	for _, rec := range records {
		name := domain.NewInternedString(rec.Descriptor.Name)
		if prev, ok := first[name]; ok {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Code:     domain.IssueDuplicateModule,
				Module:   rec.Descriptor.Name,
				Source:   rec.Descriptor.Source,
				Message:  "also declared in " + prev.Descriptor.Source,
			})
			continue
		}
		first[name] = rec
	}

	for _, rec := range records {
		issues = append(issues, v.check(rec.Descriptor, first)...)
	}
	return issues
}

func (v *Validator) check(d *domain.Descriptor, scanned map[domain.InternedString]domain.Record) []domain.Issue {
	var issues []domain.Issue
	issue := func(severity domain.Severity, code domain.IssueCode, p domain.Property, value, msg string) {
		issues = append(issues, domain.Issue{
			Severity: severity,
			Code:     code,
			Module:   d.Name,
			Property: p,
			Value:    value,
			Source:   d.Source,
			Message:  msg,
		})
	}

	for _, p := range d.Properties() {
		list := d.List(p)

		dups, counts := duplicates(list)
		for _, value := range dups {
			issue(domain.SeverityWarning, domain.IssueDuplicateEntry, p, value,
				fmt.Sprintf("%q is listed %d times", value, counts[value]))
		}

		if p.IsDependency() && slices.Contains(list, d.Name) {
			issue(domain.SeverityError, domain.IssueSelfDependency, p, d.Name,
				domain.ErrSelfDependency.Error())
		}

		if v.known == nil || !p.IsModuleList() {
			continue
		}
		for _, value := range d.Set(p) {
			name := domain.NewInternedString(value)
			if _, ok := v.known[name]; ok {
				continue
			}
			if _, ok := scanned[name]; ok {
				continue
			}
			issue(domain.SeverityWarning, domain.IssueUnknownDependency, p, value,
				fmt.Sprintf("%q is not a known module", value))
		}
	}

	public := d.Set(domain.PublicDependencyModuleNames)
	for _, value := range d.Set(domain.PrivateDependencyModuleNames) {
		if slices.Contains(public, value) {
			issue(domain.SeverityWarning, domain.IssueRedundantPrivateDependency,
				domain.PrivateDependencyModuleNames, value,
				fmt.Sprintf("%q is already a public dependency", value))
		}
	}

	if raw, ok := d.Setting(domain.PCHUsageSetting); ok {
		if _, valid := domain.ParsePCHUsage(raw); !valid {
			issue(domain.SeverityWarning, domain.IssueInvalidPCHUsage, "", raw,
				fmt.Sprintf("%q is not a precompiled header mode", raw))
		}
	}

	return issues
}

// duplicates returns the values occurring more than once with their counts, in
// first-occurrence order.
func duplicates(list []string) ([]string, map[string]int) {
	counts := make(map[string]int, len(list))
	for _, value := range list {
		counts[value]++
	}
	var out []string
	for _, value := range list {
		if counts[value] > 1 && !slices.Contains(out, value) {
			out = append(out, value)
		}
	}
	return out, counts
}
