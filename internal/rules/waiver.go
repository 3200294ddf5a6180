package rules

import (
	"fmt"
	"path"
	"strings"

	"pkgmedic/internal/pypkg"
)

// Waiver handles common waiver logic for rules.
// It supports waiving a failing check by package name (exact match) or
// glob pattern.
type Waiver struct {
	Packages map[string]bool
	Patterns []string
}

// Options returns the standard configuration options for waiving.
func (w *Waiver) Options() []Option {
	return []Option{
		{
			Name:        "waive.packages",
			Description: "Comma-separated list of package names for which a failure of this rule is waived.",
		},
		{
			Name:        "waive.patterns",
			Description: "Comma-separated list of wildcard patterns for waived package names (e.g. fn_internal_*).",
		},
	}
}

// Configure parses the configuration options to populate the Waiver.
func (w *Waiver) Configure(opts map[string]string) {
	w.Packages = make(map[string]bool)
	w.Patterns = nil

	if val, ok := opts["waive.packages"]; ok && val != "" {
		for _, s := range strings.Split(val, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				w.Packages[strings.ToLower(s)] = true
			}
		}
	}

	if val, ok := opts["waive.patterns"]; ok && val != "" {
		for _, s := range strings.Split(val, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				// Patterns are lowercased for case-insensitive matching
				w.Patterns = append(w.Patterns, strings.ToLower(s))
			}
		}
	}
}

// IsWaived checks if the package is waived by any of the configured entries.
// It returns true and a reason string if waived, otherwise false and "".
func (w *Waiver) IsWaived(pkg *pypkg.Package) (bool, string) {
	if pkg == nil {
		return false, ""
	}

	name := strings.ToLower(pkg.Name)

	if w.Packages[name] {
		return true, "waive.packages"
	}

	for _, pattern := range w.Patterns {
		if matched, _ := path.Match(pattern, name); matched {
			return true, "waive.patterns"
		}
	}

	return false, ""
}

// CheckIssue applies the waiver logic to an evaluated Issue.
// If the Issue is a failure and the package is waived, it is converted to
// a pass that records the waived failure.
func (w *Waiver) CheckIssue(pkg *pypkg.Package, issue Issue) Issue {
	if !issue.Passed() {
		if waived, reason := w.IsWaived(pkg); waived {
			return PassIssue(pkg, issue.RuleID, issue.Name,
				fmt.Sprintf("Waived failure: %s (waived by policy: %s)", issue.Description, reason))
		}
	}
	return issue
}
