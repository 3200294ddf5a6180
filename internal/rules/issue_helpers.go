package rules

import "pkgmedic/internal/pypkg"

func PackageName(pkg *pypkg.Package) string {
	if pkg == nil {
		return ""
	}
	return pkg.Name
}

func NewIssue(pkg *pypkg.Package, ruleID string, sev Severity, name, description, solution string) Issue {
	return Issue{
		RuleID:      ruleID,
		Package:     PackageName(pkg),
		Name:        name,
		Severity:    sev,
		Description: description,
		Solution:    solution,
	}
}

// PassIssue builds the passing form of an Issue: lowest severity and no
// remediation text.
func PassIssue(pkg *pypkg.Package, ruleID string, name, description string) Issue {
	return NewIssue(pkg, ruleID, SeverityDebug, name, description, "")
}

// PassIssueWithSolution is used by the few checks whose passing Issue
// carries a payload (e.g. the parsed config) in the remediation field.
func PassIssueWithSolution(pkg *pypkg.Package, ruleID string, name, description, solution string) Issue {
	i := PassIssue(pkg, ruleID, name, description)
	i.Solution = solution
	return i
}

func CriticalIssue(pkg *pypkg.Package, ruleID string, name, description, solution string) Issue {
	return NewIssue(pkg, ruleID, SeverityCritical, name, description, solution)
}

func WarnIssue(pkg *pypkg.Package, ruleID string, name, description, solution string) Issue {
	return NewIssue(pkg, ruleID, SeverityWarn, name, description, solution)
}

func InfoIssue(pkg *pypkg.Package, ruleID string, name, description, solution string) Issue {
	return NewIssue(pkg, ruleID, SeverityInfo, name, description, solution)
}
