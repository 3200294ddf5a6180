package rules

// Issue is the outcome of evaluating one rule against one package. Every
// evaluation produces exactly one Issue; a passing check is an Issue at
// the lowest severity with no remediation text.
type Issue struct {
	RuleID  string `json:"rule_id"`
	Package string `json:"package"`

	// Name is a short label for what was checked.
	Name string `json:"name"`

	Severity Severity `json:"severity"`

	// Description says what was found.
	Description string `json:"description"`

	// Solution says how to fix it. Empty for passing issues.
	Solution string `json:"solution,omitempty"`
}

// Passed reports whether the check found nothing to fix.
func (i Issue) Passed() bool {
	return i.Severity == SeverityDebug
}
