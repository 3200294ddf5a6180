package models

// SelftestOutcome is the raw result of running a package's selftest out of
// process. Classification of the exit code is rule logic, not gathering
// logic.
type SelftestOutcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output returns the combined output used for marker searches.
func (o *SelftestOutcome) Output() string {
	if o == nil {
		return ""
	}
	return o.Stdout + o.Stderr
}
