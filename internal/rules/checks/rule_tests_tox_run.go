package checks

import (
	"context"
	"fmt"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type TestsToxRunRule struct{}

func (r *TestsToxRunRule) ID() string {
	return "tests-tox-run"
}

func (r *TestsToxRunRule) Title() string {
	return "Package Tests Pass"
}

func (r *TestsToxRunRule) Description() string {
	return "Runs the package's tests with tox and verifies that none fail or error."
}

func (r *TestsToxRunRule) Group() rules.Group {
	return rules.GroupTests
}

func (r *TestsToxRunRule) Seq() int {
	return 4
}

func (r *TestsToxRunRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvToxRun}, nil
}

func (r *TestsToxRunRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	outcome, err := evidence[*models.ToxOutcome](ev, data.EvToxRun)
	if err != nil {
		return rules.Issue{}, err
	}

	report := outcome.Report
	if report.Failures > 0 || report.Errors > 0 || (report.Tests == 0 && outcome.ExitCode != 0) {
		desc := fmt.Sprintf("package tests failed (%d failure(s), %d error(s), %d skipped of %d)",
			report.Failures, report.Errors, report.Skipped, report.Tests)
		if len(report.FailureDetails) > 0 {
			desc += ":\n" + strings.Join(report.FailureDetails, "\n")
		}
		return rules.CriticalIssue(pkg, r.ID(), "tox", desc,
			"Fix the failing tests and run validation again"), nil
	}

	return rules.PassIssue(pkg, r.ID(), "tox",
		fmt.Sprintf("package tests passed (%d run, %d skipped)", report.Tests, report.Skipped)), nil
}

func init() {
	rules.Register(&TestsToxRunRule{})
}
