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

// unimplementedMarker appears in selftest output when the package's
// selftest function was scaffolded but never written.
const unimplementedMarker = "'state': 'unimplemented'"

type SelftestRunRule struct{}

func (r *SelftestRunRule) ID() string {
	return "selftest-run"
}

func (r *SelftestRunRule) Title() string {
	return "Selftest Passes"
}

func (r *SelftestRunRule) Description() string {
	return "Runs the package's selftest out of process and verifies that it reports success."
}

func (r *SelftestRunRule) Group() rules.Group {
	return rules.GroupSelftest
}

func (r *SelftestRunRule) Seq() int {
	return 4
}

func (r *SelftestRunRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvSelftestRun}, nil
}

func (r *SelftestRunRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	outcome, err := evidence[*models.SelftestOutcome](ev, data.EvSelftestRun)
	if err != nil {
		return rules.Issue{}, err
	}

	switch {
	case outcome.ExitCode == 1:
		return rules.CriticalIssue(pkg, r.ID(), "selftest",
			"selftest failed: "+selftestFailureReason(outcome.Stderr),
			"Fix the failure reported by the selftest and run validation again"), nil

	case outcome.ExitCode > 1:
		return rules.CriticalIssue(pkg, r.ID(), "selftest",
			"selftest could not connect to the platform: "+lastErrorText(outcome.Output()),
			"Check the connection details in the configuration file referenced by $APP_CONFIG_FILE, then run validation again"), nil

	case outcome.ExitCode == 0 && strings.Contains(outcome.Output(), unimplementedMarker):
		return rules.CriticalIssue(pkg, r.ID(), "selftest",
			"selftest is not implemented",
			"Implement the selftest function in "+pkg.Name+"/util/selftest.py"), nil

	case outcome.ExitCode == 0:
		return rules.PassIssue(pkg, r.ID(), "selftest", "selftest ran successfully"), nil

	default:
		return rules.Issue{}, fmt.Errorf("selftest exited with unexpected status %d", outcome.ExitCode)
	}
}

// selftestFailureReason pulls the reason out of the last {...} block of
// stderr, flattened to one line. Falls back to the raw tail when no
// block is present.
func selftestFailureReason(stderr string) string {
	open := strings.LastIndex(stderr, "{")
	closing := strings.LastIndex(stderr, "}")
	reason := stderr
	if open >= 0 && closing > open {
		reason = stderr[open+1 : closing]
	}
	reason = strings.TrimSpace(reason)
	reason = strings.ReplaceAll(reason, "\n", ". ")
	reason = strings.ReplaceAll(reason, "\t", " ")
	if reason == "" {
		reason = "no failure reason reported"
	}
	return reason
}

// lastErrorText returns everything from the last "ERROR" marker to the
// end of the output, flattened to one line.
func lastErrorText(output string) string {
	text := output
	if i := strings.LastIndex(output, "ERROR"); i >= 0 {
		text = output[i:]
	}
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", ". ")
	text = strings.ReplaceAll(text, "\t", " ")
	if text == "" {
		text = "no error output captured"
	}
	return text
}

func init() {
	rules.Register(&SelftestRunRule{})
}
