package checks

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type TestsToxInstalledRule struct{}

func (r *TestsToxInstalledRule) ID() string {
	return "tests-tox-installed"
}

func (r *TestsToxInstalledRule) Title() string {
	return "Test Runner Is Installed"
}

func (r *TestsToxInstalledRule) Description() string {
	return "Verifies that the '" + pypkg.ToxDist + "' test runner is installed in the Python environment at or above the minimum supported version."
}

func (r *TestsToxInstalledRule) Group() rules.Group {
	return rules.GroupTests
}

func (r *TestsToxInstalledRule) Seq() int {
	return 1
}

func (r *TestsToxInstalledRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvToxInstalled}, nil
}

func (r *TestsToxInstalledRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	dist, err := evidence[*models.InstalledDist](ev, data.EvToxInstalled)
	if err != nil {
		return rules.Issue{}, err
	}

	minimum := semver.MustParse(pypkg.MinToxVersion)
	switch {
	case !dist.Found:
		return rules.CriticalIssue(pkg, r.ID(), dist.Dist,
			fmt.Sprintf("'%s' is not installed in the Python environment", dist.Dist),
			fmt.Sprintf("Install it with: pip install '%s>=%s'", dist.Dist, minimum)), nil
	case dist.Version.LessThan(minimum):
		return rules.CriticalIssue(pkg, r.ID(), dist.Dist,
			fmt.Sprintf("'%s' version %s is below the minimum supported version %s", dist.Dist, dist.Version, minimum),
			fmt.Sprintf("Upgrade it with: pip install --upgrade '%s>=%s'", dist.Dist, minimum)), nil
	default:
		return rules.PassIssue(pkg, r.ID(), dist.Dist,
			fmt.Sprintf("'%s' %s is installed", dist.Dist, dist.Version)), nil
	}
}

func init() {
	rules.Register(&TestsToxInstalledRule{})
}
