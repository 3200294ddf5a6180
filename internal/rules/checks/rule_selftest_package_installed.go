package checks

import (
	"context"
	"fmt"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type SelftestPackageInstalledRule struct{}

func (r *SelftestPackageInstalledRule) ID() string {
	return "selftest-package-installed"
}

func (r *SelftestPackageInstalledRule) Title() string {
	return "Package Is Installed"
}

func (r *SelftestPackageInstalledRule) Description() string {
	return "Verifies that the package under validation is itself installed in the Python environment, so its selftest can be invoked."
}

func (r *SelftestPackageInstalledRule) Group() rules.Group {
	return rules.GroupSelftest
}

func (r *SelftestPackageInstalledRule) Seq() int {
	return 2
}

func (r *SelftestPackageInstalledRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvPackageInstalled}, nil
}

func (r *SelftestPackageInstalledRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	dist, err := evidence[*models.InstalledDist](ev, data.EvPackageInstalled)
	if err != nil {
		return rules.Issue{}, err
	}

	if !dist.Found {
		return rules.CriticalIssue(pkg, r.ID(), dist.Dist,
			fmt.Sprintf("'%s' is not installed in the Python environment", dist.Dist),
			"Install the package with: pip install ."), nil
	}
	return rules.PassIssue(pkg, r.ID(), dist.Dist,
		fmt.Sprintf("'%s' %s is installed", dist.Dist, dist.Version)), nil
}

func init() {
	rules.Register(&SelftestPackageInstalledRule{})
}
