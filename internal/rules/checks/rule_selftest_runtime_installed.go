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

type SelftestRuntimeInstalledRule struct {
	minVersion *semver.Version
}

func (r *SelftestRuntimeInstalledRule) ID() string {
	return "selftest-runtime-installed"
}

func (r *SelftestRuntimeInstalledRule) Title() string {
	return "Integration Runtime Is Installed"
}

func (r *SelftestRuntimeInstalledRule) Description() string {
	return "Verifies that the '" + pypkg.RuntimeDist + "' library is installed in the Python environment at or above the minimum supported version."
}

func (r *SelftestRuntimeInstalledRule) Group() rules.Group {
	return rules.GroupSelftest
}

func (r *SelftestRuntimeInstalledRule) Seq() int {
	return 1
}

func (r *SelftestRuntimeInstalledRule) Options() []rules.Option {
	return []rules.Option{
		{
			Name:        "min.version",
			Description: "Minimum accepted version of the installed runtime library.",
			Default:     pypkg.MinRuntimeVersion,
		},
	}
}

func (r *SelftestRuntimeInstalledRule) Configure(opts map[string]string) error {
	if raw, ok := opts["min.version"]; ok && raw != "" {
		v, err := semver.NewVersion(raw)
		if err != nil {
			return fmt.Errorf("min.version: %w", err)
		}
		r.minVersion = v
	}
	return nil
}

func (r *SelftestRuntimeInstalledRule) minimum() *semver.Version {
	if r.minVersion != nil {
		return r.minVersion
	}
	return semver.MustParse(pypkg.MinRuntimeVersion)
}

func (r *SelftestRuntimeInstalledRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvRuntimeInstalled}, nil
}

func (r *SelftestRuntimeInstalledRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	dist, err := evidence[*models.InstalledDist](ev, data.EvRuntimeInstalled)
	if err != nil {
		return rules.Issue{}, err
	}

	minimum := r.minimum()
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
	rules.Register(&SelftestRuntimeInstalledRule{})
}
