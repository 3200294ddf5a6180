package checks

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type TestsToxFileRule struct{}

func (r *TestsToxFileRule) ID() string {
	return "tests-tox-file"
}

func (r *TestsToxFileRule) Title() string {
	return "tox.ini Exists"
}

func (r *TestsToxFileRule) Description() string {
	return "Verifies that the package carries a tox.ini so its tests can be run."
}

func (r *TestsToxFileRule) Group() rules.Group {
	return rules.GroupTests
}

func (r *TestsToxFileRule) Seq() int {
	return 2
}

func (r *TestsToxFileRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvToxConfig}, nil
}

func (r *TestsToxFileRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	cfg, err := evidence[*models.ToxConfig](ev, data.EvToxConfig)
	if err != nil {
		return rules.Issue{}, err
	}

	if !cfg.Found {
		return rules.InfoIssue(pkg, r.ID(), "tox.ini",
			"tox.ini not found in the package, tests will not be run",
			"Add a tox.ini if the package has tests"), nil
	}
	return rules.PassIssue(pkg, r.ID(), "tox.ini", "tox.ini found"), nil
}

func init() {
	rules.Register(&TestsToxFileRule{})
}
