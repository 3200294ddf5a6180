package checks

import (
	"context"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

// supportedToxEnv is the only interpreter tag tests may target.
const supportedToxEnv = "py36"

type TestsToxEnvlistRule struct{}

func (r *TestsToxEnvlistRule) ID() string {
	return "tests-tox-envlist"
}

func (r *TestsToxEnvlistRule) Title() string {
	return "tox.ini Targets the Supported Interpreter"
}

func (r *TestsToxEnvlistRule) Description() string {
	return "Verifies that the tox envlist targets exactly the supported interpreter tag (" + supportedToxEnv + "). Multi-version lists are not supported."
}

func (r *TestsToxEnvlistRule) Group() rules.Group {
	return rules.GroupTests
}

func (r *TestsToxEnvlistRule) Seq() int {
	return 3
}

func (r *TestsToxEnvlistRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvToxConfig}, nil
}

func (r *TestsToxEnvlistRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	cfg, err := evidence[*models.ToxConfig](ev, data.EvToxConfig)
	if err != nil {
		return rules.Issue{}, err
	}

	switch {
	case len(cfg.EnvList) == 0:
		return rules.CriticalIssue(pkg, r.ID(), "envlist",
			"tox.ini does not declare an envlist",
			"Declare 'envlist = "+supportedToxEnv+"' in the [tox] section"), nil
	case len(cfg.EnvList) > 1:
		return rules.CriticalIssue(pkg, r.ID(), "envlist",
			"tox.ini targets multiple environments: "+strings.Join(cfg.EnvList, ", "),
			"Target only '"+supportedToxEnv+"'"), nil
	case cfg.EnvList[0] != supportedToxEnv:
		return rules.CriticalIssue(pkg, r.ID(), "envlist",
			"tox.ini targets the unsupported environment '"+cfg.EnvList[0]+"'",
			"Target only '"+supportedToxEnv+"'"), nil
	default:
		return rules.PassIssue(pkg, r.ID(), "envlist", "tox.ini targets '"+supportedToxEnv+"'"), nil
	}
}

func init() {
	rules.Register(&TestsToxEnvlistRule{})
}
