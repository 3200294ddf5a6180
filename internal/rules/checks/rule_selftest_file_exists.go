package checks

import (
	"context"
	"fmt"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type SelftestFileExistsRule struct{}

func (r *SelftestFileExistsRule) ID() string {
	return "selftest-file-exists"
}

func (r *SelftestFileExistsRule) Title() string {
	return "Selftest File Exists"
}

func (r *SelftestFileExistsRule) Description() string {
	return "Verifies that the package ships its selftest entry file at <package>/util/selftest.py."
}

func (r *SelftestFileExistsRule) Group() rules.Group {
	return rules.GroupSelftest
}

func (r *SelftestFileExistsRule) Seq() int {
	return 3
}

func (r *SelftestFileExistsRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvSelftestFile}, nil
}

func (r *SelftestFileExistsRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	presence, err := evidence[*models.FilePresence](ev, data.EvSelftestFile)
	if err != nil {
		return rules.Issue{}, err
	}

	if !presence.Found {
		return rules.CriticalIssue(pkg, r.ID(), "selftest.py",
			fmt.Sprintf("selftest file not found at %s", presence.Path),
			"Regenerate the package scaffold or restore util/selftest.py"), nil
	}
	return rules.PassIssue(pkg, r.ID(), "selftest.py", "selftest file found"), nil
}

func init() {
	rules.Register(&SelftestFileExistsRule{})
}
