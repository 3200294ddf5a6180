package checks

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type FilesConfigPyRule struct{}

func (r *FilesConfigPyRule) ID() string {
	return "files-config-py"
}

func (r *FilesConfigPyRule) Title() string {
	return "config.py Declares Valid Configuration"
}

func (r *FilesConfigPyRule) Description() string {
	return "Verifies that the package's config.py declares a parseable configuration section for the app."
}

func (r *FilesConfigPyRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesConfigPyRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvAppConfig}, nil
}

func (r *FilesConfigPyRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	cfg, err := evidence[*models.AppConfig](ev, data.EvAppConfig)
	if err != nil {
		return rules.Issue{}, err
	}

	switch {
	case !cfg.Found:
		return rules.CriticalIssue(pkg, r.ID(), "config.py",
			"config.py not found in the package",
			"Regenerate the package scaffold to restore util/config.py"), nil
	case cfg.ParseErr != nil:
		return rules.CriticalIssue(pkg, r.ID(), "config.py",
			"config.py could not be parsed: "+cfg.ParseErr.Error(),
			"Fix the configuration section returned by config_section_data"), nil
	case cfg.Section == "":
		return rules.InfoIssue(pkg, r.ID(), "config.py",
			"config.py declares no configuration for the app",
			"If the app needs configuration, declare it in config_section_data"), nil
	default:
		return rules.PassIssueWithSolution(pkg, r.ID(), "config.py",
			"config.py declares valid configuration", cfg.Section), nil
	}
}

func init() {
	rules.Register(&FilesConfigPyRule{})
}
