package checks

import (
	"context"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type FilesReadmeRule struct{}

func (r *FilesReadmeRule) ID() string {
	return "files-readme"
}

func (r *FilesReadmeRule) Title() string {
	return "README Is Written"
}

func (r *FilesReadmeRule) Description() string {
	return "Verifies that the README has been filled in after generation: no untouched template, no placeholders, no TODOs, and every referenced screenshot present."
}

func (r *FilesReadmeRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesReadmeRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvFileReadme, data.EvTemplateReadme, data.EvReadmeScreenshots}, nil
}

func (r *FilesReadmeRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	file, err := evidence[*models.FileContent](ev, data.EvFileReadme)
	if err != nil {
		return rules.Issue{}, err
	}
	tmpl, err := evidence[*models.RenderedTemplate](ev, data.EvTemplateReadme)
	if err != nil {
		return rules.Issue{}, err
	}
	shots, err := evidence[*models.ReadmeScreenshots](ev, data.EvReadmeScreenshots)
	if err != nil {
		return rules.Issue{}, err
	}

	// Ordered cascade; the first failing stage wins.
	switch {
	case !file.Found:
		return rules.CriticalIssue(pkg, r.ID(), "README.md",
			"README.md not found in the package",
			"Generate the documentation for the package"), nil

	case file.Raw == tmpl.Raw:
		return rules.CriticalIssue(pkg, r.ID(), "README.md",
			"README.md is identical to the generated template",
			"Generate the documentation for the package, then fill it in"), nil

	case strings.Contains(file.Raw, pypkg.DocgenPlaceholder):
		return rules.CriticalIssue(pkg, r.ID(), "README.md",
			"README.md still contains the '"+pypkg.DocgenPlaceholder+"' placeholder",
			"Replace every placeholder with real content"), nil

	case strings.Contains(file.Raw, "TODO"):
		return rules.WarnIssue(pkg, r.ID(), "README.md",
			"README.md still contains TODOs",
			"Resolve the remaining TODOs"), nil

	case shots.ParseErr != nil:
		return rules.CriticalIssue(pkg, r.ID(), "README.md",
			"README.md could not be checked: "+shots.ParseErr.Error(),
			"Fix the image reference syntax in README.md"), nil

	case len(shots.Missing) > 0:
		return rules.CriticalIssue(pkg, r.ID(), "README.md",
			"README.md references screenshots that do not exist: "+strings.Join(shots.Missing, ", "),
			"Add the missing screenshots or correct their paths"), nil

	default:
		return rules.PassIssue(pkg, r.ID(), "README.md", "README.md is filled in"), nil
	}
}

func init() {
	rules.Register(&FilesReadmeRule{})
}
