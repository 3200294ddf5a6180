package checks

import (
	"context"
	"fmt"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
	"pkgmedic/internal/textdiff"
)

// FilesTemplateMatchRule compares one container contract file against its
// rendered scaffold form. The file must match exactly; any drift is
// reported with a unified diff.
type FilesTemplateMatchRule struct {
	fileName    string
	fileKey     data.EvidenceKey
	templateKey data.EvidenceKey
}

func (r *FilesTemplateMatchRule) ID() string {
	return "files-" + strings.ToLower(strings.TrimSuffix(r.fileName, ".sh"))
}

func (r *FilesTemplateMatchRule) Title() string {
	return r.fileName + " Matches the Scaffold"
}

func (r *FilesTemplateMatchRule) Description() string {
	return "Verifies that " + r.fileName + " is unchanged from the generated package scaffold."
}

func (r *FilesTemplateMatchRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesTemplateMatchRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{r.fileKey, r.templateKey}, nil
}

func (r *FilesTemplateMatchRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	file, err := evidence[*models.FileContent](ev, r.fileKey)
	if err != nil {
		return rules.Issue{}, err
	}
	tmpl, err := evidence[*models.RenderedTemplate](ev, r.templateKey)
	if err != nil {
		return rules.Issue{}, err
	}

	if !file.Found {
		return rules.CriticalIssue(pkg, r.ID(), r.fileName,
			r.fileName+" not found in the package",
			"Regenerate the package scaffold to restore "+r.fileName), nil
	}

	want := tmpl.Lines()
	got := file.Lines()
	ratio := textdiff.Ratio(want, got)
	if ratio < 1.0 {
		diff, derr := textdiff.Unified("scaffold/"+r.fileName, pkg.Name+"/"+r.fileName, want, got)
		if derr != nil {
			return rules.Issue{}, derr
		}
		return rules.WarnIssue(pkg, r.ID(), r.fileName,
			fmt.Sprintf("%s differs from the generated scaffold (similarity %.2f)", r.fileName, ratio),
			"Review the differences:\n"+diff), nil
	}
	return rules.PassIssue(pkg, r.ID(), r.fileName, r.fileName+" matches the generated scaffold"), nil
}

func init() {
	rules.Register(&FilesTemplateMatchRule{
		fileName:    "Dockerfile",
		fileKey:     data.EvFileDockerfile,
		templateKey: data.EvTemplateDockerfile,
	})
	rules.Register(&FilesTemplateMatchRule{
		fileName:    "entrypoint.sh",
		fileKey:     data.EvFileEntrypoint,
		templateKey: data.EvTemplateEntrypoint,
	})
}
