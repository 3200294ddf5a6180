package checks

import (
	"context"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
	"pkgmedic/internal/textdiff"
)

type FilesManifestRule struct{}

func (r *FilesManifestRule) ID() string {
	return "files-manifest"
}

func (r *FilesManifestRule) Title() string {
	return "MANIFEST.in Includes the Contract Files"
}

func (r *FilesManifestRule) Description() string {
	return "Verifies that MANIFEST.in carries every include line of the generated package scaffold. Lines may differ slightly; close matches count."
}

func (r *FilesManifestRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesManifestRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvFileManifest, data.EvTemplateManifest}, nil
}

func (r *FilesManifestRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	file, err := evidence[*models.FileContent](ev, data.EvFileManifest)
	if err != nil {
		return rules.Issue{}, err
	}
	tmpl, err := evidence[*models.RenderedTemplate](ev, data.EvTemplateManifest)
	if err != nil {
		return rules.Issue{}, err
	}

	if !file.Found {
		return rules.CriticalIssue(pkg, r.ID(), "MANIFEST.in",
			"MANIFEST.in not found in the package",
			"Regenerate the package scaffold to restore MANIFEST.in"), nil
	}

	lines := file.Lines()
	var missing []string
	for _, want := range tmpl.Lines() {
		if strings.TrimSpace(want) == "" {
			continue
		}
		if !textdiff.HasCloseMatch(want, lines) {
			missing = append(missing, want)
		}
	}

	if len(missing) > 0 {
		return rules.WarnIssue(pkg, r.ID(), "MANIFEST.in",
			"MANIFEST.in is missing lines: "+strings.Join(missing, "; "),
			"Add the missing lines to MANIFEST.in"), nil
	}
	return rules.PassIssue(pkg, r.ID(), "MANIFEST.in", "MANIFEST.in covers the generated scaffold"), nil
}

func init() {
	rules.Register(&FilesManifestRule{})
}
