package checks

import (
	"context"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type FilesCustomizePyRule struct{}

func (r *FilesCustomizePyRule) ID() string {
	return "files-customize-py"
}

func (r *FilesCustomizePyRule) Title() string {
	return "Import Definition Is Readable"
}

func (r *FilesCustomizePyRule) Description() string {
	return "Verifies that the package carries a readable customization import definition, in export.res or embedded in customize.py."
}

func (r *FilesCustomizePyRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesCustomizePyRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvImportDefinition}, nil
}

func (r *FilesCustomizePyRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	def, err := evidence[*models.ImportDefinition](ev, data.EvImportDefinition)
	if err != nil {
		return rules.Issue{}, err
	}

	if def.ParseErr != nil {
		return rules.CriticalIssue(pkg, r.ID(), "customize.py",
			errorText(def.ParseErr.Error()),
			"Restore a valid import definition in util/data/export.res"), nil
	}
	return rules.PassIssue(pkg, r.ID(), "customize.py",
		"import definition read from "+def.Source), nil
}

// errorText cuts the message down to start at its first "ERROR" marker,
// dropping wrapper prefixes.
func errorText(msg string) string {
	if i := strings.Index(msg, "ERROR"); i >= 0 {
		return msg[i:]
	}
	return msg
}

func init() {
	rules.Register(&FilesCustomizePyRule{})
}
