package checks

import (
	"context"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type FilesApikeyPermissionsRule struct{}

func (r *FilesApikeyPermissionsRule) ID() string {
	return "files-apikey-permissions"
}

func (r *FilesApikeyPermissionsRule) Title() string {
	return "API Key Permissions Include the Base Set"
}

func (r *FilesApikeyPermissionsRule) Description() string {
	return "Verifies that apikey_permissions.txt requests at least the base permissions every app needs."
}

func (r *FilesApikeyPermissionsRule) Group() rules.Group {
	return rules.GroupPackageFiles
}

func (r *FilesApikeyPermissionsRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvFilePermissions}, nil
}

func (r *FilesApikeyPermissionsRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	file, err := evidence[*models.FileContent](ev, data.EvFilePermissions)
	if err != nil {
		return rules.Issue{}, err
	}

	if !file.Found {
		return rules.CriticalIssue(pkg, r.ID(), "apikey_permissions.txt",
			"apikey_permissions.txt not found in the package",
			"Regenerate the package scaffold to restore apikey_permissions.txt"), nil
	}

	granted := make(map[string]bool)
	for _, line := range file.Lines() {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		granted[line] = true
	}

	var missing []string
	for _, perm := range pypkg.BasePermissions {
		if !granted[perm] {
			missing = append(missing, perm)
		}
	}

	if len(missing) > 0 {
		return rules.CriticalIssue(pkg, r.ID(), "apikey_permissions.txt",
			"apikey_permissions.txt is missing base permissions: "+strings.Join(missing, ", "),
			"Add the missing permissions to apikey_permissions.txt"), nil
	}
	return rules.PassIssue(pkg, r.ID(), "apikey_permissions.txt", "all base permissions are requested"), nil
}

func init() {
	rules.Register(&FilesApikeyPermissionsRule{})
}
