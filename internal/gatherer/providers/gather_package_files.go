package providers

import (
	"context"
	"os"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

// fileContentGatherer reads one contract file from the package root. A
// missing file is evidence (Found=false), not a gather failure.
type fileContentGatherer struct {
	key      data.EvidenceKey
	fileName string
}

func (f *fileContentGatherer) Key() data.EvidenceKey {
	return f.key
}

func (f *fileContentGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (f *fileContentGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	path := pkg.FilePath(f.fileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.FileContent{Path: path}, nil
		}
		return nil, err
	}
	return &models.FileContent{Path: path, Found: true, Raw: string(raw)}, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&fileContentGatherer{key: data.EvFileManifest, fileName: "MANIFEST.in"})
	gatherer.RegisterEvidenceGatherer(&fileContentGatherer{key: data.EvFilePermissions, fileName: "apikey_permissions.txt"})
	gatherer.RegisterEvidenceGatherer(&fileContentGatherer{key: data.EvFileDockerfile, fileName: "Dockerfile"})
	gatherer.RegisterEvidenceGatherer(&fileContentGatherer{key: data.EvFileEntrypoint, fileName: "entrypoint.sh"})
	gatherer.RegisterEvidenceGatherer(&fileContentGatherer{key: data.EvFileReadme, fileName: "README.md"})
}
