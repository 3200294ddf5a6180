package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

type readmeScreenshotsGatherer struct{}

func (r *readmeScreenshotsGatherer) Key() data.EvidenceKey {
	return data.EvReadmeScreenshots
}

func (r *readmeScreenshotsGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (r *readmeScreenshotsGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	val, err := g.Gather(ctx, pkg, data.EvFileReadme)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve README content: %w", err)
	}
	file, ok := val.(*models.FileContent)
	if !ok {
		return nil, fmt.Errorf("failed to resolve README content: unexpected type %T for %s", val, data.EvFileReadme)
	}
	if !file.Found {
		return &models.ReadmeScreenshots{}, nil
	}

	refs, perr := pypkg.ScreenshotPaths(file.Raw)
	if perr != nil {
		return &models.ReadmeScreenshots{ParseErr: perr}, nil
	}

	shots := &models.ReadmeScreenshots{Refs: refs}
	for _, ref := range refs {
		if _, serr := os.Stat(filepath.Join(pkg.Path, filepath.FromSlash(ref))); serr != nil {
			shots.Missing = append(shots.Missing, ref)
		}
	}
	return shots, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&readmeScreenshotsGatherer{})
}
