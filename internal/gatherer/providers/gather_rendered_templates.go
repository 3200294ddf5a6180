package providers

import (
	"context"
	"fmt"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/templates"
)

// renderedTemplateGatherer renders one canonical package file for the
// package under validation. It chains the setup metadata gather to pick
// up the package version.
type renderedTemplateGatherer struct {
	key          data.EvidenceKey
	templateName string
}

func (r *renderedTemplateGatherer) Key() data.EvidenceKey {
	return r.key
}

func (r *renderedTemplateGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (r *renderedTemplateGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	val, err := g.Gather(ctx, pkg, data.EvSetupMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package metadata: %w", err)
	}
	meta, ok := val.(*models.SetupMetadata)
	if !ok {
		return nil, fmt.Errorf("failed to resolve package metadata: unexpected type %T for %s", val, data.EvSetupMetadata)
	}

	raw, err := templates.Render(r.templateName, templates.Vars{
		PackageName:    pkg.Name,
		HyphenName:     pkg.HyphenName(),
		Version:        meta.Version(),
		RuntimeVersion: pypkg.MinRuntimeVersion,
	})
	if err != nil {
		return nil, err
	}

	return &models.RenderedTemplate{Name: r.templateName, Raw: raw}, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&renderedTemplateGatherer{key: data.EvTemplateManifest, templateName: templates.Manifest})
	gatherer.RegisterEvidenceGatherer(&renderedTemplateGatherer{key: data.EvTemplateDockerfile, templateName: templates.Dockerfile})
	gatherer.RegisterEvidenceGatherer(&renderedTemplateGatherer{key: data.EvTemplateEntrypoint, templateName: templates.Entrypoint})
	gatherer.RegisterEvidenceGatherer(&renderedTemplateGatherer{key: data.EvTemplateReadme, templateName: templates.Readme})
}
