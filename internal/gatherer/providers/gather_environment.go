package providers

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

type runtimeInstalledGatherer struct{}

func (r *runtimeInstalledGatherer) Key() data.EvidenceKey {
	return data.EvRuntimeInstalled
}

func (r *runtimeInstalledGatherer) Scope() data.GatherScope {
	return data.ScopeEnv
}

func (r *runtimeInstalledGatherer) Gather(ctx context.Context, _ *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	v, err := g.Env().InstalledVersion(ctx, pypkg.RuntimeDist)
	if err != nil {
		return nil, err
	}
	return &models.InstalledDist{
		Dist:    pypkg.RuntimeDist,
		Found:   v != nil,
		Version: v,
	}, nil
}

type packageInstalledGatherer struct{}

func (p *packageInstalledGatherer) Key() data.EvidenceKey {
	return data.EvPackageInstalled
}

func (p *packageInstalledGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (p *packageInstalledGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	dist := pkg.HyphenName()
	v, err := g.Env().InstalledVersion(ctx, dist)
	if err != nil {
		return nil, err
	}
	return &models.InstalledDist{
		Dist:    dist,
		Found:   v != nil,
		Version: v,
	}, nil
}

type toxInstalledGatherer struct{}

func (t *toxInstalledGatherer) Key() data.EvidenceKey {
	return data.EvToxInstalled
}

func (t *toxInstalledGatherer) Scope() data.GatherScope {
	return data.ScopeEnv
}

func (t *toxInstalledGatherer) Gather(ctx context.Context, _ *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	v, err := g.Env().InstalledVersion(ctx, pypkg.ToxDist)
	if err != nil {
		return nil, err
	}
	return &models.InstalledDist{
		Dist:    pypkg.ToxDist,
		Found:   v != nil,
		Version: v,
	}, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&runtimeInstalledGatherer{})
	gatherer.RegisterEvidenceGatherer(&packageInstalledGatherer{})
	gatherer.RegisterEvidenceGatherer(&toxInstalledGatherer{})
}
