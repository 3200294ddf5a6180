package providers

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

type setupMetadataGatherer struct{}

func (s *setupMetadataGatherer) Key() data.EvidenceKey {
	return data.EvSetupMetadata
}

func (s *setupMetadataGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (s *setupMetadataGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	return pypkg.ParseSetupPy(pkg.SetupPyPath())
}

func init() {
	gatherer.RegisterEvidenceGatherer(&setupMetadataGatherer{})
}
