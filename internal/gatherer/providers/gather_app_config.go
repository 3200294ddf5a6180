package providers

import (
	"context"
	"os"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

type appConfigGatherer struct{}

func (a *appConfigGatherer) Key() data.EvidenceKey {
	return data.EvAppConfig
}

func (a *appConfigGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (a *appConfigGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	raw, err := os.ReadFile(pkg.ConfigPyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &models.AppConfig{}, nil
		}
		return nil, err
	}

	cfg, perr := pypkg.ParseAppConfig(string(raw))
	if perr != nil {
		return &models.AppConfig{Found: true, ParseErr: perr}, nil
	}
	cfg.Found = true
	return cfg, nil
}

type importDefinitionGatherer struct{}

func (i *importDefinitionGatherer) Key() data.EvidenceKey {
	return data.EvImportDefinition
}

func (i *importDefinitionGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (i *importDefinitionGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	def, err := pypkg.ParseImportDefinition(pkg.ExportResPath(), pkg.CustomizePyPath())
	if err != nil {
		return &models.ImportDefinition{ParseErr: err}, nil
	}
	return def, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&appConfigGatherer{})
	gatherer.RegisterEvidenceGatherer(&importDefinitionGatherer{})
}
