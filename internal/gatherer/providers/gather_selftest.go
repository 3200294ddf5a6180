package providers

import (
	"context"
	"os"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

// AppConfigEnvVar names the environment variable the runtime reads its
// configuration file path from.
const AppConfigEnvVar = "APP_CONFIG_FILE"

type selftestFileGatherer struct{}

func (s *selftestFileGatherer) Key() data.EvidenceKey {
	return data.EvSelftestFile
}

func (s *selftestFileGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (s *selftestFileGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	path := pkg.SelftestPath()
	_, err := os.Stat(path)
	return &models.FilePresence{Path: path, Found: err == nil}, nil
}

type selftestRunGatherer struct{}

func (s *selftestRunGatherer) Key() data.EvidenceKey {
	return data.EvSelftestRun
}

func (s *selftestRunGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (s *selftestRunGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	opts := []execx.Option{
		execx.WithDir(pkg.Path),
		execx.WithTimeout(g.Options().SelftestTimeout),
	}
	if cfg := g.Options().AppConfigPath; cfg != "" {
		opts = append(opts, execx.WithEnv(AppConfigEnvVar+"="+cfg))
	}

	res, err := g.Runner().Run(ctx, "resilient-circuits",
		[]string{"selftest", "-l", pkg.HyphenName()}, opts...)
	if err != nil {
		return nil, err
	}

	return &models.SelftestOutcome{
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}, nil
}

func init() {
	gatherer.RegisterEvidenceGatherer(&selftestFileGatherer{})
	gatherer.RegisterEvidenceGatherer(&selftestRunGatherer{})
}
