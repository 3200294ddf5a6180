package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/junitxml"
	"pkgmedic/internal/pypkg"
)

type toxConfigGatherer struct{}

func (t *toxConfigGatherer) Key() data.EvidenceKey {
	return data.EvToxConfig
}

func (t *toxConfigGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (t *toxConfigGatherer) Gather(_ context.Context, pkg *pypkg.Package, _ *gatherer.Gatherer) (any, error) {
	path := pkg.ToxIniPath()
	cfg := &models.ToxConfig{Path: path}

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	cfg.Found = true

	file, err := ini.Load(path)
	if err != nil {
		// Unreadable tox.ini still counts as present; the envlist check
		// reports it as empty.
		return cfg, nil
	}

	if sec, serr := file.GetSection("tox"); serr == nil {
		raw := sec.Key("envlist").String()
		for _, env := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
			if env = strings.TrimSpace(env); env != "" {
				cfg.EnvList = append(cfg.EnvList, env)
			}
		}
	}
	return cfg, nil
}

type toxRunGatherer struct{}

func (t *toxRunGatherer) Key() data.EvidenceKey {
	return data.EvToxRun
}

func (t *toxRunGatherer) Scope() data.GatherScope {
	return data.ScopePackage
}

func (t *toxRunGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *gatherer.Gatherer) (any, error) {
	reportDir, err := os.MkdirTemp("", "pkgmedic-tox-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(reportDir)
	reportPath := filepath.Join(reportDir, "report.xml")

	res, err := g.Runner().Run(ctx, "tox",
		[]string{"--", "--junitxml", reportPath},
		execx.WithDir(pkg.Path),
		execx.WithTimeout(g.Options().ToxTimeout))
	if err != nil {
		return nil, err
	}

	outcome := &models.ToxOutcome{ExitCode: res.ExitCode}
	if sum, perr := junitxml.ParseReport(reportPath); perr == nil {
		outcome.Report = sum
	} else if res.ExitCode != 0 {
		// No report to explain the failure; fall back to process output.
		outcome.Report.FailureDetails = append(outcome.Report.FailureDetails, tail(res.Stdout+res.Stderr, 20))
	}
	return outcome, nil
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func init() {
	gatherer.RegisterEvidenceGatherer(&toxConfigGatherer{})
	gatherer.RegisterEvidenceGatherer(&toxRunGatherer{})
}
