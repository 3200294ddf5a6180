package checks

import (
	"context"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/junitxml"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

func TestTestsToxInstalledRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &TestsToxInstalledRule{}

	tests := []struct {
		name     string
		dist     *models.InstalledDist
		expected rules.Severity
	}{
		{"passes at supported version", &models.InstalledDist{Dist: "tox", Found: true, Version: semver.MustParse("3.24.1")}, rules.SeverityDebug},
		{"fails when not installed", &models.InstalledDist{Dist: "tox"}, rules.SeverityCritical},
		{"fails below minimum version", &models.InstalledDist{Dist: "tox", Found: true, Version: semver.MustParse("2.9.0")}, rules.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
				data.EvToxInstalled: tt.dist,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, issue.Severity)
		})
	}
}

func TestTestsToxEnvlistRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &TestsToxEnvlistRule{}

	tests := []struct {
		name     string
		cfg      *models.ToxConfig
		expected rules.Severity
	}{
		{"passes on py36 only", &models.ToxConfig{Found: true, EnvList: []string{"py36"}}, rules.SeverityDebug},
		{"fails on empty envlist", &models.ToxConfig{Found: true}, rules.SeverityCritical},
		{"fails on multiple environments", &models.ToxConfig{Found: true, EnvList: []string{"py36", "py39"}}, rules.SeverityCritical},
		{"fails on unsupported environment", &models.ToxConfig{Found: true, EnvList: []string{"py27"}}, rules.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
				data.EvToxConfig: tt.cfg,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, issue.Severity)
		})
	}
}

func TestTestsToxRunRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &TestsToxRunRule{}

	t.Run("passes on a clean report", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvToxRun: &models.ToxOutcome{Report: junitxml.Summary{Tests: 5, Skipped: 1}},
		}))
		require.NoError(t, err)
		assert.True(t, issue.Passed())
	})

	t.Run("fails on test failures with details", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvToxRun: &models.ToxOutcome{
				ExitCode: 1,
				Report: junitxml.Summary{
					Tests:          5,
					Failures:       1,
					FailureDetails: []string{"tests.test_app.test_broken: AssertionError"},
				},
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, rules.SeverityCritical, issue.Severity)
		assert.Contains(t, issue.Description, "tests.test_app.test_broken")
	})

	t.Run("fails when tox itself failed without a report", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvToxRun: &models.ToxOutcome{ExitCode: 1},
		}))
		require.NoError(t, err)
		assert.Equal(t, rules.SeverityCritical, issue.Severity)
	})
}
