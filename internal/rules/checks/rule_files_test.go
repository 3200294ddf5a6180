package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

func evCtx(values map[data.EvidenceKey]any) data.EvidenceContext {
	return data.NewMapEvidenceContext(values)
}

func TestFilesManifestRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &FilesManifestRule{}
	tmpl := &models.RenderedTemplate{Name: "MANIFEST.in", Raw: "include README.md\n\nrecursive-include my_app/util *\n"}

	t.Run("passes when all template lines are covered", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileManifest: &models.FileContent{Found: true,
				Raw: "include README.md\nrecursive-include my_app/util *\ninclude extra.txt\n"},
			data.EvTemplateManifest: tmpl,
		}))
		require.NoError(t, err)
		assert.True(t, issue.Passed())
	})

	t.Run("accepts close matches", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileManifest: &models.FileContent{Found: true,
				Raw: "include  README.md\nrecursive-include my_app/util *\n"},
			data.EvTemplateManifest: tmpl,
		}))
		require.NoError(t, err)
		assert.True(t, issue.Passed())
	})

	t.Run("warns and lists missing lines", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileManifest:     &models.FileContent{Found: true, Raw: "include README.md\n"},
			data.EvTemplateManifest: tmpl,
		}))
		require.NoError(t, err)
		assert.Equal(t, rules.SeverityWarn, issue.Severity)
		assert.Contains(t, issue.Description, "recursive-include my_app/util *")
	})

	t.Run("fails critically when the file is absent", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileManifest:     &models.FileContent{},
			data.EvTemplateManifest: tmpl,
		}))
		require.NoError(t, err)
		assert.Equal(t, rules.SeverityCritical, issue.Severity)
	})
}

func TestFilesTemplateMatchRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &FilesTemplateMatchRule{
		fileName:    "Dockerfile",
		fileKey:     data.EvFileDockerfile,
		templateKey: data.EvTemplateDockerfile,
	}
	tmpl := &models.RenderedTemplate{Name: "Dockerfile", Raw: "FROM base:latest\nUSER 1001\n"}

	t.Run("passes on identical content", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileDockerfile:     &models.FileContent{Found: true, Raw: tmpl.Raw},
			data.EvTemplateDockerfile: tmpl,
		}))
		require.NoError(t, err)
		assert.True(t, issue.Passed())
	})

	t.Run("warns with a diff on drift", func(t *testing.T) {
		issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
			data.EvFileDockerfile:     &models.FileContent{Found: true, Raw: "FROM base:latest\nUSER root\n"},
			data.EvTemplateDockerfile: tmpl,
		}))
		require.NoError(t, err)
		assert.Equal(t, rules.SeverityWarn, issue.Severity)
		assert.Contains(t, issue.Solution, "-USER 1001")
		assert.Contains(t, issue.Solution, "+USER root")
	})
}

func TestFilesConfigPyRule(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &FilesConfigPyRule{}

	tests := []struct {
		name     string
		cfg      *models.AppConfig
		expected rules.Severity
	}{
		{"passes with parsed section", &models.AppConfig{Found: true, Section: "[my_app]\nkey = value"}, rules.SeverityDebug},
		{"informs on empty section", &models.AppConfig{Found: true}, rules.SeverityInfo},
		{"fails on parse error", &models.AppConfig{Found: true, ParseErr: errors.New("bad section")}, rules.SeverityCritical},
		{"fails when config.py absent", &models.AppConfig{}, rules.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
				data.EvAppConfig: tt.cfg,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, issue.Severity)
			if tt.expected == rules.SeverityDebug {
				assert.Equal(t, tt.cfg.Section, issue.Solution)
			}
		})
	}
}

func TestFilesCustomizePyRuleTruncatesAtError(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &FilesCustomizePyRule{}

	issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
		data.EvImportDefinition: &models.ImportDefinition{
			ParseErr: errors.New("read definition: ERROR: export.res holds an invalid import definition"),
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, rules.SeverityCritical, issue.Severity)
	assert.Equal(t, "ERROR: export.res holds an invalid import definition", issue.Description)
}

func TestFilesReadmeRuleCascade(t *testing.T) {
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	rule := &FilesReadmeRule{}
	tmpl := &models.RenderedTemplate{Name: "README.md", Raw: "# my-app\n::CHANGE_ME::\n"}

	tests := []struct {
		name       string
		file       *models.FileContent
		shots      *models.ReadmeScreenshots
		expected   rules.Severity
		wantInDesc string
	}{
		{
			name:       "fails when identical to template",
			file:       &models.FileContent{Found: true, Raw: tmpl.Raw},
			shots:      &models.ReadmeScreenshots{},
			expected:   rules.SeverityCritical,
			wantInDesc: "identical to the generated template",
		},
		{
			name:       "fails on leftover placeholder",
			file:       &models.FileContent{Found: true, Raw: "# my-app\nOverview: ::CHANGE_ME::\n"},
			shots:      &models.ReadmeScreenshots{},
			expected:   rules.SeverityCritical,
			wantInDesc: "::CHANGE_ME::",
		},
		{
			name:       "warns on leftover TODO",
			file:       &models.FileContent{Found: true, Raw: "# my-app\nTODO describe the app\n"},
			shots:      &models.ReadmeScreenshots{},
			expected:   rules.SeverityWarn,
			wantInDesc: "TODO",
		},
		{
			name:       "fails on missing screenshots",
			file:       &models.FileContent{Found: true, Raw: "# my-app\nA real overview.\n"},
			shots:      &models.ReadmeScreenshots{Refs: []string{"doc/screenshots/main.png"}, Missing: []string{"doc/screenshots/main.png"}},
			expected:   rules.SeverityCritical,
			wantInDesc: "doc/screenshots/main.png",
		},
		{
			name:       "fails on malformed image reference",
			file:       &models.FileContent{Found: true, Raw: "# my-app\nA real overview.\n"},
			shots:      &models.ReadmeScreenshots{ParseErr: errors.New("image reference on line 3 has no link")},
			expected:   rules.SeverityCritical,
			wantInDesc: "no link",
		},
		{
			name:     "passes when filled in",
			file:     &models.FileContent{Found: true, Raw: "# my-app\nA real overview.\n"},
			shots:    &models.ReadmeScreenshots{Refs: []string{"doc/screenshots/main.png"}},
			expected: rules.SeverityDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, err := rule.Evaluate(context.Background(), pkg, evCtx(map[data.EvidenceKey]any{
				data.EvFileReadme:        tt.file,
				data.EvTemplateReadme:    tmpl,
				data.EvReadmeScreenshots: tt.shots,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, issue.Severity, "description: %s", issue.Description)
			if tt.wantInDesc != "" {
				assert.Contains(t, issue.Description, tt.wantInDesc)
			}
		})
	}
}
