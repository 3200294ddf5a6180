package data

const (
	// EvSetupMetadata represents the parsed setup.py metadata of the package.
	EvSetupMetadata EvidenceKey = "pkg.setup_metadata"

	// EvRuntimeInstalled represents the installed version of the
	// resilient-circuits runtime library in the Python environment.
	EvRuntimeInstalled EvidenceKey = "env.runtime_installed"

	// EvPackageInstalled represents whether the package under validation is
	// itself installed in the Python environment.
	EvPackageInstalled EvidenceKey = "env.package_installed"

	// EvSelftestFile represents the presence and readability of the
	// package's selftest entry file.
	EvSelftestFile EvidenceKey = "pkg.selftest_file"

	// EvSelftestRun represents the raw outcome (exit code, output) of
	// running the package's selftest out of process.
	EvSelftestRun EvidenceKey = "selftest.run"

	// Package file contents. One key per contract file so rules can declare
	// exactly what they read.
	EvFileManifest    EvidenceKey = "pkg.file.manifest"
	EvFilePermissions EvidenceKey = "pkg.file.apikey_permissions"
	EvFileDockerfile  EvidenceKey = "pkg.file.dockerfile"
	EvFileEntrypoint  EvidenceKey = "pkg.file.entrypoint"
	EvFileReadme      EvidenceKey = "pkg.file.readme"

	// Rendered package templates, substituted with the package name and
	// version, used as comparison baselines.
	EvTemplateManifest   EvidenceKey = "template.manifest"
	EvTemplateDockerfile EvidenceKey = "template.dockerfile"
	EvTemplateEntrypoint EvidenceKey = "template.entrypoint"
	EvTemplateReadme     EvidenceKey = "template.readme"

	// EvReadmeScreenshots represents the screenshot references of the
	// package's README and whether each resolves to a readable file.
	EvReadmeScreenshots EvidenceKey = "pkg.readme_screenshots"

	// EvAppConfig represents the configuration section string parsed out of
	// the package's config.py.
	EvAppConfig EvidenceKey = "pkg.app_config"

	// EvImportDefinition represents the import definition parsed from
	// export.res or customize.py.
	EvImportDefinition EvidenceKey = "pkg.import_definition"

	// EvToxInstalled represents the installed version of the tox test
	// runner in the Python environment.
	EvToxInstalled EvidenceKey = "env.tox_installed"

	// EvToxConfig represents the presence and parsed envlist of the
	// package's tox.ini.
	EvToxConfig EvidenceKey = "pkg.tox_config"

	// EvToxRun represents the outcome of running the package's tox tests,
	// including the parsed JUnit XML report.
	EvToxRun EvidenceKey = "tox.run"
)

// Priority returns the gather priority for an evidence key (lower is
// gathered first). Cheap parses and file reads come before subprocess runs.
func Priority(key EvidenceKey) int {
	switch key {
	case EvSetupMetadata:
		return 0
	case EvSelftestRun, EvToxRun:
		return 2 // subprocess runs last
	default:
		return 1
	}
}
