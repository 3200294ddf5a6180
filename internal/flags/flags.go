package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that need to reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Targeting
	FlagPaths     = "path"
	FlagAppConfig = "app-config"
	FlagDryRun    = "dry-run"

	// Rules
	FlagRules = "rules"
	FlagSet   = "set"

	// Output
	FlagConsoleFormat         = "console-format"
	FlagConsoleFilterSeverity = "console-filter-severity"
	FlagReport                = "report"
	FlagOut                   = "out"
	FlagOutFormat             = "out-format"
	FlagEmit                  = "emit"
	FlagNoConsole             = "no-console"

	// Runtime
	FlagConcurrency     = "concurrency"
	FlagTimeout         = "timeout"
	FlagSelftestTimeout = "selftest-timeout"
	FlagToxTimeout      = "tox-timeout"
	FlagPython          = "python"
	FlagVerbose         = "verbose"
)
