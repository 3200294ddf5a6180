package models

import "pkgmedic/internal/junitxml"

// ToxConfig records the presence of a package's tox.ini and its parsed
// envlist entries.
type ToxConfig struct {
	Path    string
	Found   bool
	EnvList []string
}

// ToxOutcome is the result of running a package's tox tests: the process
// exit code plus the parsed JUnit XML report.
type ToxOutcome struct {
	ExitCode int
	Report   junitxml.Summary
}
