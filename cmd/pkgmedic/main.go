package main

import (
	"pkgmedic/internal/cli"
	_ "pkgmedic/internal/gatherer/providers"
	_ "pkgmedic/internal/rules/checks"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
