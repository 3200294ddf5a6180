package models

import "github.com/Masterminds/semver/v3"

// InstalledDist records whether a distribution is installed in the Python
// environment and, when installed, at which version.
type InstalledDist struct {
	Dist    string
	Found   bool
	Version *semver.Version
}

// FilePresence records whether a file exists and is readable.
type FilePresence struct {
	Path  string
	Found bool
}
