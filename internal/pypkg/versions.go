package pypkg

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// RuntimeDist is the framework distribution every app package runs on.
	RuntimeDist = "resilient-circuits"

	// MinRuntimeVersion is the lowest framework version the setup.py
	// install_requires entry must allow.
	MinRuntimeVersion = "43.0.0"

	// MinSupportedPython is the lowest Python the python_requires
	// attribute must require.
	MinSupportedPython = "3.6"

	// ToxDist is the test-runner distribution.
	ToxDist = "tox"

	// MinToxVersion is the lowest supported test-runner version.
	MinToxVersion = "3.0.0"
)

// SupportedEntryPoints are the entry points a generated package declares.
var SupportedEntryPoints = []string{
	"resilient.circuits.customize",
	"resilient.circuits.configsection",
	"resilient.circuits.selftest",
}

// RequiredPythonVersion parses a python_requires specifier. Only the
// inclusive lower-bound form ">=X.Y" is accepted; anything else is
// malformed input.
func RequiredPythonVersion(spec string) (*semver.Version, error) {
	s := strings.TrimSpace(spec)
	if !strings.HasPrefix(s, ">=") {
		return nil, fmt.Errorf("python_requires %q: only >= specifiers are supported: %w", spec, ErrMalformed)
	}
	v, err := semver.NewVersion(strings.TrimSpace(strings.TrimPrefix(s, ">=")))
	if err != nil {
		return nil, fmt.Errorf("python_requires %q: %v: %w", spec, err, ErrMalformed)
	}
	return v, nil
}

// DependencyNamed finds the install_requires entry for the given
// distribution. Names compare case-insensitively with hyphens and
// underscores treated as equivalent. The returned value is the full
// requirement string including any specifier.
func DependencyNamed(requires []string, dist string) (string, bool) {
	want := normalizeDistName(dist)
	for _, req := range requires {
		if normalizeDistName(requirementName(req)) == want {
			return req, true
		}
	}
	return "", false
}

func normalizeDistName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// RequirementVersionFloor extracts the version from a ">=" or "=="
// specifier in a requirement string, if one is present.
func RequirementVersionFloor(req string) (*semver.Version, bool) {
	for _, op := range []string{">=", "=="} {
		if i := strings.Index(req, op); i >= 0 {
			rest := req[i+len(op):]
			if j := strings.IndexAny(rest, ",;"); j >= 0 {
				rest = rest[:j]
			}
			v, err := semver.NewVersion(strings.TrimSpace(rest))
			if err == nil {
				return v, true
			}
		}
	}
	return nil, false
}

func requirementName(req string) string {
	s := strings.TrimSpace(req)
	if i := strings.IndexAny(s, " ;<>=!~["); i >= 0 {
		s = s[:i]
	}
	return s
}
