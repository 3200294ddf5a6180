// Package pyenv inspects the active Python environment.
package pyenv

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"pkgmedic/internal/execx"
)

// Inspector reports on distributions installed in the Python
// environment the given interpreter belongs to.
type Inspector struct {
	runner execx.Runner
	python string
}

// NewInspector returns an Inspector using the given interpreter
// executable, defaulting to "python" when empty.
func NewInspector(runner execx.Runner, python string) *Inspector {
	if python == "" {
		python = "python"
	}
	return &Inspector{runner: runner, python: python}
}

// Python returns the interpreter executable in use.
func (i *Inspector) Python() string {
	return i.python
}

// InstalledVersion reports the installed version of a distribution, or
// (nil, nil) when the distribution is not installed. An error means the
// environment could not be inspected at all.
func (i *Inspector) InstalledVersion(ctx context.Context, dist string) (*semver.Version, error) {
	res, err := i.runner.Run(ctx, i.python, []string{"-m", "pip", "show", dist})
	if err != nil {
		return nil, fmt.Errorf("inspect environment for %s: %w", dist, err)
	}
	if res.ExitCode != 0 {
		return nil, nil
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if raw, ok := strings.CutPrefix(line, "Version:"); ok {
			v, perr := semver.NewVersion(strings.TrimSpace(raw))
			if perr != nil {
				return nil, fmt.Errorf("parse version of %s: %w", dist, perr)
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("no version reported for installed distribution %s", dist)
}
