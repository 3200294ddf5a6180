package pypkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Package is a reference to an app package under validation.
type Package struct {
	// Name is the importable package name (underscore form).
	Name string

	// Path is the absolute path to the package root (the directory
	// containing setup.py).
	Path string
}

// HyphenName returns the distribution name (hyphen form) used on the
// command line and in the Python environment.
func (p *Package) HyphenName() string {
	return strings.ReplaceAll(p.Name, "_", "-")
}

func (p *Package) SetupPyPath() string {
	return filepath.Join(p.Path, "setup.py")
}

func (p *Package) FilePath(name string) string {
	return filepath.Join(p.Path, name)
}

// Paths below follow the generated package layout:
// <root>/<name>/util/{selftest.py,config.py,customize.py,data/export.res}

func (p *Package) SelftestPath() string {
	return filepath.Join(p.Path, p.Name, "util", "selftest.py")
}

func (p *Package) ConfigPyPath() string {
	return filepath.Join(p.Path, p.Name, "util", "config.py")
}

func (p *Package) CustomizePyPath() string {
	return filepath.Join(p.Path, p.Name, "util", "customize.py")
}

func (p *Package) ExportResPath() string {
	return filepath.Join(p.Path, p.Name, "util", "data", "export.res")
}

func (p *Package) ToxIniPath() string {
	return filepath.Join(p.Path, "tox.ini")
}

// Load resolves a package root directory into a Package reference.
// The directory must contain a setup.py; the package name is taken from
// the setup.py name attribute when present, else from the directory name.
func Load(path string) (*Package, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve package path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("package path %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("package path %q is not a directory", path)
	}

	setupPath := filepath.Join(abs, "setup.py")
	if _, err := os.Stat(setupPath); err != nil {
		return nil, fmt.Errorf("package path %q does not contain a setup.py: %w", path, err)
	}

	name := filepath.Base(abs)
	if meta, err := ParseSetupPy(setupPath); err == nil {
		if n, ok := meta.Attr("name"); ok {
			name = n
		}
	}

	return &Package{
		Name: strings.ReplaceAll(name, "-", "_"),
		Path: abs,
	}, nil
}
