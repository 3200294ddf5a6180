// Package templates renders the canonical generated-package files that
// validation compares real packages against.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed package_template/*.tmpl
var files embed.FS

// Names of the renderable templates.
const (
	Manifest   = "MANIFEST.in"
	Dockerfile = "Dockerfile"
	Entrypoint = "entrypoint.sh"
	Readme     = "README.md"
)

// Vars parameterize a rendered template for a specific package.
type Vars struct {
	PackageName    string
	HyphenName     string
	Version        string
	RuntimeVersion string
}

// Render produces the canonical content of the named file for the given
// package. The name must be one of the exported template names.
func Render(name string, vars Vars) (string, error) {
	raw, err := files.ReadFile("package_template/" + name + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("unknown template %q: %w", name, err)
	}

	if vars.HyphenName == "" {
		vars.HyphenName = strings.ReplaceAll(vars.PackageName, "_", "-")
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return sb.String(), nil
}
