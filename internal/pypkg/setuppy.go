package pypkg

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"pkgmedic/internal/data/models"
)

// Scalar attributes read from setup.py. Order matters only for tests.
var scalarAttrs = []string{
	"name",
	"display_name",
	"version",
	"license",
	"author",
	"author_email",
	"description",
	"long_description",
	"url",
	"python_requires",
}

var listAttrs = []string{
	"install_requires",
}

var quotedString = regexp.MustCompile(`(?s)"""(.*?)"""|'''(.*?)'''|"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'`)

// ParseSetupPy statically extracts the keyword attributes of the setup()
// call. The file is never executed; attributes assigned from variables or
// expressions come back empty and surface as missing.
func ParseSetupPy(path string) (*models.SetupMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read setup.py: %w", err)
	}
	return ParseSetupPySource(string(raw)), nil
}

// ParseSetupPySource parses setup.py source text already in memory.
func ParseSetupPySource(src string) *models.SetupMetadata {
	meta := &models.SetupMetadata{
		Attrs: make(map[string]string),
		Lists: make(map[string][]string),
	}

	for _, attr := range scalarAttrs {
		if v, ok := extractScalar(src, attr); ok {
			meta.Attrs[attr] = v
		}
	}
	for _, attr := range listAttrs {
		if vs, ok := extractList(src, attr); ok {
			meta.Lists[attr] = vs
		}
	}
	if raw, ok := extractBraced(src, "entry_points"); ok {
		meta.Attrs["entry_points"] = raw
	}

	return meta
}

func extractScalar(src, attr string) (string, bool) {
	re := regexp.MustCompile(`(?ms)^\s*` + regexp.QuoteMeta(attr) + `\s*=\s*("""(?:.*?)"""|'''(?:.*?)'''|"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')`)
	m := re.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(unquote(m[1])), true
}

func extractList(src, attr string) ([]string, bool) {
	re := regexp.MustCompile(`(?ms)^\s*` + regexp.QuoteMeta(attr) + `\s*=\s*\[(.*?)\]`)
	m := re.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	var out []string
	for _, q := range quotedString.FindAllStringSubmatch(m[1], -1) {
		for _, g := range q[1:] {
			if g != "" {
				out = append(out, g)
			}
		}
	}
	return out, true
}

// extractBraced captures the balanced-brace value of a dict attribute,
// returned raw. Good enough for presence checks and key scans.
func extractBraced(src, attr string) (string, bool) {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(attr) + `\s*=\s*\{`)
	loc := re.FindStringIndex(src)
	if loc == nil {
		return "", false
	}
	depth := 0
	start := strings.Index(src[loc[0]:loc[1]], "{") + loc[0]
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[start : i+1], true
			}
		}
	}
	return "", false
}

func unquote(s string) string {
	switch {
	case strings.HasPrefix(s, `"""`) && strings.HasSuffix(s, `"""`) && len(s) >= 6:
		return s[3 : len(s)-3]
	case strings.HasPrefix(s, `'''`) && strings.HasSuffix(s, `'''`) && len(s) >= 6:
		return s[3 : len(s)-3]
	case len(s) >= 2:
		return s[1 : len(s)-1]
	}
	return s
}
