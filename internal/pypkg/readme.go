package pypkg

import (
	"fmt"
	"regexp"
	"strings"
)

// DocgenPlaceholder marks generated README sections the author is
// expected to fill in.
const DocgenPlaceholder = "::CHANGE_ME::"

var (
	markdownImage = regexp.MustCompile(`!\[[^\]]*\]\(([^)]*)\)`)
	htmlImage     = regexp.MustCompile(`(?i)<img[^>]*\bsrc\s*=\s*["']([^"']*)["']`)
	bareImageRef  = regexp.MustCompile(`!\[[^\]]*\]\s*(?:[^(\s]|$)`)
)

// ScreenshotPaths returns the local image paths referenced by a README.
// Remote http(s) references are skipped. A markdown image reference with
// no link target is malformed input.
func ScreenshotPaths(readme string) ([]string, error) {
	if loc := bareImageRef.FindStringIndex(readme); loc != nil {
		line := 1 + strings.Count(readme[:loc[0]], "\n")
		return nil, fmt.Errorf("README image reference on line %d has no link: %w", line, ErrMalformed)
	}

	var paths []string
	for _, m := range markdownImage.FindAllStringSubmatch(readme, -1) {
		if p := strings.TrimSpace(m[1]); isLocalPath(p) {
			paths = append(paths, p)
		}
	}
	for _, m := range htmlImage.FindAllStringSubmatch(readme, -1) {
		if p := strings.TrimSpace(m[1]); isLocalPath(p) {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func isLocalPath(p string) bool {
	if p == "" {
		return false
	}
	lower := strings.ToLower(p)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}
