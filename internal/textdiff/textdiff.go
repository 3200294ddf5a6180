// Package textdiff compares file contents against their canonical
// generated form.
package textdiff

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// CloseMatchCutoff is the minimum similarity for a line to count as a
// fuzzy match of a canonical line.
const CloseMatchCutoff = 0.90

// Ratio reports the similarity of two line sequences in [0, 1].
func Ratio(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

// HasCloseMatch reports whether any candidate line is at least
// CloseMatchCutoff similar to the target, comparing character by
// character.
func HasCloseMatch(target string, candidates []string) bool {
	want := strings.Split(target, "")
	for _, cand := range candidates {
		if difflib.NewMatcher(want, strings.Split(cand, "")).Ratio() >= CloseMatchCutoff {
			return true
		}
	}
	return false
}

// Unified renders a minimal unified diff (no context lines) between the
// canonical content and the package's content.
func Unified(fromName, toName string, from, to []string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(from),
		B:        terminated(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  0,
	})
}

// Colorize highlights added and removed lines of a unified diff for
// terminal display.
func Colorize(diff string) string {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.FgCyan)

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = header.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		out[i] = line
	}
	return out
}
