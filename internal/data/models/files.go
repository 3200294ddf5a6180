package models

import "strings"

// FileContent records the one-shot read of a package file.
type FileContent struct {
	Path  string
	Found bool
	Raw   string
}

// Lines splits the content into lines without trailing newlines.
func (f *FileContent) Lines() []string {
	if f == nil || f.Raw == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(f.Raw, "\n"), "\n")
}

// ReadmeScreenshots lists the local screenshot references of a README and
// which of them do not resolve to a readable file under the package root.
// A malformed image reference is recorded in ParseErr.
type ReadmeScreenshots struct {
	Refs    []string
	Missing []string

	ParseErr error
}

// RenderedTemplate is a package template rendered with the package's name
// and version, used as a comparison baseline.
type RenderedTemplate struct {
	Name string
	Raw  string
}

func (t *RenderedTemplate) Lines() []string {
	if t == nil || t.Raw == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(t.Raw, "\n"), "\n")
}
