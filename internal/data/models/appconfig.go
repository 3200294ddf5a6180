package models

// AppConfig is the configuration section parsed from a package's
// config.py. Malformed config.py content is recorded in ParseErr rather
// than failing the gather, so the result rule can report it as a finding.
type AppConfig struct {
	// Found reports whether config.py exists at all.
	Found bool

	// Section is the raw configuration section string. Empty means the
	// package declares no configuration, which is allowed but uncommon.
	Section string

	// ParseErr is non-nil when config.py exists but its section data
	// could not be parsed.
	ParseErr error
}

// ImportDefinition is the customization import definition parsed from
// export.res (preferred) or customize.py. A definition that could not be
// located or decoded is recorded in ParseErr.
type ImportDefinition struct {
	// Source is the file the definition was read from.
	Source string
	Raw    map[string]any

	ParseErr error
}
