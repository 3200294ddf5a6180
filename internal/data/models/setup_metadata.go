package models

// SetupMetadata holds the attributes statically parsed out of a package's
// setup.py. Scalar attributes keep their literal string value; list-valued
// attributes are exposed through Lists.
type SetupMetadata struct {
	// Attrs maps attribute name to its string value for scalar attributes
	// (name, display_name, license, author, ...).
	Attrs map[string]string

	// Lists maps attribute name to its elements for list-valued attributes
	// (install_requires, entry_points).
	Lists map[string][]string
}

// Attr returns the scalar value of a setup.py attribute. The second return
// is false when the attribute is absent or has an empty value.
func (m *SetupMetadata) Attr(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.Attrs[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// List returns the elements of a list-valued setup.py attribute. The second
// return is false when the attribute is absent or empty.
func (m *SetupMetadata) List(name string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.Lists[name]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

// Version returns the parsed package version, or "" when absent.
func (m *SetupMetadata) Version() string {
	v, _ := m.Attr("version")
	return v
}
