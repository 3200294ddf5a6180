package pypkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSetupPy = `
from setuptools import setup, find_packages

setup(
    name="my_app",
    display_name="My App",
    version="1.0.0",
    license="MIT",
    author="Jane Developer",
    author_email="jane@example.com",
    description="Does useful things",
    long_description="""My App connects things
to other things.""",
    url="https://example.com/my_app",
    python_requires='>=3.6',
    install_requires=[
        'resilient_circuits>=43.0.0',
        "requests >= 2.0",
    ],
    entry_points={
        "resilient.circuits.customize": ["customize = my_app.util.customize:customization_data"],
        "resilient.circuits.selftest": ["selftest = my_app.util.selftest:selftest_function"],
    },
)
`

func TestParseSetupPySourceScalars(t *testing.T) {
	meta := ParseSetupPySource(sampleSetupPy)

	for attr, want := range map[string]string{
		"name":            "my_app",
		"display_name":    "My App",
		"version":         "1.0.0",
		"license":         "MIT",
		"author":          "Jane Developer",
		"author_email":    "jane@example.com",
		"url":             "https://example.com/my_app",
		"python_requires": ">=3.6",
	} {
		got, ok := meta.Attr(attr)
		require.True(t, ok, "attribute %s", attr)
		assert.Equal(t, want, got, "attribute %s", attr)
	}

	long, ok := meta.Attr("long_description")
	require.True(t, ok)
	assert.Contains(t, long, "connects things")
}

func TestParseSetupPySourceInstallRequires(t *testing.T) {
	meta := ParseSetupPySource(sampleSetupPy)

	reqs, ok := meta.List("install_requires")
	require.True(t, ok)
	assert.Equal(t, []string{"resilient_circuits>=43.0.0", "requests >= 2.0"}, reqs)
}

func TestParseSetupPySourceEntryPoints(t *testing.T) {
	meta := ParseSetupPySource(sampleSetupPy)

	ep, ok := meta.Attr("entry_points")
	require.True(t, ok)
	assert.Contains(t, ep, "resilient.circuits.customize")
	assert.Contains(t, ep, "resilient.circuits.selftest")
}

func TestParseSetupPySourceMissingAttrs(t *testing.T) {
	meta := ParseSetupPySource(`setup(name="bare_app")`)

	_, ok := meta.Attr("author")
	assert.False(t, ok)
	_, ok = meta.Attr("version")
	assert.False(t, ok)

	// Empty values count as missing.
	meta = ParseSetupPySource(`setup(
    name="bare_app",
    author="",
)`)
	_, ok = meta.Attr("author")
	assert.False(t, ok)
}
