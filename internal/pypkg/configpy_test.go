package pypkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig(t *testing.T) {
	cfg, err := ParseAppConfig(`
def config_section_data():
    config_data = u"""[my_app]
api_url = https://example.com
# retries to attempt
retries = 3
"""
    return config_data
`)
	require.NoError(t, err)
	assert.Contains(t, cfg.Section, "[my_app]")
	assert.Contains(t, cfg.Section, "api_url")
}

func TestParseAppConfigEmptySection(t *testing.T) {
	cfg, err := ParseAppConfig(`
def config_section_data():
    return None
`)
	require.NoError(t, err)
	assert.Empty(t, cfg.Section)
}

func TestParseAppConfigMalformed(t *testing.T) {
	// No config_section_data at all.
	_, err := ParseAppConfig(`def something_else(): pass`)
	assert.ErrorIs(t, err, ErrMalformed)

	// Section data that is not valid config syntax.
	_, err = ParseAppConfig(`
def config_section_data():
    return u"""[unterminated
not = a = valid = line =
"""
`)
	assert.ErrorIs(t, err, ErrMalformed)
}
