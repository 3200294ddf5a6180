package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderManifest(t *testing.T) {
	out, err := Render(Manifest, Vars{PackageName: "my_app"})
	require.NoError(t, err)
	assert.Contains(t, out, "recursive-include my_app/util *")
	assert.Contains(t, out, "include apikey_permissions.txt")
}

func TestRenderReadme(t *testing.T) {
	out, err := Render(Readme, Vars{PackageName: "my_app"})
	require.NoError(t, err)
	assert.Contains(t, out, "# my-app")
	assert.Contains(t, out, "::CHANGE_ME::")
}

func TestRenderUnknownName(t *testing.T) {
	_, err := Render("nope.txt", Vars{PackageName: "my_app"})
	assert.Error(t, err)
}
