package pypkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenshotPaths(t *testing.T) {
	paths, err := ScreenshotPaths(`# My App

![screenshot](./doc/screenshots/main.png)

Some text with a remote image ![badge](https://img.example.com/badge.svg).

<img src="doc/screenshots/detail.png" width="500">
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"./doc/screenshots/main.png", "doc/screenshots/detail.png"}, paths)
}

func TestScreenshotPathsNone(t *testing.T) {
	paths, err := ScreenshotPaths("# My App\n\nNo images here.\n")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScreenshotPathsMalformedLink(t *testing.T) {
	_, err := ScreenshotPaths("line one\n![screenshot] with no link\n")
	assert.ErrorIs(t, err, ErrMalformed)
}
