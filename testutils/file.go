package testutils

import (
	"image"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/objseg/rimage"
)

// WriteImage saves img under a fresh temporary directory and returns its path. The file
// format follows the extension of name.
func WriteImage(t testing.TB, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, rimage.WriteImageToFile(path, img), test.ShouldBeNil)
	return path
}
