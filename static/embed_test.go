package staticfiles

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_Embedded(t *testing.T) {
	for _, name := range []string{"css/app.css", "css/site.css", "js/app.js", "js/site.js"} {
		_, err := fs.Stat(Assets(""), name)
		assert.NoError(t, err, name)
	}
}

func TestAssets_FromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("// local"), 0o644))

	b, err := fs.ReadFile(Assets(dir), "js/app.js")
	require.NoError(t, err)
	assert.Equal(t, "// local", string(b))
}
