package staticfiles

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed css/* js/*
var assets embed.FS

// Assets returns the stylesheets and scripts. With dir set the files are read
// from disk so edits show up without a rebuild.
func Assets(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return assets
}
