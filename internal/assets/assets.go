// Package assets embeds the client runtime that composed pages load.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed js/*.js
var files embed.FS

// Dir is the site folder the runtime is published under.
const Dir = "js"

// FS returns the embedded runtime rooted above Dir, e.g. "js/components.js".
func FS() fs.FS { return files }

// Names lists the embedded file paths relative to the site root.
func Names() []string {
	entries, err := fs.ReadDir(files, Dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, Dir+"/"+e.Name())
	}
	return out
}
