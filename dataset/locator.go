package dataset

import "path/filepath"

// AssetPath composes the on-disk location of one raw asset. Pure path
// arithmetic; whether anything exists there surfaces when the caller
// opens it.
func AssetPath(trackDir, subdir, timestamp, ext string) string {
	return filepath.Join(trackDir, subdir, timestamp+"."+ext)
}
