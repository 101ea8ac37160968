//go:build !unix

package static

import "io/fs"

// identity has no inode to rely on, so the canonical path stands in for it.
func identity(path string, _ fs.FileInfo) uint64 {
	return pathHash(path)
}
