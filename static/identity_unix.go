//go:build unix

package static

import (
	"io/fs"
	"syscall"
)

// identity returns the inode number of the file.
func identity(path string, info fs.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Ino)
	}

	return pathHash(path)
}
