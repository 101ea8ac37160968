package static

import "hash/fnv"

// pathHash is a stable surrogate of the file identity for platforms having no inodes.
func pathHash(path string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))

	return h.Sum64()
}
