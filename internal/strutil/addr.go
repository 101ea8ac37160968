package strutil

import "strings"

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = "8080"
)

// NormalizeAddress fills in the host and the port, when omitted. ":80" binds to all
// interfaces, while a bare host listens on the default port.
func NormalizeAddress(addr string) string {
	switch {
	case len(addr) == 0:
		return DefaultHost + ":" + DefaultPort
	case addr[0] == ':':
		return DefaultHost + addr
	case strings.LastIndexByte(addr, ':') == -1:
		return addr + ":" + DefaultPort
	}

	return addr
}
