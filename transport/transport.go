package transport

import (
	"net"

	"github.com/bare-web/bare/config"
)

// Transport is a source of connections. It's bound once, then listens until stopped,
// passing every accepted connection to the callback.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Addr() net.Addr
	Stop()
	Close()
	Wait()
}
