package serve

import (
	"net"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/internal/protocol/http1"
	"github.com/bare-web/bare/router"
	"github.com/bare-web/bare/transport"
)

// HTTP1 serves the only request of the connection. Note, that the connection isn't
// automatically closed.
func HTTP1(cfg *config.Config, conn net.Conn, r router.Router, logger http1.Logger) {
	client := transport.NewClient(conn, cfg.NET.ReadTimeout, make([]byte, cfg.NET.ReadBufferSize))
	suit := http1.Initialize(cfg, r, client, logger)
	logger.Printf("%s: accepted %s", suit.Request().ID, conn.RemoteAddr())
	suit.Serve()
}
