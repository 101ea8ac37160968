package bare

import (
	"log"
	"net"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http/serve"
	"github.com/bare-web/bare/internal/protocol/http1"
	"github.com/bare-web/bare/internal/strutil"
	"github.com/bare-web/bare/router"
	"github.com/bare-web/bare/router/inbuilt"
	"github.com/bare-web/bare/transport"
)

// Logger receives every line the server logs. *log.Logger satisfies it.
type Logger = http1.Logger

// App binds the listeners and serves every accepted connection in its own goroutine.
type App struct {
	addrs      []string
	cfg        *config.Config
	logger     Logger
	hooks      hooks
	supervisor transport.Supervisor
}

// New returns a new App instance listening on the addr. Omitted host or port are
// replaced with 0.0.0.0 and 8080 respectively.
func New(addr string) *App {
	return &App{
		addrs:      []string{strutil.NormalizeAddress(addr)},
		cfg:        config.Default(),
		logger:     log.Default(),
		supervisor: transport.NewSupervisor(),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default logger, which is log.Default().
func (a *App) Logger(logger Logger) *App {
	a.logger = logger
	return a
}

// Listen adds one more address to listen on.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, strutil.NormalizeAddress(addr))
	return a
}

// NotifyOnStart calls the callback at the moment, when all the listeners are bound. They're
// already accepting new connections at that point.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are down. It's
// guaranteed, that at the moment as the callback is called, the server isn't able to accept
// any new connections and all the clients are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addrs returns the addresses the app is actually bound to. Useful when listening on the
// port 0. It's valid only after the start.
func (a *App) Addrs() []net.Addr {
	return a.supervisor.Addrs()
}

// Serve starts the application and blocks until it's stopped or a listener fails. If nil
// is passed instead of a router, an empty inbuilt one is used, responding 404 Not Found on
// every request.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = inbuilt.New().Build()
	}

	for _, addr := range a.addrs {
		err := a.supervisor.Add(addr, transport.NewTCP(), func(conn net.Conn) {
			serve.HTTP1(a.cfg, conn, r, a.logger)
		})
		if err != nil {
			return err
		}
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.supervisor.Run(a.cfg.NET)
	if err != nil {
		a.logger.Printf("accept: %s", err)
	}

	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting new connections and waits for the already accepted ones.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// may still be working
func (a *App) Stop() {
	a.supervisor.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
