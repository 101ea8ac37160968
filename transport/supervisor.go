package transport

import (
	"net"
	"sync"

	"github.com/bare-web/bare/config"
)

// Supervisor runs multiple transports at once and brings them all down as soon as either
// one of them fails or Stop is called.
type Supervisor struct {
	ts       []boundTransport
	stopch   chan struct{}
	stopOnce *sync.Once
}

func NewSupervisor() Supervisor {
	return Supervisor{
		stopch:   make(chan struct{}),
		stopOnce: new(sync.Once),
	}
}

// Add binds the transport and registers it. If binding fails, all the already bound
// transports are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	if err := transport.Bind(addr); err != nil {
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		cb: cb,
		t:  transport,
	})

	return nil
}

// Addrs returns addresses of all the bound transports in order of their addition.
func (s *Supervisor) Addrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.ts))
	for _, t := range s.ts {
		addrs = append(addrs, t.t.Addr())
	}

	return addrs
}

// Run blocks until either a transport fails or Stop is called. In both cases, every
// transport is stopped, in-flight connections are waited for and listeners are closed.
func (s *Supervisor) Run(cfg config.NET) error {
	if len(s.ts) == 0 {
		return nil
	}

	errch := make(chan error, len(s.ts))

	for _, t := range s.ts {
		go func(t boundTransport) {
			errch <- t.t.Listen(cfg, t.cb)
		}(t)
	}

	var err error

	select {
	case err = <-errch:
		s.stop()
		drain(errch, len(s.ts)-1)
	case <-s.stopch:
		s.stop()
		drain(errch, len(s.ts))
	}

	// every Listen has returned by now, so no connection can be added while waiting
	s.wait()

	return err
}

// Stop makes Run return. The call doesn't wait for it, nor does it block if Run has
// already returned.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopch)
	})
}

func (s *Supervisor) stop() {
	for _, t := range s.ts {
		t.t.Stop()
	}

	// closing listeners interrupts pending Accept calls immediately instead of waiting
	// for the accept loop interrupt period.
	s.close()
}

func (s *Supervisor) wait() {
	for _, t := range s.ts {
		t.t.Wait()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

type boundTransport struct {
	cb func(conn net.Conn)
	t  Transport
}

func drain(ch <-chan error, n int) {
	for range n {
		<-ch
	}
}
