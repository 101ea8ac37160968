package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/internal/timer"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and serves each one in its own goroutine. Connections are closed
// as soon as the callback returns.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)
	return err
}

// Addr returns the address the transport is actually bound to. Handy when bound to
// port 0.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(timer.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() {
				// the listener was closed on purpose
				return nil
			}

			return err
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()
			cb(conn)
			_ = conn.Close()
		}(conn)
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}

func (t *TCP) Wait() {
	t.wg.Wait()
}
