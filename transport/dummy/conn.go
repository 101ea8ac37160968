package dummy

import (
	"io"
	"net"
	"time"
)

// Conn is a net.Conn that never has anything to read and collects everything written.
type Conn struct {
	Data []byte
	nop  bool
}

func (c *Conn) Read([]byte) (n int, err error) {
	return 0, io.EOF
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Nop disables collecting written data.
func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}
