package dummy

import (
	"io"
	"net"

	"github.com/bare-web/bare/transport"
)

var _ transport.Client = new(Client)

// Client hands out the pieces it was initialised with one per read and tracks all the
// written data. After the last piece is consumed, reads fail with io.EOF, unless the
// client is set to loop.
type Client struct {
	closed  bool
	loop    bool
	pointer int
	pending []byte
	written []byte
	data    [][]byte
	conn    net.Conn
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if len(c.pending) > 0 {
		data, c.pending = c.pending, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.pending = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

// Conn returns the connection set via WithConn, or a nop one, which has nothing to read.
func (c *Client) Conn() net.Conn {
	if c.conn != nil {
		return c.conn
	}

	return new(Conn).Nop()
}

// WithConn replaces the connection returned by Conn. Reads and writes of the client
// itself are unaffected.
func (c *Client) WithConn(conn net.Conn) *Client {
	c.conn = conn
	return c
}

func (c *Client) Remote() net.Addr {
	return c.Conn().RemoteAddr()
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Closed tells whether the client was closed.
func (c *Client) Closed() bool {
	return c.closed
}

// Loop makes the client start over after the last piece instead of failing with io.EOF.
func (c *Client) Loop() *Client {
	c.loop = true
	return c
}

func (c *Client) Written() string {
	return string(c.written)
}
