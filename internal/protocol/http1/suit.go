package http1

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/dchest/uniuri"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/decode"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/buffer"
	"github.com/bare-web/bare/router"
	"github.com/bare-web/bare/transport"
)

// IDLength is the length of random connection identifiers prefixing log lines.
const IDLength = 8

type Logger interface {
	Printf(format string, v ...any)
}

// Suit drives a single connection through its only request: reading and parsing the head,
// reading and decoding the body, routing and writing the response.
type Suit struct {
	*Parser
	*Body
	*Serializer
	cfg     *config.Config
	router  router.Router
	client  transport.Client
	request *http.Request
	logger  Logger
}

func New(
	cfg *config.Config,
	r router.Router,
	client transport.Client,
	request *http.Request,
	logger Logger,
	head *buffer.Buffer,
	respBuff []byte,
) *Suit {
	return &Suit{
		Parser:     NewParser(cfg, request, head),
		Body:       NewBody(client, cfg.Body),
		Serializer: NewSerializer(cfg, client, respBuff),
		cfg:        cfg,
		router:     r,
		client:     client,
		request:    request,
		logger:     logger,
	}
}

// Initialize is the same constructor as just New, but allocates everything by itself.
func Initialize(cfg *config.Config, r router.Router, client transport.Client, logger Logger) *Suit {
	request := http.NewRequest(cfg, http.NewResponse(), client.Remote())
	request.ID = uniuri.NewLen(IDLength)
	head := buffer.New(cfg.NET.ReadBufferSize, cfg.Headers.MaxSize)
	respBuff := make([]byte, 0, cfg.NET.ReadBufferSize)

	return New(cfg, r, client, request, logger, head, respBuff)
}

// Request returns the request the suit fills.
func (s *Suit) Request() *http.Request {
	return s.request
}

// Serve processes the request and returns when the connection can be closed.
func (s *Suit) Serve() {
	request := s.request

	for {
		data, err := s.client.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Printf("%s: read: %s", request.ID, err)
				return
			}

			if !s.Pending() {
				return
			}

			// the peer has finished sending without the blank line
			if err = s.Finish(); err != nil {
				s.fail(err)
				return
			}

			break
		}

		done, extra, err := s.Parse(data)
		if err != nil {
			s.fail(err)
			return
		}

		if done {
			if len(extra) > 0 {
				s.client.Pushback(extra)
			}

			break
		}
	}

	if err := s.Body.Init(request); err != nil {
		s.fail(err)
		return
	}

	body, err := s.Body.Read()
	if err != nil {
		// nobody to respond to
		s.logger.Printf("%s: read body: %s", request.ID, err)
		return
	}

	request.Body = body
	s.decode()
	s.respond(s.dispatch())
}

func (s *Suit) decode() {
	request := s.request
	result := decode.Decode(request.ContentType, request.Body)

	switch result.Kind {
	case decode.Form:
		request.Form = result.Form
	case decode.JSON:
		request.JSON = result.JSON
	}

	if result.Err != nil {
		request.DecodeError = result.Err
		s.logger.Printf("%s: %s %s: decode body: %s", request.ID, request.Method, request.Path, result.Err)
	}
}

func (s *Suit) dispatch() (resp *http.Response) {
	request := s.request

	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("%s: %s %s: handler panicked: %v", request.ID, request.Method, request.Path, r)
			resp = notNil(request, s.router.OnError(request, status.ErrInternalServerError))
		}
	}()

	return notNil(request, s.router.OnRequest(request))
}

// fail responds with an error, unless the request is too broken to be responded to.
func (s *Suit) fail(err error) {
	request := s.request

	if status.NoResponse(err) {
		s.logger.Printf("%s: %s, closing the connection", request.ID, err)
		return
	}

	s.respond(notNil(request, s.router.OnError(request, err)))
	s.discard()
}

// discard drains the input left unread, so that closing the connection doesn't reset it
// before the peer receives the response.
func (s *Suit) discard() {
	conn := s.client.Conn()
	if err := conn.SetReadDeadline(time.Now().Add(s.cfg.NET.LingerTimeout)); err != nil {
		return
	}

	_, _ = io.CopyN(io.Discard, conn, s.cfg.NET.LingerSize)
}

func (s *Suit) respond(resp *http.Response) {
	request := s.request
	s.logger.Printf("%s: %s %s %d", request.ID, request.Method, request.Path, resp.Reveal().Code)

	if err := s.Write(request.Method, resp); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Printf("%s: write response: %s", request.ID, err)
	}
}

func notNil(request *http.Request, resp *http.Response) *http.Response {
	if resp != nil {
		return resp
	}

	return http.Respond(request)
}
