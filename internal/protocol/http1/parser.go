package http1

import (
	"bytes"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/buffer"
	"github.com/bare-web/bare/internal/strutil"
)

// Parser accumulates the request head (the request line and the header fields) and parses
// it as a whole as soon as the blank line terminating it arrives. Values stored in the
// request refer to the head buffer, so it must not be cleared while the request is in use.
type Parser struct {
	cfg     *config.Config
	request *http.Request
	head    *buffer.Buffer
}

func NewParser(cfg *config.Config, request *http.Request, head *buffer.Buffer) *Parser {
	return &Parser{
		cfg:     cfg,
		request: request,
		head:    head,
	}
}

// Parse feeds the parser with the next piece of the stream. When the head is complete,
// done is true and extra contains everything that followed it, which is a slice of data.
// An error always comes with done set.
func (p *Parser) Parse(data []byte) (done bool, extra []byte, err error) {
	prev := p.head.Len()

	if !p.head.Append(data) {
		// the terminator may still be within the limit
		p.head.Append(data[:p.head.Free()])
		if end := headEnd(p.head.Bytes(), max(prev-3, 0)); end != -1 {
			return p.complete(end, prev, data)
		}

		if bytes.IndexByte(p.head.Bytes(), '\n') == -1 {
			return true, nil, status.ErrMalformedRequestLine
		}

		if err = p.parseRequestLine(p.head.Bytes()); err != nil {
			return true, nil, err
		}

		return true, nil, status.ErrHeaderFieldsTooLarge
	}

	end := headEnd(p.head.Bytes(), max(prev-3, 0))
	if end == -1 {
		return false, nil, nil
	}

	return p.complete(end, prev, data)
}

// Finish parses the head accumulated so far when the stream ends before the blank line.
// Header fields are parsed up to the end of the input.
func (p *Parser) Finish() error {
	head := p.head.Bytes()
	if len(head) == 0 {
		return status.ErrMalformedRequestLine
	}

	lf := bytes.IndexByte(head, '\n')
	if lf == -1 {
		return p.parseRequestLine(head)
	}

	if err := p.parseRequestLine(head[:lf]); err != nil {
		return err
	}

	return p.parseHeaders(uf.B2S(head[lf+1:]))
}

// Pending tells whether any part of the head was received.
func (p *Parser) Pending() bool {
	return p.head.Len() > 0
}

func (p *Parser) complete(end, prev int, data []byte) (done bool, extra []byte, err error) {
	extra = data[end-prev:]
	head := p.head.Bytes()[:end]

	lf := bytes.IndexByte(head, '\n')
	if err = p.parseRequestLine(head[:lf]); err != nil {
		return true, nil, err
	}

	if err = p.parseHeaders(uf.B2S(head[lf+1:])); err != nil {
		return true, nil, err
	}

	return true, extra, nil
}

// parseRequestLine fills the method, path, query and protocol. Line may go past the request
// line, everything after the first LF is ignored.
func (p *Parser) parseRequestLine(line []byte) error {
	if lf := bytes.IndexByte(line, '\n'); lf != -1 {
		line = line[:lf]
	}

	requestLine := strutil.StripCR(uf.B2S(line))

	method, rest, found := strings.Cut(requestLine, " ")
	if !found || len(method) == 0 {
		return status.ErrMalformedRequestLine
	}

	target, protocol, found := strings.Cut(rest, " ")
	if !found || len(target) == 0 || len(protocol) == 0 || strings.IndexByte(protocol, ' ') != -1 {
		return status.ErrMalformedRequestLine
	}

	request := p.request
	request.Method = method
	request.Protocol = protocol
	request.Path, request.Query, _ = strings.Cut(target, "?")
	parseQuery(request.Params, request.Query)

	return nil
}

func (p *Parser) parseHeaders(block string) error {
	request := p.request
	maxHeaders := p.cfg.Headers.Number.Maximal
	number := 0

	for len(block) > 0 {
		var line string
		line, block, _ = strings.Cut(block, "\n")
		line = strutil.StripCR(line)
		if len(line) == 0 {
			break
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		key = strutil.StripWS(key)
		if len(key) == 0 {
			continue
		}

		if number++; number > maxHeaders {
			return status.ErrHeaderFieldsTooLarge
		}

		value = strutil.StripWS(value)
		request.Headers.Set(key, value)
	}

	request.ContentType = request.Headers.Value("Content-Type")

	return nil
}

// parseQuery splits the query into key-value pairs. Segments without = are ignored, keys and
// values are kept as is.
func parseQuery(into http.Params, query string) {
	for len(query) > 0 {
		var segment string
		segment, query, _ = strings.Cut(query, "&")

		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}

		into.Set(key, value)
	}
}

// headEnd returns the offset right after the blank line terminating the head, or -1 if it
// isn't there yet. Both CRLF and bare LF line endings are recognized.
func headEnd(b []byte, from int) int {
	for {
		lf := bytes.IndexByte(b[from:], '\n')
		if lf == -1 {
			return -1
		}

		i := from + lf + 1
		switch {
		case i < len(b) && b[i] == '\n':
			return i + 1
		case i+1 < len(b) && b[i] == '\r' && b[i+1] == '\n':
			return i + 2
		}

		from = i
	}
}
