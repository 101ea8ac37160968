package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/utils/strcomp"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/strutil"
	"github.com/bare-web/bare/transport"
)

// Body reads exactly as many bytes as the Content-Length header declares. Bytes left
// from the head are expected to be pushed back into the client beforehand.
type Body struct {
	client    transport.Client
	maxSize   uint64
	bytesLeft int
}

func NewBody(client transport.Client, cfg config.Body) *Body {
	return &Body{
		client:  client,
		maxSize: cfg.MaxSize,
	}
}

// Init validates the framing of the request body and fills request.ContentLength.
func (b *Body) Init(request *http.Request) error {
	b.bytesLeft = 0
	request.ContentLength = 0

	if te, found := request.Headers.Get("Transfer-Encoding"); found {
		if !strcomp.EqualFold(strutil.StripWS(te), "identity") {
			return status.ErrUnsupportedBody
		}
	}

	value, found := request.Headers.Get("Content-Length")
	if !found {
		return nil
	}

	length, err := strconv.ParseUint(strutil.StripWS(value), 10, 63)
	if err != nil {
		return status.ErrMalformedRequest
	}

	if length > b.maxSize {
		return status.ErrBodyTooLarge
	}

	request.ContentLength = int(length)
	b.bytesLeft = int(length)

	return nil
}

// Retrieve returns the next piece of the body. After the last piece, io.EOF is returned.
// The piece is valid until the next call.
func (b *Body) Retrieve() ([]byte, error) {
	if b.bytesLeft == 0 {
		return nil, io.EOF
	}

	data, err := b.client.Read()
	if err != nil {
		if err == io.EOF {
			// the peer has gone before sending the whole body
			err = io.ErrUnexpectedEOF
		}

		return nil, err
	}

	if len(data) >= b.bytesLeft {
		data, rest := data[:b.bytesLeft], data[b.bytesLeft:]
		if len(rest) > 0 {
			b.client.Pushback(rest)
		}

		b.bytesLeft = 0
		return data, nil
	}

	b.bytesLeft -= len(data)
	return data, nil
}

// Read returns the whole body. Its length is always equal to the declared one.
func (b *Body) Read() ([]byte, error) {
	if b.bytesLeft == 0 {
		return nil, nil
	}

	body := make([]byte, 0, b.bytesLeft)

	for {
		piece, err := b.Retrieve()
		switch err {
		case nil:
		case io.EOF:
			return body, nil
		default:
			return nil, err
		}

		body = append(body, piece...)
	}
}
