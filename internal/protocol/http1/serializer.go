package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/utils/strcomp"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/response"
	"github.com/bare-web/bare/transport"
)

const (
	protocol = "HTTP/1.1"
	crlf     = "\r\n"
)

// Serializer renders responses into the wire format. The Content-Length header is always
// emitted right after the status line and computed from the body or the attachment size.
// Content-Length headers set by the caller are dropped.
type Serializer struct {
	cfg        *config.Config
	client     transport.Client
	buff       []byte
	streamBuff []byte
}

func NewSerializer(cfg *config.Config, client transport.Client, buff []byte) *Serializer {
	return &Serializer{
		cfg:    cfg,
		client: client,
		buff:   buff,
	}
}

// Build renders the response into a fresh slice. Attachments are not read, only their size
// is reflected in the header block.
func (s *Serializer) Build(resp *http.Response) []byte {
	fields := resp.Reveal()
	buff := appendHead(nil, fields)

	if !fields.Streams() {
		buff = append(buff, fields.Body...)
	}

	return buff
}

// Write sends the response. Responses to HEAD requests carry the same header block,
// but no body. If the response has an attachment, it is streamed right after the
// header block is flushed. The attachment is closed afterwards in any case.
func (s *Serializer) Write(method string, resp *http.Response) (err error) {
	fields := resp.Reveal()
	headOnly := method == "HEAD"

	if fields.Streams() {
		defer func() {
			if cerr := fields.Attachment.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	s.buff = appendHead(s.buff[:0], fields)
	if !fields.Streams() {
		if !headOnly {
			s.buff = append(s.buff, fields.Body...)
		}

		return s.flush()
	}

	if err = s.flush(); err != nil || headOnly {
		return err
	}

	return s.writeStream(fields.Attachment)
}

// writeStream copies exactly the declared amount of bytes of the attachment in chunks.
// The header block is already committed at this point, so an attachment ending
// prematurely can only be reported as an error, which results in closing the connection.
func (s *Serializer) writeStream(attachment response.Attachment) error {
	if s.streamBuff == nil {
		s.streamBuff = make([]byte, s.cfg.Static.ChunkSize)
	}

	stream := io.LimitReader(attachment.Reader(), attachment.Size())
	left := attachment.Size()

	for left > 0 {
		n, err := stream.Read(s.streamBuff)
		if n > 0 {
			if _, werr := s.client.Write(s.streamBuff[:n]); werr != nil {
				return werr
			}

			left -= int64(n)
		}

		switch err {
		case nil:
		case io.EOF:
			if left > 0 {
				return io.ErrUnexpectedEOF
			}

			return nil
		default:
			return err
		}
	}

	return nil
}

func (s *Serializer) flush() (err error) {
	if len(s.buff) > 0 {
		_, err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return err
}

func appendHead(buff []byte, fields *response.Fields) []byte {
	buff = append(buff, protocol...)
	buff = append(buff, ' ')
	buff = append(buff, status.StringCode(fields.Code)...)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(fields.Code)...)
	buff = append(buff, crlf...)

	length := int64(len(fields.Body))
	if fields.Streams() {
		length = fields.Attachment.Size()
	}

	buff = append(buff, "Content-Length: "...)
	buff = strconv.AppendInt(buff, length, 10)
	buff = append(buff, crlf...)

	for _, header := range fields.Headers {
		if strcomp.EqualFold(header.Key, "Content-Length") {
			continue
		}

		buff = append(buff, header.Key...)
		buff = append(buff, ':', ' ')
		buff = append(buff, header.Value...)
		buff = append(buff, crlf...)
	}

	return append(buff, crlf...)
}
