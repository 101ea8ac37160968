package response

import (
	"io"

	"github.com/bare-web/bare/http/status"
)

type Header struct {
	Key, Value string
}

// Attachment is a body of known size read from a stream instead of being held in memory.
type Attachment struct {
	reader io.Reader
	size   int64
}

func NewAttachment(reader io.Reader, size int64) Attachment {
	return Attachment{
		reader: reader,
		size:   size,
	}
}

func (a Attachment) Reader() io.Reader {
	return a.reader
}

func (a Attachment) Size() int64 {
	return a.size
}

// Close closes the underlying reader if it's closable.
func (a Attachment) Close() error {
	if closer, ok := a.reader.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

type Fields struct {
	Attachment Attachment
	Headers    []Header
	Body       []byte
	Code       status.Code
}

// Clear resets the fields, retaining the headers storage.
func (f *Fields) Clear() {
	f.Code = status.OK
	f.Headers = f.Headers[:0]
	f.Body = nil
	f.Attachment = Attachment{}
}

// Streams tells whether the body is going to be read from the attachment.
func (f *Fields) Streams() bool {
	return f.Attachment.reader != nil
}
