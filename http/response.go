package http

import (
	"io"

	json "github.com/json-iterator/go"

	"github.com/bare-web/bare/http/mime"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/response"
	"github.com/indigo-web/utils/uf"
)

// why 7? Static files carry 5 headers, plus some room for a handler to add its own.
const preallocRespHeaders = 7

// Response is a builder of the status code, headers and body tuple. The Content-Length
// header is always computed from the body (or the attachment size) while serializing, so
// setting it manually has no effect.
type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and no headers.
// NOTE: it's recommended to use Request.Respond() method inside of handlers, if there's no
// clear reason otherwise
func NewResponse() *Response {
	return &Response{
		&response.Fields{
			Code:    status.OK,
			Headers: make([]response.Header, 0, preallocRespHeaders),
		},
	}
}

// Code sets the response code. Codes without a known reason phrase are sent with the
// fallback one.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// ContentType sets the Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// Header appends header values to a key. Headers are sent in the order they were added.
func (r *Response) Header(key string, values ...string) *Response {
	for _, value := range values {
		r.fields.Headers = append(r.fields.Headers, response.Header{
			Key:   key,
			Value: value,
		})
	}

	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// Attachment sets a stream of exactly size bytes to be sent as the body. In this case the
// body is ignored. The reader is closed after it's been written, if it's an io.Closer.
func (r *Response) Attachment(reader io.Reader, size int64) *Response {
	r.fields.Attachment = response.NewAttachment(reader, size)
	return r
}

// TryJSON serializes the model into the body and returns an error if it has failed.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = r.fields.Body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Clear().Error(err)
	}

	return resp
}

// Error turns the response into an HTML error page. The code is taken from status.HTTPError,
// any other error results in 500 Internal Server Error. If passed err is nil, nothing will
// happen.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	code := status.CodeOf(err)

	return r.
		Code(code).
		ContentType(mime.HTML).
		String(ErrorPage(code))
}

// Reveal returns a struct with values, filled by builder. Used mostly in internal purposes
func (r *Response) Reveal() *response.Fields {
	return r.fields
}

// Clear discards everything was done with Response object before
func (r *Response) Clear() *Response {
	r.fields.Clear()
	return r
}

// ErrorPage renders the fixed HTML body of error responses, e.g. <h1>404 Not Found</h1>.
func ErrorPage(code status.Code) string {
	return "<h1>" + status.StringCode(code) + " " + string(status.Text(code)) + "</h1>"
}

// Respond is a predicate to request.Respond(). May be used as a dummy handler
func Respond(request *Request) *Response {
	return request.Respond()
}

// Code is a predicate to request.Respond().Code(...)
func Code(request *Request, code status.Code) *Response {
	return request.Respond().Code(code)
}

// String is a predicate to request.Respond().String(...)
func String(request *Request, str string) *Response {
	return request.Respond().String(str)
}

// HTML is a predicate to request.Respond().ContentType(mime.HTML).String(...)
func HTML(request *Request, markup string) *Response {
	return request.Respond().ContentType(mime.HTML).String(markup)
}

// JSON is a predicate to request.Respond().JSON(...)
func JSON(request *Request, model any) *Response {
	return request.Respond().JSON(model)
}

// Error is a predicate to request.Respond().Error(...)
func Error(request *Request, err error) *Response {
	return request.Respond().Error(err)
}
