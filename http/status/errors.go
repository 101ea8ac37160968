package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	// ErrMalformedRequestLine is returned when not even the request line could be parsed.
	// Nothing is known about the peer, so the connection is closed without a response.
	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")

	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrMalformedRequest     = NewError(BadRequest, "malformed request")
	ErrUnsupportedBody      = NewError(BadRequest, "unsupported body transfer encoding")
	ErrBodyTooLarge         = NewError(BadRequest, "request body is too large")
	ErrHeaderFieldsTooLarge = NewError(BadRequest, "too large headers section")
	ErrURLDecoding          = NewError(BadRequest, "invalid urlencoded sequence")
	ErrNullByte             = NewError(BadRequest, "path contains a null byte")
	ErrTraversal            = NewError(Forbidden, "path escapes the root directory")
	ErrForbidden            = NewError(Forbidden, "forbidden")
	ErrNotFound             = NewError(NotFound, "not found")
	ErrMethodNotAllowed     = NewError(MethodNotAllowed, "method not allowed")
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")

	// ErrBodyDecode marks a body that couldn't be decoded according to its content type. It
	// never reaches the client, the decoder recovers from it with an empty value.
	ErrBodyDecode = NewError(BadRequest, "malformed body")
)

// CodeOf extracts the status code carried by the error. Errors not produced by this package
// are considered internal ones.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

// NoResponse tells whether the error leaves no ground to respond on.
func NoResponse(err error) bool {
	return errors.Is(err, ErrMalformedRequestLine)
}
