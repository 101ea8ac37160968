package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes the server produces itself. Handlers are free to respond with any other
// code, it'll be serialized with the fallback reason phrase.
const (
	OK               Code = 200 // RFC 9110, 15.3.1
	MovedPermanently Code = 301 // RFC 9110, 15.4.2
	Found            Code = 302 // RFC 9110, 15.4.3
	NotModified      Code = 304 // RFC 9110, 15.4.5

	BadRequest       Code = 400 // RFC 9110, 15.5.1
	Forbidden        Code = 403 // RFC 9110, 15.5.4
	NotFound         Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed Code = 405 // RFC 9110, 15.5.6

	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes lists every code having its own reason phrase.
var KnownCodes = []Code{
	OK, MovedPermanently, Found, NotModified,
	BadRequest, Forbidden, NotFound, MethodNotAllowed,
	InternalServerError,
}

// Fallback is the reason phrase of every code missing in the table.
const Fallback Status = "OK"

// Text returns a reason phrase for the code. Codes without a dedicated phrase fall back
// to "OK".
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case MovedPermanently:
		return "Moved Permanently"
	case Found:
		return "Found"
	case NotModified:
		return "Not Modified"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return Fallback
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	switch code {
	case OK:
		return "200"
	case NotModified:
		return "304"
	case NotFound:
		return "404"
	default:
		return strconv.FormatUint(uint64(code), 10)
	}
}
