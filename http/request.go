package http

import (
	"net"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http/form"
	"github.com/bare-web/bare/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
	Params  = *kv.Storage
)

// Request represents a single HTTP request. Every connection carries exactly one.
type Request struct {
	// Method is the request method token exactly as received.
	Method string
	// Path is the request target with the query string stripped. It isn't decoded.
	Path string
	// Query is the raw query string, without the leading question mark.
	Query string
	// Params are the query parameters. Keys and values are kept raw, lookup is case-sensitive
	// and repeated keys are overridden by the latest one.
	Params Params
	// Protocol is the protocol token exactly as received, e.g. HTTP/1.1.
	Protocol string
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	// A repeated header overrides the earlier one.
	Headers Headers
	// ContentLength is the declared body length. It is 0 if the header is absent.
	ContentLength int
	// ContentType obtains the Content-Type header value.
	ContentType string
	// Body is the whole request body. Its length is always equal to ContentLength.
	Body []byte
	// Form is non-empty only for application/x-www-form-urlencoded requests.
	Form form.Form
	// JSON is set only for application/json requests. A body that failed to parse results
	// in an empty map and DecodeError being set.
	JSON any
	// DecodeError holds the error the body decoder recovered from, if any.
	DecodeError error
	// Remote holds the remote address.
	Remote net.Addr
	// ID identifies the connection the request came from.
	ID       string
	response *Response
}

func NewRequest(cfg *config.Config, response *Response, remote net.Addr) *Request {
	return &Request{
		Params:   kv.NewStrict(cfg.URI.ParamsPrealloc),
		Headers:  kv.NewPrealloc(cfg.Headers.Number.Default),
		Remote:   remote,
		response: response,
	}
}

// Respond returns a cleared Response object.
//
// WARNING: the response builder is shared, so every call discards everything done with
// it before.
func (r *Request) Respond() *Response {
	return r.response.Clear()
}

// Reset the request
func (r *Request) Reset() {
	r.Method = ""
	r.Path = ""
	r.Query = ""
	r.Protocol = ""
	r.Params.Clear()
	r.Headers.Clear()
	r.ContentLength = 0
	r.ContentType = ""
	r.Body = nil
	r.Form = nil
	r.JSON = nil
	r.DecodeError = nil
}
