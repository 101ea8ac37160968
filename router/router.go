package router

import (
	"github.com/bare-web/bare/http"
)

// Router is the entry point of every request's lifecycle. OnRequest is called after the
// request and its body are fully read and decoded. OnError is called when the request can't
// be served, but the peer still deserves a response. Nil responses are substituted with
// an empty 200 OK.
type Router interface {
	OnRequest(request *http.Request) *http.Response
	OnError(request *http.Request, err error) *http.Response
}
