package inbuilt

import (
	"fmt"
	"log"

	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/mime"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/static"
)

type (
	Handler      func(request *http.Request) *http.Response
	ErrorHandler func(request *http.Request, err error) *http.Response
)

// AllErrors is used to be passed into Router.RouteError, indicating by that,
// that the handler must handle ALL errors (if concrete error's handler won't
// override it)
const AllErrors = status.Code(0)

// Router is a built-in implementation of router.Router interface. Routes are matched
// by exact path only, the method is never consulted, so handlers must reject methods they
// don't support themselves. Paths not matching any route are tried against the static
// resolvers, and if none of them claims the path, a fixed 404 Not Found is returned.
type Router struct {
	routes      map[string]Handler
	resolvers   []*static.Resolver
	notFound    Handler
	errHandlers map[status.Code]ErrorHandler
	logger      static.Logger
	built       bool
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		routes:      make(map[string]Handler),
		errHandlers: make(map[status.Code]ErrorHandler),
		notFound:    notFound,
		logger:      log.Default(),
	}
}

// Logger replaces log.Default() for resolvers mounted via Static afterwards.
func (r *Router) Logger(logger static.Logger) *Router {
	r.mustNotBeBuilt()
	r.logger = logger
	return r
}

// Route registers the handler for the path. The path is compared against the request path
// as is, with no normalization.
func (r *Router) Route(path string, handler Handler) *Router {
	r.mustNotBeBuilt()

	if _, found := r.routes[path]; found {
		panic(fmt.Sprintf("route %s is already registered", path))
	}

	r.routes[path] = handler
	return r
}

// NotFound replaces the fixed 404 Not Found response.
func (r *Router) NotFound(handler Handler) *Router {
	r.mustNotBeBuilt()
	r.notFound = handler
	return r
}

// RouteError adds an error handler for corresponding HTTP error codes. The handler
// receives requests which couldn't be served, alongside with the reason.
func (r *Router) RouteError(handler ErrorHandler, codes ...status.Code) *Router {
	r.mustNotBeBuilt()

	for _, code := range codes {
		r.errHandlers[code] = handler
	}

	return r
}

// Build freezes the router. No routes can be registered afterwards, so the router can
// be safely shared between connections.
func (r *Router) Build() *Router {
	r.built = true
	return r
}

func (r *Router) OnRequest(request *http.Request) *http.Response {
	if handler, found := r.routes[request.Path]; found {
		return handler(request)
	}

	for _, resolver := range r.resolvers {
		if resolver.Match(request.Path) {
			return resolver.Resolve(request)
		}
	}

	return r.notFound(request)
}

func (r *Router) OnError(request *http.Request, err error) *http.Response {
	handler, found := r.errHandlers[status.CodeOf(err)]
	if !found {
		handler, found = r.errHandlers[AllErrors]
	}

	if found {
		return handler(request, err)
	}

	return http.Error(request, err)
}

func (r *Router) mustNotBeBuilt() {
	if r.built {
		panic("the router is already built")
	}
}

func notFound(request *http.Request) *http.Response {
	return request.Respond().
		Code(status.NotFound).
		ContentType(mime.HTML).
		String(http.ErrorPage(status.NotFound))
}
