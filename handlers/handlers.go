// Package handlers holds the pages served by the bare binary.
package handlers

import (
	"html"

	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/mime"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/router/inbuilt"
)

// Register adds all the pages to the router.
func Register(r *inbuilt.Router) *inbuilt.Router {
	return r.
		Route("/", Home).
		Route("/about", About).
		Route("/login", Login)
}

func Home(request *http.Request) *http.Response {
	return http.HTML(request, "<h1>Home</h1>")
}

func About(request *http.Request) *http.Response {
	return http.HTML(request, "<h1>About</h1>")
}

// Login greets the user by the username passed either as a urlencoded form or a JSON
// object. Only POST is allowed.
func Login(request *http.Request) *http.Response {
	if request.Method != "POST" {
		return http.Error(request, status.ErrMethodNotAllowed).
			Header("Allow", "POST")
	}

	username := username(request)
	if len(username) == 0 {
		return http.Error(request, status.ErrBadRequest)
	}

	return request.Respond().
		ContentType(mime.HTML).
		String("<h1>Welcome, " + html.EscapeString(username) + "</h1>")
}

func username(request *http.Request) string {
	if name, found := request.Form.Get("username"); found {
		return name
	}

	if object, ok := request.JSON.(map[string]any); ok {
		if name, ok := object["username"].(string); ok {
			return name
		}
	}

	return ""
}
