package bind

import (
	"net/http"
	"strings"
)

// MethodAny declares a route with no method restriction.
const MethodAny = "*"

// Route describes a single named route: the name it is registered under on
// the router, the HTTP method and path pattern it matches, and the handler
// that serves it.  Apply snapshots the descriptor, so mutating a Route after
// it has been applied has no effect on the registered table.
//
// The path pattern uses the router's own syntax, including {name} variables,
// and is not interpreted by this package.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler Handler
}

// Get declares a GET route.
func Get(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodGet, path, handler)
}

// Post declares a POST route.
func Post(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodPost, path, handler)
}

// Put declares a PUT route.
func Put(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodPut, path, handler)
}

// Delete declares a DELETE route.
func Delete(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodDelete, path, handler)
}

// Head declares a HEAD route.
func Head(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodHead, path, handler)
}

// Patch declares a PATCH route.
func Patch(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodPatch, path, handler)
}

// Options declares an OPTIONS route.
func Options(name, path string, handler HandlerFunc) Route {
	return newRoute(name, http.MethodOptions, path, handler)
}

// Any declares a route that matches every method.
func Any(name, path string, handler HandlerFunc) Route {
	return newRoute(name, MethodAny, path, handler)
}

func newRoute(name, method, path string, handler HandlerFunc) Route {
	return Route{
		Name:    name,
		Method:  method,
		Path:    path,
		Handler: handler,
	}
}

var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodPatch:   true,
	http.MethodOptions: true,
	MethodAny:          true,
}

func isSupportedMethod(method string) bool {
	return supportedMethods[strings.ToUpper(method)]
}
