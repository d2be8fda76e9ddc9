package bind

import (
	"fmt"

	"github.com/gorilla/mux"
)

// Binding is the declarative description a Binder expands: a target router,
// a group of named routes to register on it, and the middleware links every
// route in the group should share.
//
// Router and Routes are required, and Routes must contain at least one
// route.  Middleware may be empty, in which case applying the binding is
// plain route registration.
type Binding struct {
	Router     *mux.Router
	Routes     []Route
	Middleware []Link
}

// validate checks that the declaration is well formed.  It deliberately
// checks nothing the router enforces itself, such as path pattern syntax.
func (b Binding) validate() error {
	if b.Router == nil {
		return fmt.Errorf("a binding requires a router")
	}

	if len(b.Routes) == 0 {
		return fmt.Errorf("a binding requires at least one route")
	}

	seen := make(map[string]bool, len(b.Routes))

	for _, route := range b.Routes {
		if route.Name == "" {
			return fmt.Errorf("a route requires a name")
		}

		if seen[route.Name] {
			return fmt.Errorf("the route name %q appears more than once in the binding", route.Name)
		}
		seen[route.Name] = true

		if route.Path == "" {
			return fmt.Errorf("the route %q requires a path", route.Name)
		}

		if route.Handler == nil {
			return fmt.Errorf("the route %q requires a handler", route.Name)
		}

		if !isSupportedMethod(route.Method) {
			return fmt.Errorf("the route %q uses the unsupported method %q", route.Name, route.Method)
		}
	}

	for _, link := range b.Middleware {
		if link.middleware == nil {
			return fmt.Errorf("a %v link requires a middleware instance", link.phase)
		}
	}

	return nil
}
