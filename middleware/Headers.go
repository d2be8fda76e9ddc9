package middleware

import (
	"github.com/ljpx/bind"
)

// Headers is a before-phase middleware that sets a fixed set of response
// headers ahead of the route handler, so that they are in place by the time
// the handler's first write flushes them.
type Headers struct {
	headers map[string]string
}

// NewHeaders creates a new Headers middleware from the provided header
// name-value pairs.  The map is copied.
func NewHeaders(headers map[string]string) *Headers {
	copied := make(map[string]string, len(headers))
	for name, value := range headers {
		copied[name] = value
	}

	return &Headers{headers: copied}
}

var _ bind.Middleware = &Headers{}

// Handle sets the configured headers on the response.
func (m *Headers) Handle(ctx *bind.Context) bool {
	for name, value := range m.headers {
		ctx.Header().Set(name, value)
	}

	return true
}
