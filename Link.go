package bind

// Phase identifies where in a handler chain a piece of middleware runs.
type Phase int

const (
	// PhaseBefore middleware runs ahead of the route handler and can halt
	// the request phase.
	PhaseBefore Phase = iota

	// PhaseAfter middleware runs once the route handler has returned,
	// typically for response post-processing.
	PhaseAfter
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	}

	return "unknown"
}

// A Link pairs a middleware instance with the phase it should run in.  All
// of the links declared on a Binding apply to every route in that binding,
// in the order they were declared.
type Link struct {
	phase      Phase
	middleware Middleware
}

// Before links middleware into the request phase of a chain.  It runs ahead
// of the route handler, and returning false from its Handle method halts
// the request phase.
func Before(m Middleware) Link {
	return Link{phase: PhaseBefore, middleware: m}
}

// After links middleware into the response phase of a chain.  It runs once
// the route handler has returned - or, for a halted request, once the
// request phase has ended - and returning false from its Handle method
// stops the remaining response-phase middleware.
//
// Responses are not buffered.  After middleware can observe the response
// through Context.Response and can write one only if nothing has been
// written yet; header changes after the first write are no-ops under the
// net/http contract.
func After(m Middleware) Link {
	return Link{phase: PhaseAfter, middleware: m}
}

// Phase returns the phase the linked middleware runs in.
func (l Link) Phase() Phase {
	return l.phase
}

// Middleware returns the linked middleware instance.
func (l Link) Middleware() Middleware {
	return l.middleware
}
