package bind

// Middleware defines the method that any request-lifecycle hook must
// implement.  If the Handle method returns true, the request will continue
// to be propagated along the handler chain.  Returning false halts the
// chain - see Chain for what a halt means in each phase.
//
// A Middleware has no phase of its own.  The Link produced by Before or
// After decides where in the chain it runs, so the same implementation can
// be linked into either phase.
type Middleware interface {
	Handle(ctx *Context) bool
}
