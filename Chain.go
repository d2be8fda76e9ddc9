package bind

// Chain is the composed handler sequence for a single route: every
// before-linked middleware in declared order, then the route handler, then
// every after-linked middleware in declared order.
//
// A halt in the before phase - a middleware returning false from Handle -
// skips the remaining before middleware and the handler, and marks the
// context as halted.  The after phase runs regardless: a halted request
// still carries a response worth post-processing.  A halt in the after
// phase skips only the remaining after middleware.
//
// A Chain is itself a Handler, so chains can wrap other chains.  A Chain is
// immutable once constructed and safe for concurrent use.
type Chain struct {
	handler Handler
	before  []Middleware
	after   []Middleware
}

var _ Handler = &Chain{}

// NewChain composes handler with the provided middleware links, partitioning
// them by phase and preserving declared order within each phase.  It panics
// if handler is nil or any link carries no middleware.
func NewChain(handler Handler, links ...Link) *Chain {
	if handler == nil {
		panic("a chain requires a handler")
	}

	chain := &Chain{handler: handler}

	for _, link := range links {
		if link.middleware == nil {
			panic("a chain link requires a middleware instance")
		}

		switch link.phase {
		case PhaseBefore:
			chain.before = append(chain.before, link.middleware)
		case PhaseAfter:
			chain.after = append(chain.after, link.middleware)
		}
	}

	return chain
}

// Handle runs the chain against ctx.
func (c *Chain) Handle(ctx *Context) {
	halted := false

	for _, m := range c.before {
		if !m.Handle(ctx) {
			halted = true
			break
		}
	}

	if halted {
		ctx.halted = true
	} else {
		c.handler.Handle(ctx)
	}

	for _, m := range c.after {
		if !m.Handle(ctx) {
			break
		}
	}
}

// Before returns the middleware that runs ahead of the handler, in order.
func (c *Chain) Before() []Middleware {
	return append([]Middleware(nil), c.before...)
}

// After returns the middleware that runs behind the handler, in order.
func (c *Chain) After() []Middleware {
	return append([]Middleware(nil), c.after...)
}
