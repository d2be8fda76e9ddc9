package bind

// Handler defines the method that any route handler must implement.
type Handler interface {
	Handle(ctx *Context)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx *Context)

var _ Handler = HandlerFunc(nil)

// Handle simply calls f.
func (f HandlerFunc) Handle(ctx *Context) {
	f(ctx)
}
