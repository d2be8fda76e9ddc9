package bind

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ljpx/di"
	"github.com/ljpx/logging"
)

// Binder applies Bindings to a router.  It carries the container, logger,
// and configuration that every chain it registers shares, and can be reused
// across any number of bindings and routers.  Binders are intended for
// application wiring at startup and are not thread-safe.
type Binder struct {
	c      di.Container
	logger logging.Logger
	config *Config
}

// NewBinder creates a new binder with the provided container, logger, and
// config.  A nil config falls back to DefaultConfig.
func NewBinder(c di.Container, logger logging.Logger, config *Config) *Binder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Binder{
		c:      c,
		logger: logger,
		config: config,
	}
}

// Apply expands the binding: for every declared route it composes the
// middleware chain and registers the chain on the binding's router under
// the route's method, path, and name.
//
// The declaration is validated first - a malformed binding returns an error
// before the router has been touched.  Registration itself is sequential
// and synchronous.  A registration error reported by the router, such as a
// malformed path pattern, is returned immediately and leaves the routes
// registered so far in place.
func (b *Binder) Apply(binding Binding) error {
	if err := binding.validate(); err != nil {
		return err
	}

	for _, route := range binding.Routes {
		chain := NewChain(route.Handler, binding.Middleware...)

		muxRoute := binding.Router.Handle(route.Path, b.buildRequestHandler(chain)).Name(route.Name)

		if method := strings.ToUpper(route.Method); method != MethodAny {
			muxRoute.Methods(method)
		}

		if err := muxRoute.GetError(); err != nil {
			return fmt.Errorf("registering the route %q: %w", route.Name, err)
		}
	}

	return nil
}

// buildRequestHandler adapts a chain to the http.Handler the router
// dispatches to, wiring up response measurement, the request context, and
// panic recovery.
func (b *Binder) buildRequestHandler(chain *Chain) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mrw := NewMeasuredResponseWriter(w)
		ctx := NewContext(mrw, r, b.c, b.config)

		defer func() {
			if p := recover(); p != nil {
				if !mrw.HasWrittenHeaders() {
					ctx.InternalServerError(fmt.Errorf("%v", p))
				}

				b.logger.Printf("recovered from a panic on %v %v: %v\n", r.Method, r.URL.Path, p)
			}
		}()

		chain.Handle(ctx)
	})
}
