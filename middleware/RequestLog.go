package middleware

import (
	"github.com/ljpx/bind"
	"github.com/ljpx/logging"
)

// RequestLog is an after-phase middleware that writes one access line per
// request through the provided logger, covering the response status code,
// duration, volume, route name, and path.  Because it reads the response
// measurements, it should usually be the last link in a binding.
type RequestLog struct {
	logger logging.Logger
}

// NewRequestLog creates a new RequestLog that writes to logger.
func NewRequestLog(logger logging.Logger) *RequestLog {
	return &RequestLog{logger: logger}
}

var _ bind.Middleware = &RequestLog{}

// Handle writes the access line for the in-flight request.
func (m *RequestLog) Handle(ctx *bind.Context) bool {
	res := ctx.Response()

	m.logger.Printf("• %v %v %v %v %v\n",
		res.StatusCode(),
		res.Duration(),
		bind.ByteSizeToFriendlyString(res.Volume()),
		ctx.RouteName(),
		ctx.Request().URL.Path,
	)

	return true
}
