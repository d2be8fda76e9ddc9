package bind

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ljpx/di"
	"github.com/ljpx/id"
	"github.com/ljpx/problem"
)

// Context represents the context of a single HTTP request as it moves along
// a handler chain.  It is not thread-safe.
type Context struct {
	w      *MeasuredResponseWriter
	r      *http.Request
	c      di.Container
	config *Config

	correlationID id.ID
	artifacts     map[string]interface{}
	halted        bool
}

// NewContext creates a new context for the provided request.  The response
// writer is wrapped in a MeasuredResponseWriter unless it already is one.
func NewContext(w http.ResponseWriter, r *http.Request, c di.Container, config *Config) *Context {
	if config == nil {
		config = DefaultConfig()
	}

	mrw, ok := w.(*MeasuredResponseWriter)
	if !ok {
		mrw = NewMeasuredResponseWriter(w)
	}

	return &Context{
		w:      mrw,
		r:      r,
		c:      c.Fork(),
		config: config,

		correlationID: id.New(),
		artifacts:     make(map[string]interface{}),
	}
}

// GetCorrelationID returns the correlationID for the request.
func (ctx *Context) GetCorrelationID() id.ID {
	return ctx.correlationID
}

// GetArtifact retrieves the artifact with the specified name.  It will
// return nil if the artifact does not exist.  Artifacts are how middleware
// passes request-scoped values down the chain.
func (ctx *Context) GetArtifact(name string) interface{} {
	return ctx.artifacts[name]
}

// SetArtifact sets the artifact for the specified name.
func (ctx *Context) SetArtifact(name string, value interface{}) {
	ctx.artifacts[name] = value
}

// Halted reports whether a before-phase middleware ended the request phase,
// skipping the route handler.
func (ctx *Context) Halted() bool {
	return ctx.halted
}

// ResponseWriter returns the http.ResponseWriter.
func (ctx *Context) ResponseWriter() http.ResponseWriter {
	return ctx.w
}

// Response returns the measured response writer, which after-phase
// middleware can use to observe the status code, volume, and duration of
// the response.
func (ctx *Context) Response() *MeasuredResponseWriter {
	return ctx.w
}

// Container returns the underlying container.
func (ctx *Context) Container() di.Container {
	return ctx.c
}

// Request returns the *http.Request.
func (ctx *Context) Request() *http.Request {
	return ctx.r
}

// Header returns the set of response headers.
func (ctx *Context) Header() http.Header {
	return ctx.w.Header()
}

// RouteName returns the name the current route was registered under, or the
// empty string when the request was not dispatched through a named route.
func (ctx *Context) RouteName() string {
	route := mux.CurrentRoute(ctx.r)
	if route == nil {
		return ""
	}

	return route.GetName()
}

// GetPathParameter retrieves a path segment parameter from the request.
func (ctx *Context) GetPathParameter(name string) string {
	return mux.Vars(ctx.r)[name]
}

// GetQueryParameter retrieves a query parameter from the request.
func (ctx *Context) GetQueryParameter(name string) string {
	return ctx.r.URL.Query().Get(name)
}

// FromJSON retrieves JSON from the request body to place into the provided
// Purifiable.
func (ctx *Context) FromJSON(model Purifiable) bool {
	if !ctx.AssertContentType("application/json") {
		return false
	}

	if !ctx.AssertContentLength(ctx.config.JSONContentLengthLimit) {
		return false
	}

	decoder := json.NewDecoder(ctx.r.Body)
	err := decoder.Decode(model)
	if err != nil {
		problem := ctx.getProblemDetailsForDeserialization(err)
		ctx.RespondWithJSON(http.StatusBadRequest, problem)
		return false
	}

	field, err := model.Purify()
	if err != nil {
		problem := ctx.getProblemDetailsForUnprocessableEntity(field, err)
		ctx.RespondWithJSON(http.StatusUnprocessableEntity, problem)
		return false
	}

	return true
}

// Respond responds to the request with the provided HTTP code.
func (ctx *Context) Respond(code int) {
	ctx.w.Header().Set("Correlation-ID", ctx.correlationID.String())
	ctx.w.WriteHeader(code)
}

// RespondWithJSON responds to the request with the provided HTTP code and
// model.
func (ctx *Context) RespondWithJSON(code int, model interface{}) {
	rawJSON, err := json.Marshal(model)
	if err != nil {
		rawJSON = ctx.getRawProblemDetailsForSerializationError(err)
		code = http.StatusInternalServerError
	}

	ctx.w.Header().Set("Content-Type", "application/json")
	ctx.w.Header().Set("Content-Length", fmt.Sprintf("%v", len(rawJSON)))
	ctx.Respond(code)
	ctx.w.Write(rawJSON)
}

// NotFound responds to the request with a NotFound status code.
func (ctx *Context) NotFound(subjectType string, subject string) {
	problem := ctx.getProblemDetailsForNotFound(subjectType, subject)
	ctx.RespondWithJSON(http.StatusNotFound, problem)
}

// Unauthorized responds to the request with an Unauthorized status code and
// the provided detail.  It is the usual way for a before-phase middleware
// to halt a request that lacks credentials.
func (ctx *Context) Unauthorized(detail string) {
	problem := ctx.getProblemDetailsForUnauthorized(detail)
	ctx.RespondWithJSON(http.StatusUnauthorized, problem)
}

// TooManyRequests responds to the request with a TooManyRequests status
// code.
func (ctx *Context) TooManyRequests() {
	problem := ctx.getProblemDetailsForTooManyRequests()
	ctx.RespondWithJSON(http.StatusTooManyRequests, problem)
}

// InternalServerError responds to the request with an InternalServerError
// status code.
func (ctx *Context) InternalServerError(err error) {
	problem := ctx.getProblemDetailsForInternalServerError(err)
	ctx.RespondWithJSON(http.StatusInternalServerError, problem)
}

// Resolve resolves from the underlying container.  It will return false if
// an error prevented the operation from completing.
func (ctx *Context) Resolve(dependencies ...interface{}) bool {
	err := ctx.c.Resolve(dependencies...)
	if err != nil {
		ctx.InternalServerError(err)
		return false
	}

	return true
}

// AssertContentType ensures that the content type of the request matches one
// of the content types provided.
func (ctx *Context) AssertContentType(allowedContentTypes ...string) bool {
	contentType := ctx.r.Header.Get("Content-Type")
	contentTypeUppercase := strings.TrimSpace(strings.ToUpper(contentType))

	for _, allowedContentType := range allowedContentTypes {
		if contentTypeUppercase == strings.ToUpper(allowedContentType) {
			return true
		}
	}

	problem := ctx.getProblemDetailsForUnsupportedMediaType(contentType, allowedContentTypes)
	ctx.RespondWithJSON(http.StatusUnsupportedMediaType, problem)

	return false
}

// AssertContentLength ensures that a content length was provided, and that
// it is in (0, max].
func (ctx *Context) AssertContentLength(max int64) bool {
	contentLength := ctx.r.ContentLength

	if contentLength > max {
		problem := ctx.getProblemDetailsForRequestEntityTooLarge(contentLength, max)
		ctx.RespondWithJSON(http.StatusRequestEntityTooLarge, problem)
		return false
	}

	if contentLength <= 0 {
		problem := ctx.getProblemDetailsForLengthRequired()
		ctx.RespondWithJSON(http.StatusLengthRequired, problem)
		return false
	}

	return true
}

func (ctx *Context) getProblemDetailsForUnsupportedMediaType(providedContentType string, allowedContentTypes []string) *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/unsupported-media-type", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Unsupported Media Type",
		Detail: fmt.Sprintf("The Content-Type '%v' is not supported by this endpoint.", providedContentType),
		Specifics: map[string]interface{}{
			"providedContentType": providedContentType,
			"allowedContentTypes": allowedContentTypes,
		},
	}
}

func (ctx *Context) getProblemDetailsForRequestEntityTooLarge(contentLength, max int64) *problem.Details {
	detailFormat := "The provided request entity of length %v (%v bytes) exceeds the maximum of %v (%v bytes) on this endpoint."
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/request-entity-too-large", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Request Entity Too Large",
		Detail: fmt.Sprintf(detailFormat, ByteSizeToFriendlyString(contentLength), contentLength, ByteSizeToFriendlyString(max), max),
		Specifics: map[string]interface{}{
			"contentLength":        contentLength,
			"maximumContentLength": max,
		},
	}
}

func (ctx *Context) getProblemDetailsForLengthRequired() *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/length-required", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Length Required",
		Detail: "This endpoint requires that the Content-Length header be set to a positive, non-zero value.",
	}
}

func (ctx *Context) getProblemDetailsForDeserialization(err error) *problem.Details {
	problem := &problem.Details{
		Type:   fmt.Sprintf("%v/json/deserialization", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Deserialization Error",
		Detail: "The provided request body could not be meaningfully deserialized.  It appears to be invalid.",
	}

	if ctx.config.DebuggingEnabled {
		problem.AttachError(err)
	}

	return problem
}

func (ctx *Context) getProblemDetailsForUnprocessableEntity(field string, err error) *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/unprocessable-entity", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Unprocessable Entity",
		Detail: "The provided request body was understood but contained some invalid values.",
		Specifics: map[string]interface{}{
			"field": field,
			"error": err.Error(),
		},
	}
}

func (ctx *Context) getProblemDetailsForNotFound(subjectType string, subject string) *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/not-found", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Not Found",
		Detail: fmt.Sprintf(`The %v '%v' was not found.`, subjectType, subject),
		Specifics: map[string]interface{}{
			"subjectType": subjectType,
			"subject":     subject,
		},
	}
}

func (ctx *Context) getProblemDetailsForUnauthorized(detail string) *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/unauthorized", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Unauthorized",
		Detail: detail,
	}
}

func (ctx *Context) getProblemDetailsForTooManyRequests() *problem.Details {
	return &problem.Details{
		Type:   fmt.Sprintf("%v/http/too-many-requests", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Too Many Requests",
		Detail: "The request was refused because a rate limit has been reached.  Try again later.",
	}
}

func (ctx *Context) getProblemDetailsForInternalServerError(err error) *problem.Details {
	problem := &problem.Details{
		Type:   fmt.Sprintf("%v/http/internal-server-error", ctx.config.ProblemDetailsTypePrefix),
		Title:  "Internal Server Error",
		Detail: "An internal server error prevented the request from completing.",
	}

	if ctx.config.DebuggingEnabled && err != nil {
		problem.AttachError(err)
	}

	return problem
}

func (ctx *Context) getRawProblemDetailsForSerializationError(err error) []byte {
	formatJSON := `{"type":"%v/http/internal-server-error","title":"Internal Server Error","detail":"Serialization of the response model failed."%v}`

	errStr := ""
	if ctx.config.DebuggingEnabled && err != nil {
		errStr = fmt.Sprintf(`,"error":"%v"`, err.Error())
	}

	return []byte(fmt.Sprintf(formatJSON, ctx.config.ProblemDetailsTypePrefix, errStr))
}
