package bind

import (
	"net/http"
	"time"
)

// MeasuredResponseWriter wraps a standard http.ResponseWriter and records
// the status code, the number of body bytes written, and the duration of
// the request so far.  It is how after-phase middleware observes a response
// without the chain having to buffer it.
type MeasuredResponseWriter struct {
	w                 http.ResponseWriter
	startTime         time.Time
	statusCode        int
	volume            int64
	hasWrittenHeaders bool
}

// NewMeasuredResponseWriter creates a new MeasuredResponseWriter over the
// provided underlying http.ResponseWriter.  Measurement of duration starts
// immediately.
func NewMeasuredResponseWriter(w http.ResponseWriter) *MeasuredResponseWriter {
	return &MeasuredResponseWriter{
		w:         w,
		startTime: time.Now(),
	}
}

var _ http.ResponseWriter = &MeasuredResponseWriter{}

// Header simply returns the headers of the underlying response writer.
func (mrw *MeasuredResponseWriter) Header() http.Header {
	return mrw.w.Header()
}

// Write writes to the underlying response writer, recording the number of
// bytes successfully written.
func (mrw *MeasuredResponseWriter) Write(b []byte) (int, error) {
	n, err := mrw.w.Write(b)
	mrw.volume += int64(n)

	return n, err
}

// WriteHeader records and writes the header if it has not already been
// written.  Subsequent calls are no-ops, matching the net/http contract.
func (mrw *MeasuredResponseWriter) WriteHeader(statusCode int) {
	if mrw.hasWrittenHeaders {
		return
	}

	mrw.statusCode = statusCode
	mrw.w.WriteHeader(statusCode)
	mrw.hasWrittenHeaders = true
}

// StatusCode returns the status code that was written for the response.  If
// WriteHeader was never explicitly called, StatusCode returns
// http.StatusOK.
func (mrw *MeasuredResponseWriter) StatusCode() int {
	if mrw.statusCode == 0 {
		return http.StatusOK
	}

	return mrw.statusCode
}

// HasWrittenHeaders returns true if WriteHeader has been called.  An
// after-phase middleware that wants to write a response of its own should
// check this first.
func (mrw *MeasuredResponseWriter) HasWrittenHeaders() bool {
	return mrw.hasWrittenHeaders
}

// Duration returns the duration between the start of the request and now.
func (mrw *MeasuredResponseWriter) Duration() time.Duration {
	return time.Since(mrw.startTime)
}

// Volume returns the number of bytes written to the response body.
func (mrw *MeasuredResponseWriter) Volume() int64 {
	return mrw.volume
}
