// Package responsewriter provides a http.ResponseWriter wrapper that records
// the response status code and body size for logging middleware.
package responsewriter

import "net/http"

// Wrapper wraps http.ResponseWriter and records the status code and the
// number of bytes written.
type Wrapper struct {
	http.ResponseWriter
	status int
	bytes  int
}

// Wrap returns a Wrapper around w. The status defaults to 200 because
// handlers that never call WriteHeader implicitly respond with 200.
func Wrap(w http.ResponseWriter) *Wrapper {
	return &Wrapper{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code before delegating.
func (w *Wrapper) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write records the number of bytes written before delegating.
func (w *Wrapper) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (w *Wrapper) StatusCode() int {
	return w.status
}

// BytesWritten returns the number of response body bytes written.
func (w *Wrapper) BytesWritten() int {
	return w.bytes
}
