// Package middleware provides HTTP middleware for the goAccountFinder service.
package middleware

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter records the status code and body size written through it
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    atomic.Int32
	written       atomic.Int64
	headerWritten atomic.Bool
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w}
	rw.statusCode.Store(http.StatusOK)
	return rw
}

// WriteHeader forwards the first call only, like net/http does
func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.headerWritten.Swap(true) {
		return
	}
	rw.statusCode.Store(int32(code))
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(data []byte) (int, error) {
	rw.headerWritten.Store(true)
	n, err := rw.ResponseWriter.Write(data)
	if n > 0 {
		rw.written.Add(int64(n))
	}
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *ResponseWriter) StatusCode() int {
	return int(rw.statusCode.Load())
}

func (rw *ResponseWriter) BytesWritten() int64 {
	return rw.written.Load()
}

// HeaderWritten reports whether the status line has been sent
func (rw *ResponseWriter) HeaderWritten() bool {
	return rw.headerWritten.Load()
}
